package route

import (
	"github.com/gin-gonic/gin"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/controller"
)

// RegisterTaskRoutes registers the calendar task routes
func RegisterTaskRoutes(r *gin.RouterGroup, taskController *controller.TaskController) {
	tasks := r.Group("/tasks")
	{
		tasks.POST("", taskController.Create)
		tasks.GET("", taskController.List)
		tasks.GET("/:id", taskController.Get)
		tasks.PUT("/:id", taskController.Update)
		tasks.PATCH("/:id/completed/:completed", taskController.SetCompleted)
		tasks.DELETE("/:id", taskController.Delete)
	}
}
