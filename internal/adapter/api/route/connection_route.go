package route

import (
	"github.com/gin-gonic/gin"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/controller"
)

// RegisterConnectionRoutes registers the trade contact routes
func RegisterConnectionRoutes(r *gin.RouterGroup, connectionController *controller.ConnectionController) {
	connections := r.Group("/connections")
	{
		connections.POST("", connectionController.Create)
		connections.GET("", connectionController.List)
		connections.GET("/:id", connectionController.Get)
		connections.PUT("/:id", connectionController.Update)
		connections.DELETE("/:id", connectionController.Delete)
	}
}
