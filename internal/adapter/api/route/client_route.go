package route

import (
	"github.com/gin-gonic/gin"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/controller"
)

// RegisterClientRoutes registers the client module routes
func RegisterClientRoutes(r *gin.RouterGroup, clientController *controller.ClientController) {
	clients := r.Group("/clients")
	{
		clients.POST("", clientController.Create)
		clients.GET("", clientController.List)
		clients.GET("/:id", clientController.Get)
		clients.PUT("/:id", clientController.Update)
		clients.DELETE("/:id", clientController.Delete)
	}
}
