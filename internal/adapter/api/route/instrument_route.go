package route

import (
	"github.com/gin-gonic/gin"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/controller"
)

// RegisterInstrumentRoutes registers the inventory module routes
func RegisterInstrumentRoutes(r *gin.RouterGroup, instrumentController *controller.InstrumentController) {
	instruments := r.Group("/instruments")
	{
		instruments.POST("", instrumentController.Create)
		instruments.GET("", instrumentController.List)
		instruments.GET("/:id", instrumentController.Get)
		instruments.PUT("/:id", instrumentController.Update)
		instruments.PATCH("/:id/status/:status", instrumentController.UpdateStatus)
		instruments.DELETE("/:id", instrumentController.Delete)
	}
}
