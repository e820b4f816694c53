package route

import (
	"github.com/gin-gonic/gin"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/controller"
)

// RegisterSaleRoutes registers the sales ledger and reporting routes
func RegisterSaleRoutes(r *gin.RouterGroup, saleController *controller.SaleController) {
	sales := r.Group("/sales")
	{
		sales.POST("", saleController.Create)
		sales.GET("", saleController.List)
		sales.GET("/report", saleController.Report)
		sales.GET("/summary", saleController.Summary)
		sales.GET("/export", saleController.Export)
		sales.GET("/:id", saleController.Get)
		sales.GET("/:id/receipt", saleController.Receipt)
		sales.PUT("/:id", saleController.Update)
		sales.DELETE("/:id", saleController.Delete)
	}
}
