package route

import (
	"github.com/gin-gonic/gin"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/controller"
)

// RegisterInvoiceRoutes registers the invoicing module routes
func RegisterInvoiceRoutes(r *gin.RouterGroup, invoiceController *controller.InvoiceController) {
	invoices := r.Group("/invoices")
	{
		invoices.POST("", invoiceController.Create)
		invoices.GET("", invoiceController.List)
		invoices.GET("/:id", invoiceController.Get)
		invoices.PUT("/:id", invoiceController.Update)
		invoices.PATCH("/:id/status/:status", invoiceController.UpdateStatus)
		invoices.DELETE("/:id", invoiceController.Delete)
	}
}
