package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/dto"
	"github.com/haeunkim/luthier-crm/internal/adapter/repository"
	invoicedomain "github.com/haeunkim/luthier-crm/internal/domain/invoice"
	"github.com/haeunkim/luthier-crm/pkg/identifier"
	"github.com/haeunkim/luthier-crm/pkg/logger"
)

// InvoiceController handles invoice requests
type InvoiceController struct {
	invoiceRepo invoicedomain.Repository
	logger      logger.Logger
}

// NewInvoiceController creates a new InvoiceController
func NewInvoiceController(invoiceRepo invoicedomain.Repository, logger logger.Logger) *InvoiceController {
	return &InvoiceController{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// Create creates a new invoice
// @Summary Create invoice
// @Description Creates a draft invoice and computes totals from its line items. An invoice number is generated when none is supplied.
// @Tags invoices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param invoice body dto.InvoiceRequest true "Invoice data"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices [post]
func (c *InvoiceController) Create(ctx *gin.Context) {
	var req dto.InvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	issueDate, err := time.Parse(isoDate, req.IssueDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid issue date", req.IssueDate))
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse(isoDate, req.DueDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid due date", req.DueDate))
			return
		}
		dueDate = &d
	}

	if req.ClientID != nil {
		if _, err := uuid.Parse(*req.ClientID); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid client id", *req.ClientID))
			return
		}
	}

	number := req.InvoiceNumber
	existing, err := c.invoiceRepo.ListInvoiceNumbers(ctx)
	if err != nil {
		c.logger.Error("failed to list invoice numbers", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to save invoice", err.Error()))
		return
	}
	if number == "" {
		generated, err := identifier.NextCode(identifier.InvoicePrefix, existing)
		if err != nil {
			c.logger.Error("failed to generate invoice number", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to save invoice", err.Error()))
			return
		}
		number = generated
	} else {
		normalized, err := identifier.Normalize(number)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid invoice number", err.Error()))
			return
		}
		if err := identifier.ValidateUnique(normalized, existing); err != nil {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "invoice number already in use", err.Error()))
			return
		}
		number = normalized
	}

	inv, err := invoicedomain.NewInvoice(number, req.ClientID, issueDate, dueDate, req.Currency, req.Tax, dto.ToInvoiceItems(req.Items))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid invoice data", err.Error()))
		return
	}

	if err := c.invoiceRepo.Create(ctx, inv); err != nil {
		if err == repository.ErrInvoiceDuplicateKey {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "invoice number already in use", err.Error()))
			return
		}
		c.logger.Error("failed to create invoice", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to save invoice", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvoiceResponse(inv))
}

// Get returns an invoice by ID
// @Summary Get invoice
// @Description Returns an invoice by its ID
// @Tags invoices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices/{id} [get]
func (c *InvoiceController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid invoice id", id))
		return
	}

	inv, err := c.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrInvoiceNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "invoice not found", err.Error()))
			return
		}
		c.logger.Error("failed to find invoice", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find invoice", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// List returns the invoice list
// @Summary List invoices
// @Description Returns a paginated invoice list, optionally restricted to one client
// @Tags invoices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param client_id query string false "Client ID filter"
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices [get]
func (c *InvoiceController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "20"))
	p := dto.GetPagination(page, size)

	var (
		invoices []*invoicedomain.Invoice
		err      error
	)
	if clientID := ctx.Query("client_id"); clientID != "" {
		if _, perr := uuid.Parse(clientID); perr != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid client id", clientID))
			return
		}
		invoices, err = c.invoiceRepo.FindByClient(ctx, clientID, p.PageSize, p.Offset())
	} else {
		invoices, err = c.invoiceRepo.List(ctx, p.PageSize, p.Offset())
	}
	if err != nil {
		c.logger.Error("failed to list invoices", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list invoices", err.Error()))
		return
	}

	total, err := c.invoiceRepo.Count(ctx)
	if err != nil {
		c.logger.Error("failed to count invoices", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list invoices", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(dto.ToInvoiceResponses(invoices), total))
}

// Update updates an invoice
// @Summary Update invoice
// @Description Replaces the invoice header and line items and recomputes totals
// @Tags invoices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Invoice ID"
// @Param invoice body dto.InvoiceRequest true "Invoice data"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices/{id} [put]
func (c *InvoiceController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid invoice id", id))
		return
	}

	var req dto.InvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	issueDate, err := time.Parse(isoDate, req.IssueDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid issue date", req.IssueDate))
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse(isoDate, req.DueDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid due date", req.DueDate))
			return
		}
		dueDate = &d
	}

	inv, err := c.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrInvoiceNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "invoice not found", err.Error()))
			return
		}
		c.logger.Error("failed to find invoice", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find invoice", err.Error()))
		return
	}

	inv.ClientID = req.ClientID
	inv.IssueDate = issueDate
	inv.DueDate = dueDate
	if req.Currency != "" {
		inv.Currency = req.Currency
	}
	inv.Tax = req.Tax
	if err := inv.ReplaceItems(dto.ToInvoiceItems(req.Items)); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid invoice data", err.Error()))
		return
	}

	if err := c.invoiceRepo.Update(ctx, inv); err != nil {
		if err == repository.ErrInvoiceNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "invoice not found", err.Error()))
			return
		}
		c.logger.Error("failed to update invoice", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to update invoice", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// UpdateStatus moves an invoice through its lifecycle
// @Summary Update invoice status
// @Description Moves an invoice to a new payment status
// @Tags invoices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Invoice ID"
// @Param status path string true "New status"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices/{id}/status/{status} [patch]
func (c *InvoiceController) UpdateStatus(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid invoice id", id))
		return
	}

	status, err := invoicedomain.ParseStatus(ctx.Param("status"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid status", ctx.Param("status")))
		return
	}

	inv, err := c.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrInvoiceNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "invoice not found", err.Error()))
			return
		}
		c.logger.Error("failed to find invoice", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find invoice", err.Error()))
		return
	}

	if err := inv.SetStatus(status); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid status", string(status)))
		return
	}

	if err := c.invoiceRepo.Update(ctx, inv); err != nil {
		c.logger.Error("failed to update invoice status", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to update invoice", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// Delete removes an invoice
// @Summary Delete invoice
// @Description Removes an invoice by its ID
// @Tags invoices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices/{id} [delete]
func (c *InvoiceController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid invoice id", id))
		return
	}

	if err := c.invoiceRepo.Delete(ctx, id); err != nil {
		if err == repository.ErrInvoiceNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "invoice not found", err.Error()))
			return
		}
		c.logger.Error("failed to delete invoice", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to delete invoice", err.Error()))
		return
	}

	ctx.Status(http.StatusNoContent)
}
