package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/dto"
	"github.com/haeunkim/luthier-crm/internal/adapter/repository"
	clientdomain "github.com/haeunkim/luthier-crm/internal/domain/client"
	instrumentdomain "github.com/haeunkim/luthier-crm/internal/domain/instrument"
	saledomain "github.com/haeunkim/luthier-crm/internal/domain/sale"
	"github.com/haeunkim/luthier-crm/pkg/logger"
)

const isoDate = "2006-01-02"

// SaleController handles sale requests and the reporting endpoints built on
// top of the sales ledger
type SaleController struct {
	saleRepo       saledomain.Repository
	clientRepo     clientdomain.Repository
	instrumentRepo instrumentdomain.Repository
	logger         logger.Logger
}

// NewSaleController creates a new SaleController
func NewSaleController(saleRepo saledomain.Repository, clientRepo clientdomain.Repository, instrumentRepo instrumentdomain.Repository, logger logger.Logger) *SaleController {
	return &SaleController{
		saleRepo:       saleRepo,
		clientRepo:     clientRepo,
		instrumentRepo: instrumentRepo,
		logger:         logger,
	}
}

// Create records a new sale
// @Summary Create sale
// @Description Records a sale or, with a negative price, a refund
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param sale body dto.SaleRequest true "Sale data"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req dto.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	saleDate, err := time.Parse(isoDate, req.SaleDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid sale date", req.SaleDate))
		return
	}

	if req.ClientID != nil {
		if _, err := uuid.Parse(*req.ClientID); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid client id", *req.ClientID))
			return
		}
	}
	if req.InstrumentID != nil {
		if _, err := uuid.Parse(*req.InstrumentID); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid instrument id", *req.InstrumentID))
			return
		}
	}

	s, err := saledomain.NewSale(req.ClientID, req.InstrumentID, req.SalePrice, saleDate, req.Notes)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid sale data", err.Error()))
		return
	}

	if err := c.saleRepo.Create(ctx, s); err != nil {
		c.logger.Error("failed to create sale", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to save sale", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaleResponse(s))
}

// Get returns a sale by ID
// @Summary Get sale
// @Description Returns a sale by its ID
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid sale id", id))
		return
	}

	s, err := c.saleRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrSaleNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "sale not found", err.Error()))
			return
		}
		c.logger.Error("failed to find sale", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find sale", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}

// List returns the sale list
// @Summary List sales
// @Description Returns a paginated sale list, optionally restricted to one client
// @Tags sales
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
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "20"))
	p := dto.GetPagination(page, size)

	var (
		sales []*saledomain.Sale
		total int
		err   error
	)
	if clientID := ctx.Query("client_id"); clientID != "" {
		if _, perr := uuid.Parse(clientID); perr != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid client id", clientID))
			return
		}
		sales, err = c.saleRepo.FindByClient(ctx, clientID, p.PageSize, p.Offset())
		if err == nil {
			total, err = c.saleRepo.CountByClient(ctx, clientID)
		}
	} else {
		sales, err = c.saleRepo.List(ctx, p.PageSize, p.Offset())
		if err == nil {
			total, err = c.saleRepo.Count(ctx)
		}
	}
	if err != nil {
		c.logger.Error("failed to list sales", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list sales", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(dto.ToSaleResponses(sales), total))
}

// Update updates a sale
// @Summary Update sale
// @Description Replaces the mutable fields of a sale
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Sale ID"
// @Param sale body dto.SaleRequest true "Sale data"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [put]
func (c *SaleController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid sale id", id))
		return
	}

	var req dto.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	saleDate, err := time.Parse(isoDate, req.SaleDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid sale date", req.SaleDate))
		return
	}

	s, err := c.saleRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrSaleNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "sale not found", err.Error()))
			return
		}
		c.logger.Error("failed to find sale", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find sale", err.Error()))
		return
	}

	s.ClientID = req.ClientID
	s.InstrumentID = req.InstrumentID
	s.SalePrice = req.SalePrice
	s.SaleDate = saleDate
	s.Notes = req.Notes

	if err := c.saleRepo.Update(ctx, s); err != nil {
		if err == repository.ErrSaleNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "sale not found", err.Error()))
			return
		}
		c.logger.Error("failed to update sale", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to update sale", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}

// Delete removes a sale
// @Summary Delete sale
// @Description Removes a sale by its ID
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Sale ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [delete]
func (c *SaleController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid sale id", id))
		return
	}

	if err := c.saleRepo.Delete(ctx, id); err != nil {
		if err == repository.ErrSaleNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "sale not found", err.Error()))
			return
		}
		c.logger.Error("failed to delete sale", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to delete sale", err.Error()))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Report returns the enriched, filtered sales report
// @Summary Sales report
// @Description Returns sales joined with clients and instruments, with totals, data quality flags and a period label. Accepts either an explicit from/to range or a named preset.
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param preset query string false "Named range preset (last7, thisMonth, lastMonth, last3Months, last12Months)"
// @Param search query string false "Free text filter on client and instrument fields"
// @Param sort query string false "Client name sort direction (asc or desc)"
// @Success 200 {object} dto.SalesReportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/report [get]
func (c *SaleController) Report(ctx *gin.Context) {
	from, to, ok := c.resolveRange(ctx)
	if !ok {
		return
	}

	enriched, totalCount, ok := c.loadEnriched(ctx, from, to)
	if !ok {
		return
	}

	enriched = saledomain.FilterBySearch(enriched, ctx.Query("search"))

	switch ctx.Query("sort") {
	case "":
	case "asc":
		enriched = saledomain.SortByClientName(enriched, saledomain.SortAsc)
	case "desc":
		enriched = saledomain.SortByClientName(enriched, saledomain.SortDesc)
	default:
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid sort direction", ctx.Query("sort")))
		return
	}

	// with no explicit range the period label falls back to the actual
	// bounds of the reported rows
	bounds := saledomain.DatasetBounds(enriched)

	ctx.JSON(http.StatusOK, dto.SalesReportResponse{
		Data:    dto.ToEnrichedSaleResponses(enriched),
		Count:   len(enriched),
		Totals:  saledomain.Totals(enriched),
		Quality: saledomain.CheckQuality(enriched, totalCount),
		Period:  saledomain.FormatPeriod(from, to, bounds.From, bounds.To),
	})
}

// Summary returns per-client purchase aggregates
// @Summary Sales summary by client
// @Description Groups the full sales ledger by client and aggregates spend, purchase count and first/last purchase dates
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.ListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/summary [get]
func (c *SaleController) Summary(ctx *gin.Context) {
	enriched, _, ok := c.loadEnriched(ctx, "", "")
	if !ok {
		return
	}

	summaries := saledomain.SummarizeByClient(enriched)
	ctx.JSON(http.StatusOK, dto.NewListResponse(summaries, len(summaries)))
}

// Export streams the sales report as a CSV download
// @Summary Export sales CSV
// @Description Returns the filtered sales report as a CSV file
// @Tags sales
// @Accept json
// @Produce text/csv
// @Param Authorization header string true "Bearer token"
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param preset query string false "Named range preset"
// @Param search query string false "Free text filter"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/export [get]
func (c *SaleController) Export(ctx *gin.Context) {
	from, to, ok := c.resolveRange(ctx)
	if !ok {
		return
	}

	enriched, _, ok := c.loadEnriched(ctx, from, to)
	if !ok {
		return
	}

	enriched = saledomain.FilterBySearch(enriched, ctx.Query("search"))

	csv := saledomain.GenerateCSV(enriched, saledomain.DefaultDateFormatter, saledomain.DefaultCurrencyFormatter)
	filename := fmt.Sprintf("sales-%s.csv", time.Now().Format(isoDate))

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// Receipt builds the mailto-ready receipt for a single sale
// @Summary Sale receipt
// @Description Returns a percent-encoded email subject and body for the sale's receipt
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Sale ID"
// @Success 200 {object} sale.Receipt
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/receipt [get]
func (c *SaleController) Receipt(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid sale id", id))
		return
	}

	s, err := c.saleRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrSaleNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "sale not found", err.Error()))
			return
		}
		c.logger.Error("failed to find sale", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find sale", err.Error()))
		return
	}

	e := saledomain.Enriched{Sale: *s}
	if s.ClientID != nil {
		cl, err := c.clientRepo.FindByID(ctx, *s.ClientID)
		if err != nil && err != repository.ErrClientNotFound {
			c.logger.Error("failed to resolve sale client", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to build receipt", err.Error()))
			return
		}
		e.Client = cl
	}
	if s.InstrumentID != nil {
		inst, err := c.instrumentRepo.FindByID(ctx, *s.InstrumentID)
		if err != nil && err != repository.ErrInstrumentNotFound {
			c.logger.Error("failed to resolve sale instrument", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to build receipt", err.Error()))
			return
		}
		e.Instrument = inst
	}

	ctx.JSON(http.StatusOK, saledomain.ReceiptEmail(e, saledomain.DefaultDateFormatter, saledomain.DefaultCurrencyFormatter))
}

// resolveRange turns the from/to or preset query parameters into an
// inclusive ISO range. Both strings are empty when no range was requested.
func (c *SaleController) resolveRange(ctx *gin.Context) (from, to string, ok bool) {
	if preset := ctx.Query("preset"); preset != "" {
		r, err := saledomain.RangeFromPreset(preset, time.Now())
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid range preset", preset))
			return "", "", false
		}
		return r.From, r.To, true
	}

	from = ctx.Query("from")
	to = ctx.Query("to")
	if from != "" {
		if _, err := time.Parse(isoDate, from); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid from date", from))
			return "", "", false
		}
	}
	if to != "" {
		if _, err := time.Parse(isoDate, to); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid to date", to))
			return "", "", false
		}
	}
	return from, to, true
}

// loadEnriched fetches sales for the range plus the full client and
// instrument sets, then joins them in memory. totalCount is the unfiltered
// ledger size, which the quality checks use to tell a partial view from the
// whole dataset.
func (c *SaleController) loadEnriched(ctx *gin.Context, from, to string) ([]saledomain.Enriched, int, bool) {
	totalCount, err := c.saleRepo.Count(ctx)
	if err != nil {
		c.logger.Error("failed to count sales", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to load sales", err.Error()))
		return nil, 0, false
	}

	var sales []*saledomain.Sale
	if from != "" || to != "" {
		fromDate := time.Time{}
		toDate := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
		if from != "" {
			fromDate, _ = time.Parse(isoDate, from)
		}
		if to != "" {
			toDate, _ = time.Parse(isoDate, to)
		}
		sales, err = c.saleRepo.FindByDateRange(ctx, fromDate, toDate, totalCount, 0)
	} else {
		sales, err = c.saleRepo.List(ctx, totalCount, 0)
	}
	if err != nil {
		c.logger.Error("failed to load sales", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to load sales", err.Error()))
		return nil, 0, false
	}

	clientCount, err := c.clientRepo.Count(ctx)
	if err != nil {
		c.logger.Error("failed to count clients", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to load clients", err.Error()))
		return nil, 0, false
	}
	clients, err := c.clientRepo.List(ctx, clientCount, 0)
	if err != nil {
		c.logger.Error("failed to load clients", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to load clients", err.Error()))
		return nil, 0, false
	}

	instrumentCount, err := c.instrumentRepo.Count(ctx)
	if err != nil {
		c.logger.Error("failed to count instruments", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to load instruments", err.Error()))
		return nil, 0, false
	}
	instruments, err := c.instrumentRepo.List(ctx, instrumentCount, 0)
	if err != nil {
		c.logger.Error("failed to load instruments", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to load instruments", err.Error()))
		return nil, 0, false
	}

	enriched := saledomain.Enrich(sales, saledomain.ClientMap(clients), saledomain.InstrumentMap(instruments))
	return enriched, totalCount, true
}
