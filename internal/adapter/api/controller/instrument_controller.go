package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/dto"
	"github.com/haeunkim/luthier-crm/internal/adapter/repository"
	instrumentdomain "github.com/haeunkim/luthier-crm/internal/domain/instrument"
	"github.com/haeunkim/luthier-crm/pkg/identifier"
	"github.com/haeunkim/luthier-crm/pkg/logger"
)

// InstrumentController handles inventory requests
type InstrumentController struct {
	instrumentRepo instrumentdomain.Repository
	logger         logger.Logger
}

// NewInstrumentController creates a new InstrumentController
func NewInstrumentController(instrumentRepo instrumentdomain.Repository, logger logger.Logger) *InstrumentController {
	return &InstrumentController{
		instrumentRepo: instrumentRepo,
		logger:         logger,
	}
}

// Create creates a new instrument
// @Summary Create instrument
// @Description Adds an instrument to the inventory. A serial number derived from the instrument type is generated when none is supplied.
// @Tags instruments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param instrument body dto.InstrumentRequest true "Instrument data"
// @Success 201 {object} dto.InstrumentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /instruments [post]
func (c *InstrumentController) Create(ctx *gin.Context) {
	var req dto.InstrumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	inst, err := instrumentdomain.NewInstrument(req.Maker, req.Type, req.Subtype, req.Year, req.Price, req.Certificate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid instrument data", err.Error()))
		return
	}

	existing, err := c.instrumentRepo.ListSerialNumbers(ctx)
	if err != nil {
		c.logger.Error("failed to list serial numbers", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to save instrument", err.Error()))
		return
	}

	if req.SerialNumber != "" {
		normalized, err := identifier.Normalize(req.SerialNumber)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid serial number", err.Error()))
			return
		}
		if err := identifier.ValidateUnique(normalized, existing); err != nil {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "serial number already in use", err.Error()))
			return
		}
		inst.SetSerialNumber(normalized)
	} else {
		serial, err := identifier.NextCode(identifier.PrefixFor(req.Type), existing)
		if err != nil {
			c.logger.Error("failed to generate serial number", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to save instrument", err.Error()))
			return
		}
		inst.SetSerialNumber(serial)
	}

	if err := c.instrumentRepo.Create(ctx, inst); err != nil {
		if err == repository.ErrInstrumentDuplicateKey {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "serial number already in use", err.Error()))
			return
		}
		c.logger.Error("failed to create instrument", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to save instrument", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInstrumentResponse(inst))
}

// Get returns an instrument by ID
// @Summary Get instrument
// @Description Returns an instrument by its ID
// @Tags instruments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Instrument ID"
// @Success 200 {object} dto.InstrumentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /instruments/{id} [get]
func (c *InstrumentController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid instrument id", id))
		return
	}

	inst, err := c.instrumentRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrInstrumentNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "instrument not found", err.Error()))
			return
		}
		c.logger.Error("failed to find instrument", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find instrument", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstrumentResponse(inst))
}

// List returns the inventory list
// @Summary List instruments
// @Description Returns a paginated inventory list, optionally filtered by status or maker
// @Tags instruments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param status query string false "Sales status filter"
// @Param search query string false "Maker search term"
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /instruments [get]
func (c *InstrumentController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "20"))
	p := dto.GetPagination(page, size)

	var (
		instruments []*instrumentdomain.Instrument
		err         error
	)
	switch {
	case ctx.Query("status") != "":
		status, perr := instrumentdomain.ParseStatus(ctx.Query("status"))
		if perr != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid status", ctx.Query("status")))
			return
		}
		instruments, err = c.instrumentRepo.FindByStatus(ctx, status, p.PageSize, p.Offset())
	case ctx.Query("search") != "":
		instruments, err = c.instrumentRepo.FindByMaker(ctx, ctx.Query("search"), p.PageSize, p.Offset())
	default:
		instruments, err = c.instrumentRepo.List(ctx, p.PageSize, p.Offset())
	}
	if err != nil {
		c.logger.Error("failed to list instruments", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list instruments", err.Error()))
		return
	}

	total, err := c.instrumentRepo.Count(ctx)
	if err != nil {
		c.logger.Error("failed to count instruments", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list instruments", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(dto.ToInstrumentResponses(instruments), total))
}

// Update updates an instrument
// @Summary Update instrument
// @Description Replaces the mutable fields of an instrument
// @Tags instruments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Instrument ID"
// @Param instrument body dto.InstrumentRequest true "Instrument data"
// @Success 200 {object} dto.InstrumentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /instruments/{id} [put]
func (c *InstrumentController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid instrument id", id))
		return
	}

	var req dto.InstrumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	inst, err := c.instrumentRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrInstrumentNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "instrument not found", err.Error()))
			return
		}
		c.logger.Error("failed to find instrument", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find instrument", err.Error()))
		return
	}

	if err := inst.Update(req.Maker, req.Type, req.Subtype, req.Year, req.Price, req.Certificate); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid instrument data", err.Error()))
		return
	}

	if err := c.instrumentRepo.Update(ctx, inst); err != nil {
		if err == repository.ErrInstrumentNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "instrument not found", err.Error()))
			return
		}
		c.logger.Error("failed to update instrument", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to update instrument", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstrumentResponse(inst))
}

// UpdateStatus moves an instrument to a new sales state
// @Summary Update instrument status
// @Description Moves an instrument to a new sales state
// @Tags instruments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Instrument ID"
// @Param status path string true "New status"
// @Success 200 {object} dto.InstrumentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /instruments/{id}/status/{status} [patch]
func (c *InstrumentController) UpdateStatus(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid instrument id", id))
		return
	}

	status, err := instrumentdomain.ParseStatus(ctx.Param("status"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid status", ctx.Param("status")))
		return
	}

	if err := c.instrumentRepo.UpdateStatus(ctx, id, status); err != nil {
		if err == repository.ErrInstrumentNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "instrument not found", err.Error()))
			return
		}
		c.logger.Error("failed to update instrument status", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to update instrument status", err.Error()))
		return
	}

	inst, err := c.instrumentRepo.FindByID(ctx, id)
	if err != nil {
		c.logger.Error("failed to reload instrument", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find instrument", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstrumentResponse(inst))
}

// Delete removes an instrument
// @Summary Delete instrument
// @Description Removes an instrument by its ID
// @Tags instruments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Instrument ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /instruments/{id} [delete]
func (c *InstrumentController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid instrument id", id))
		return
	}

	if err := c.instrumentRepo.Delete(ctx, id); err != nil {
		if err == repository.ErrInstrumentNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "instrument not found", err.Error()))
			return
		}
		c.logger.Error("failed to delete instrument", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to delete instrument", err.Error()))
		return
	}

	ctx.Status(http.StatusNoContent)
}
