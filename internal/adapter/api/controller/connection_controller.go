package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/dto"
	"github.com/haeunkim/luthier-crm/internal/adapter/repository"
	connectiondomain "github.com/haeunkim/luthier-crm/internal/domain/connection"
	"github.com/haeunkim/luthier-crm/pkg/logger"
)

// ConnectionController handles trade contact requests
type ConnectionController struct {
	connectionRepo connectiondomain.Repository
	logger         logger.Logger
}

// NewConnectionController creates a new ConnectionController
func NewConnectionController(connectionRepo connectiondomain.Repository, logger logger.Logger) *ConnectionController {
	return &ConnectionController{
		connectionRepo: connectionRepo,
		logger:         logger,
	}
}

// Create creates a new trade contact
// @Summary Create connection
// @Description Creates a trade contact such as a workshop, teacher or dealer
// @Tags connections
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param connection body dto.ConnectionRequest true "Connection data"
// @Success 201 {object} dto.ConnectionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /connections [post]
func (c *ConnectionController) Create(ctx *gin.Context) {
	var req dto.ConnectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	kind, err := connectiondomain.ParseKind(req.Kind)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid connection kind", req.Kind))
		return
	}

	conn, err := connectiondomain.NewConnection(req.Name, kind, req.Organization, req.Email, req.Phone, req.Note)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid connection data", err.Error()))
		return
	}

	if err := c.connectionRepo.Create(ctx, conn); err != nil {
		c.logger.Error("failed to create connection", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to save connection", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToConnectionResponse(conn))
}

// Get returns a connection by ID
// @Summary Get connection
// @Description Returns a trade contact by its ID
// @Tags connections
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Connection ID"
// @Success 200 {object} dto.ConnectionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /connections/{id} [get]
func (c *ConnectionController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid connection id", id))
		return
	}

	conn, err := c.connectionRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrConnectionNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "connection not found", err.Error()))
			return
		}
		c.logger.Error("failed to find connection", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find connection", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToConnectionResponse(conn))
}

// List returns the connection list
// @Summary List connections
// @Description Returns a paginated trade contact list, optionally filtered by kind
// @Tags connections
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param kind query string false "Contact kind filter"
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /connections [get]
func (c *ConnectionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "20"))
	p := dto.GetPagination(page, size)

	var (
		connections []*connectiondomain.Connection
		err         error
	)
	if raw := ctx.Query("kind"); raw != "" {
		kind, perr := connectiondomain.ParseKind(raw)
		if perr != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid connection kind", raw))
			return
		}
		connections, err = c.connectionRepo.FindByKind(ctx, kind, p.PageSize, p.Offset())
	} else {
		connections, err = c.connectionRepo.List(ctx, p.PageSize, p.Offset())
	}
	if err != nil {
		c.logger.Error("failed to list connections", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list connections", err.Error()))
		return
	}

	total, err := c.connectionRepo.Count(ctx)
	if err != nil {
		c.logger.Error("failed to count connections", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list connections", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(dto.ToConnectionResponses(connections), total))
}

// Update updates a connection
// @Summary Update connection
// @Description Replaces the mutable fields of a trade contact
// @Tags connections
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Connection ID"
// @Param connection body dto.ConnectionRequest true "Connection data"
// @Success 200 {object} dto.ConnectionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /connections/{id} [put]
func (c *ConnectionController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid connection id", id))
		return
	}

	var req dto.ConnectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	kind, err := connectiondomain.ParseKind(req.Kind)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid connection kind", req.Kind))
		return
	}

	conn, err := c.connectionRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrConnectionNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "connection not found", err.Error()))
			return
		}
		c.logger.Error("failed to find connection", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find connection", err.Error()))
		return
	}

	if err := conn.Update(req.Name, kind, req.Organization, req.Email, req.Phone, req.Note); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid connection data", err.Error()))
		return
	}

	if err := c.connectionRepo.Update(ctx, conn); err != nil {
		if err == repository.ErrConnectionNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "connection not found", err.Error()))
			return
		}
		c.logger.Error("failed to update connection", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to update connection", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToConnectionResponse(conn))
}

// Delete removes a connection
// @Summary Delete connection
// @Description Removes a trade contact by its ID
// @Tags connections
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Connection ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /connections/{id} [delete]
func (c *ConnectionController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid connection id", id))
		return
	}

	if err := c.connectionRepo.Delete(ctx, id); err != nil {
		if err == repository.ErrConnectionNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "connection not found", err.Error()))
			return
		}
		c.logger.Error("failed to delete connection", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to delete connection", err.Error()))
		return
	}

	ctx.Status(http.StatusNoContent)
}
