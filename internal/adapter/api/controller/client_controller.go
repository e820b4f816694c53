package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/dto"
	"github.com/haeunkim/luthier-crm/internal/adapter/repository"
	clientdomain "github.com/haeunkim/luthier-crm/internal/domain/client"
	"github.com/haeunkim/luthier-crm/pkg/identifier"
	"github.com/haeunkim/luthier-crm/pkg/logger"
)

// ClientController handles client requests
type ClientController struct {
	clientRepo clientdomain.Repository
	logger     logger.Logger
}

// NewClientController creates a new ClientController
func NewClientController(clientRepo clientdomain.Repository, logger logger.Logger) *ClientController {
	return &ClientController{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Create creates a new client
// @Summary Create client
// @Description Creates a new client record. A client number is generated when none is supplied.
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param client body dto.ClientRequest true "Client data"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients [post]
func (c *ClientController) Create(ctx *gin.Context) {
	var req dto.ClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	cl, err := clientdomain.NewClient(req.FirstName, req.LastName, req.Email)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid client data", err.Error()))
		return
	}

	if err := cl.Update(req.FirstName, req.LastName, req.Email, req.ContactNumber, req.Interest, req.Note, req.Tags); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid client data", err.Error()))
		return
	}

	existing, err := c.clientRepo.ListClientNumbers(ctx)
	if err != nil {
		c.logger.Error("failed to list client numbers", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to save client", err.Error()))
		return
	}

	if req.ClientNumber != "" {
		normalized, err := identifier.Normalize(req.ClientNumber)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid client number", err.Error()))
			return
		}
		if err := identifier.ValidateUnique(normalized, existing); err != nil {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "client number already in use", err.Error()))
			return
		}
		cl.SetClientNumber(normalized)
	} else {
		number, err := identifier.NextCode(identifier.ClientPrefix, existing)
		if err != nil {
			c.logger.Error("failed to generate client number", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to save client", err.Error()))
			return
		}
		cl.SetClientNumber(number)
	}

	if err := c.clientRepo.Create(ctx, cl); err != nil {
		if err == repository.ErrClientDuplicateKey {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "client number already in use", err.Error()))
			return
		}
		c.logger.Error("failed to create client", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to save client", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToClientResponse(cl))
}

// Get returns a client by ID
// @Summary Get client
// @Description Returns a client by its ID
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients/{id} [get]
func (c *ClientController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid client id", id))
		return
	}

	cl, err := c.clientRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrClientNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "client not found", err.Error()))
			return
		}
		c.logger.Error("failed to find client", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find client", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientResponse(cl))
}

// List returns the client list
// @Summary List clients
// @Description Returns a paginated client list, optionally filtered by a name search term
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param search query string false "Name or email search term"
// @Success 200 {object} dto.ListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients [get]
func (c *ClientController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "20"))
	p := dto.GetPagination(page, size)

	var (
		clients []*clientdomain.Client
		err     error
	)
	if term := ctx.Query("search"); term != "" {
		clients, err = c.clientRepo.FindByName(ctx, term, p.PageSize, p.Offset())
	} else {
		clients, err = c.clientRepo.List(ctx, p.PageSize, p.Offset())
	}
	if err != nil {
		c.logger.Error("failed to list clients", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list clients", err.Error()))
		return
	}

	total, err := c.clientRepo.Count(ctx)
	if err != nil {
		c.logger.Error("failed to count clients", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list clients", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(dto.ToClientResponses(clients), total))
}

// Update updates a client
// @Summary Update client
// @Description Replaces the mutable fields of a client
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Client ID"
// @Param client body dto.ClientRequest true "Client data"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients/{id} [put]
func (c *ClientController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid client id", id))
		return
	}

	var req dto.ClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	cl, err := c.clientRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrClientNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "client not found", err.Error()))
			return
		}
		c.logger.Error("failed to find client", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find client", err.Error()))
		return
	}

	if err := cl.Update(req.FirstName, req.LastName, req.Email, req.ContactNumber, req.Interest, req.Note, req.Tags); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid client data", err.Error()))
		return
	}

	if err := c.clientRepo.Update(ctx, cl); err != nil {
		if err == repository.ErrClientNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "client not found", err.Error()))
			return
		}
		c.logger.Error("failed to update client", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to update client", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientResponse(cl))
}

// Delete removes a client
// @Summary Delete client
// @Description Removes a client by its ID
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Client ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients/{id} [delete]
func (c *ClientController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid client id", id))
		return
	}

	if err := c.clientRepo.Delete(ctx, id); err != nil {
		if err == repository.ErrClientNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "client not found", err.Error()))
			return
		}
		c.logger.Error("failed to delete client", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to delete client", err.Error()))
		return
	}

	ctx.Status(http.StatusNoContent)
}
