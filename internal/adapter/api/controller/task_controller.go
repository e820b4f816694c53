package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haeunkim/luthier-crm/internal/adapter/api/dto"
	"github.com/haeunkim/luthier-crm/internal/adapter/repository"
	taskdomain "github.com/haeunkim/luthier-crm/internal/domain/task"
	"github.com/haeunkim/luthier-crm/pkg/logger"
)

// TaskController handles calendar task requests
type TaskController struct {
	taskRepo taskdomain.Repository
	logger   logger.Logger
}

// NewTaskController creates a new TaskController
func NewTaskController(taskRepo taskdomain.Repository, logger logger.Logger) *TaskController {
	return &TaskController{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// Create creates a new calendar task
// @Summary Create task
// @Description Creates a calendar task such as a follow-up or approval deadline
// @Tags tasks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param task body dto.TaskRequest true "Task data"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tasks [post]
func (c *TaskController) Create(ctx *gin.Context) {
	var req dto.TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	dueDate, err := time.Parse(isoDate, req.DueDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid due date", req.DueDate))
		return
	}

	if req.ClientID != nil {
		if _, err := uuid.Parse(*req.ClientID); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid client id", *req.ClientID))
			return
		}
	}

	t, err := taskdomain.NewTask(req.Title, req.Description, dueDate, req.AllDay, req.ClientID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid task data", err.Error()))
		return
	}

	if err := c.taskRepo.Create(ctx, t); err != nil {
		c.logger.Error("failed to create task", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to save task", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTaskResponse(t))
}

// Get returns a task by ID
// @Summary Get task
// @Description Returns a calendar task by its ID
// @Tags tasks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tasks/{id} [get]
func (c *TaskController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid task id", id))
		return
	}

	t, err := c.taskRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrTaskNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "task not found", err.Error()))
			return
		}
		c.logger.Error("failed to find task", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find task", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTaskResponse(t))
}

// List returns tasks, either paginated or within a calendar window
// @Summary List tasks
// @Description Returns tasks. With from and to set, returns every task due in that window for calendar rendering; otherwise a paginated list.
// @Tags tasks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param from query string false "Inclusive window start (YYYY-MM-DD)"
// @Param to query string false "Inclusive window end (YYYY-MM-DD)"
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tasks [get]
func (c *TaskController) List(ctx *gin.Context) {
	fromRaw := ctx.Query("from")
	toRaw := ctx.Query("to")

	if fromRaw != "" && toRaw != "" {
		from, err := time.Parse(isoDate, fromRaw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid from date", fromRaw))
			return
		}
		to, err := time.Parse(isoDate, toRaw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid to date", toRaw))
			return
		}

		tasks, err := c.taskRepo.FindByDateRange(ctx, from, to)
		if err != nil {
			c.logger.Error("failed to list tasks", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list tasks", err.Error()))
			return
		}

		ctx.JSON(http.StatusOK, dto.NewListResponse(dto.ToTaskResponses(tasks), len(tasks)))
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "20"))
	p := dto.GetPagination(page, size)

	tasks, err := c.taskRepo.List(ctx, p.PageSize, p.Offset())
	if err != nil {
		c.logger.Error("failed to list tasks", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list tasks", err.Error()))
		return
	}

	total, err := c.taskRepo.Count(ctx)
	if err != nil {
		c.logger.Error("failed to count tasks", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list tasks", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(dto.ToTaskResponses(tasks), total))
}

// Update updates a task
// @Summary Update task
// @Description Replaces the mutable fields of a calendar task
// @Tags tasks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Task ID"
// @Param task body dto.TaskRequest true "Task data"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tasks/{id} [put]
func (c *TaskController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid task id", id))
		return
	}

	var req dto.TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	dueDate, err := time.Parse(isoDate, req.DueDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid due date", req.DueDate))
		return
	}

	t, err := c.taskRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrTaskNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "task not found", err.Error()))
			return
		}
		c.logger.Error("failed to find task", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find task", err.Error()))
		return
	}

	if err := t.Update(req.Title, req.Description, dueDate, req.AllDay, req.ClientID); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid task data", err.Error()))
		return
	}

	if err := c.taskRepo.Update(ctx, t); err != nil {
		if err == repository.ErrTaskNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "task not found", err.Error()))
			return
		}
		c.logger.Error("failed to update task", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to update task", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTaskResponse(t))
}

// SetCompleted toggles the done flag of a task
// @Summary Complete or reopen task
// @Description Marks a task done or not done
// @Tags tasks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Task ID"
// @Param completed path bool true "Done flag"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tasks/{id}/completed/{completed} [patch]
func (c *TaskController) SetCompleted(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid task id", id))
		return
	}

	completed, err := strconv.ParseBool(ctx.Param("completed"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid completed flag", ctx.Param("completed")))
		return
	}

	if err := c.taskRepo.SetCompleted(ctx, id, completed); err != nil {
		if err == repository.ErrTaskNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "task not found", err.Error()))
			return
		}
		c.logger.Error("failed to update task", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to update task", err.Error()))
		return
	}

	t, err := c.taskRepo.FindByID(ctx, id)
	if err != nil {
		c.logger.Error("failed to reload task", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find task", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTaskResponse(t))
}

// Delete removes a task
// @Summary Delete task
// @Description Removes a calendar task by its ID
// @Tags tasks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Task ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tasks/{id} [delete]
func (c *TaskController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid task id", id))
		return
	}

	if err := c.taskRepo.Delete(ctx, id); err != nil {
		if err == repository.ErrTaskNotFound {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "task not found", err.Error()))
			return
		}
		c.logger.Error("failed to delete task", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to delete task", err.Error()))
		return
	}

	ctx.Status(http.StatusNoContent)
}
