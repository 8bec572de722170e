package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskhub/taskhub-server/internal/logger"
	"github.com/taskhub/taskhub-server/internal/model"
	"github.com/taskhub/taskhub-server/internal/service"
	"github.com/taskhub/taskhub-server/internal/validate"
)

// TaskService defines owner-scoped task operations.
type TaskService interface {
	Create(ctx context.Context, ownerID uuid.UUID, params service.CreateTaskParams) (model.Task, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (model.Task, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, params service.UpdateTaskParams) (model.Task, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// Task handles HTTP endpoints for tasks.
type Task struct {
	taskService    TaskService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTask creates a new Task handler.
func NewTask(taskService TaskService, contextManager model.ContextManager, logger *logger.Logger) *Task {
	return &Task{
		taskService:    taskService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type createTaskRequest struct {
	Description string `json:"description" binding:"required"`
	Completed   bool   `json:"completed"`
}

// Create handles POST /tasks.
func (h *Task) Create(c *gin.Context) {
	auth, ok := h.contextManager.GetAuth(c.Request.Context())
	if !ok {
		respondError(c, h.logger, model.ErrInvalidToken)
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), auth.User.ID, service.CreateTaskParams{
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// List handles GET /tasks.
func (h *Task) List(c *gin.Context) {
	auth, ok := h.contextManager.GetAuth(c.Request.Context())
	if !ok {
		respondError(c, h.logger, model.ErrInvalidToken)
		return
	}

	tasks, err := h.taskService.List(c.Request.Context(), auth.User.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetByID handles GET /tasks/:id.
func (h *Task) GetByID(c *gin.Context) {
	auth, ok := h.contextManager.GetAuth(c.Request.Context())
	if !ok {
		respondError(c, h.logger, model.ErrInvalidToken)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	task, err := h.taskService.GetByID(c.Request.Context(), auth.User.ID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Update handles PATCH /tasks/:id.
func (h *Task) Update(c *gin.Context) {
	auth, ok := h.contextManager.GetAuth(c.Request.Context())
	if !ok {
		respondError(c, h.logger, model.ErrInvalidToken)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := validate.Fields(patch, validate.TaskUpdateFields); err != nil {
		respondError(c, h.logger, err)
		return
	}

	params, err := decodeTaskPatch(patch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), auth.User.ID, id, params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /tasks/:id.
func (h *Task) Delete(c *gin.Context) {
	auth, ok := h.contextManager.GetAuth(c.Request.Context())
	if !ok {
		respondError(c, h.logger, model.ErrInvalidToken)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), auth.User.ID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusOK)
}

func decodeTaskPatch(patch map[string]json.RawMessage) (service.UpdateTaskParams, error) {
	var params service.UpdateTaskParams

	if raw, ok := patch["description"]; ok {
		var description string
		if err := json.Unmarshal(raw, &description); err != nil {
			return service.UpdateTaskParams{}, err
		}
		params.Description = &description
	}
	if raw, ok := patch["completed"]; ok {
		var completed bool
		if err := json.Unmarshal(raw, &completed); err != nil {
			return service.UpdateTaskParams{}, err
		}
		params.Completed = &completed
	}

	return params, nil
}
