package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskhub/taskhub-server/internal/logger"
	"github.com/taskhub/taskhub-server/internal/model"
)

// TaskService manages tasks for authenticated users. Every operation
// is scoped to the owner; another user's task behaves as absent.
type TaskService struct {
	store  model.TaskStore
	logger *logger.Logger
}

func NewTaskService(store model.TaskStore, logger *logger.Logger) *TaskService {
	return &TaskService{store: store, logger: logger}
}

// CreateTaskParams carries the fields accepted at task creation.
type CreateTaskParams struct {
	Description string
	Completed   bool
}

// UpdateTaskParams carries a partial task update.
type UpdateTaskParams struct {
	Description *string
	Completed   *bool
}

func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, params CreateTaskParams) (model.Task, error) {
	description := strings.TrimSpace(params.Description)
	if description == "" {
		return model.Task{}, model.NewValidationError("Description is required")
	}

	now := time.Now()
	task := model.Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Description: description,
		Completed:   params.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.store.Create(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task service: task created", "task_id", created.ID, "user_id", ownerID)
	return created, nil
}

func (s *TaskService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (model.Task, error) {
	task, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	tasks, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateTaskParams) (model.Task, error) {
	task, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	if params.Description != nil {
		description := strings.TrimSpace(*params.Description)
		if description == "" {
			return model.Task{}, model.NewValidationError("Description is required")
		}
		task.Description = description
	}
	if params.Completed != nil {
		task.Completed = *params.Completed
	}

	task.UpdatedAt = time.Now()

	updated, err := s.store.Update(ctx, task)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.store.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task service: task deleted", "task_id", id, "user_id", ownerID)
	return nil
}
