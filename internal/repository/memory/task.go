package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/taskhub/taskhub-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

// TaskRepository is an in-memory TaskStore.
type TaskRepository struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]model.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[uuid.UUID]model.Task),
	}
}

func (r *TaskRepository) Create(_ context.Context, task model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[task.ID] = task
	return task, nil
}

func (r *TaskRepository) GetByID(_ context.Context, ownerID, id uuid.UUID) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return model.Task{}, model.ErrNotFound
	}
	return task, nil
}

func (r *TaskRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := []model.Task{}
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *TaskRepository) Update(_ context.Context, task model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.tasks[task.ID]
	if !ok || current.OwnerID != task.OwnerID {
		return model.Task{}, model.ErrNotFound
	}
	r.tasks[task.ID] = task
	return task, nil
}

func (r *TaskRepository) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return model.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}
