package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskhub/taskhub-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

type TaskRepository struct {
	db *Connection
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `INSERT INTO tasks (id, owner_id, description, completed, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, owner_id, description, completed, created_at, updated_at`

	var savedTask model.Task
	err := r.db.QueryRow(ctx, query,
		task.ID, task.OwnerID, task.Description, task.Completed, task.CreatedAt, task.UpdatedAt,
	).Scan(
		&savedTask.ID, &savedTask.OwnerID, &savedTask.Description, &savedTask.Completed,
		&savedTask.CreatedAt, &savedTask.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return savedTask, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (model.Task, error) {
	var task model.Task
	query := `SELECT id, owner_id, description, completed, created_at, updated_at
			  FROM tasks WHERE id = $1 AND owner_id = $2`

	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&task.ID, &task.OwnerID, &task.Description, &task.Completed,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	query := `SELECT id, owner_id, description, completed, created_at, updated_at
			  FROM tasks WHERE owner_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var task model.Task
		if err := rows.Scan(
			&task.ID, &task.OwnerID, &task.Description, &task.Completed,
			&task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `UPDATE tasks SET description = $3, completed = $4, updated_at = $5
			  WHERE id = $1 AND owner_id = $2
			  RETURNING id, owner_id, description, completed, created_at, updated_at`

	var savedTask model.Task
	err := r.db.QueryRow(ctx, query,
		task.ID, task.OwnerID, task.Description, task.Completed, task.UpdatedAt,
	).Scan(
		&savedTask.ID, &savedTask.OwnerID, &savedTask.Description, &savedTask.Completed,
		&savedTask.CreatedAt, &savedTask.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return savedTask, nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
