package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub-server/internal/model"
)

func newTask(ownerID uuid.UUID, description string, createdAt time.Time) model.Task {
	return model.Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Description: description,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestTaskRepository_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	r := NewTaskRepository()

	owner := uuid.New()
	stranger := uuid.New()

	task := newTask(owner, "buy milk", time.Now())
	_, err := r.Create(ctx, task)
	require.NoError(t, err)

	got, err := r.GetByID(ctx, owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got.Description)

	// Another user's task behaves as absent.
	_, err = r.GetByID(ctx, stranger, task.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, stranger, task.ID), model.ErrNotFound)

	strangerTask := task
	strangerTask.OwnerID = stranger
	_, err = r.Update(ctx, strangerTask)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestTaskRepository_ListByOwner(t *testing.T) {
	ctx := context.Background()
	r := NewTaskRepository()

	owner := uuid.New()
	other := uuid.New()
	base := time.Now()

	second := newTask(owner, "second", base.Add(time.Second))
	first := newTask(owner, "first", base)
	foreign := newTask(other, "not yours", base)

	for _, task := range []model.Task{second, first, foreign} {
		_, err := r.Create(ctx, task)
		require.NoError(t, err)
	}

	tasks, err := r.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "first", tasks[0].Description)
	assert.Equal(t, "second", tasks[1].Description)

	empty, err := r.ListByOwner(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTaskRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	r := NewTaskRepository()

	owner := uuid.New()
	task := newTask(owner, "buy milk", time.Now())
	_, err := r.Create(ctx, task)
	require.NoError(t, err)

	task.Completed = true
	updated, err := r.Update(ctx, task)
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	require.NoError(t, r.Delete(ctx, owner, task.ID))
	_, err = r.GetByID(ctx, owner, task.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}
