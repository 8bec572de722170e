package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub-server/internal/model"
)

func newUser() model.User {
	now := time.Now()
	return model.User{
		ID:           uuid.New(),
		Name:         "Dan",
		Email:        "dan@x.com",
		PasswordHash: "$hashed$",
		Age:          30,
		Sessions:     []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	user := newUser()

	created, err := r.Create(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, created.ID)

	byEmail, err := r.GetByEmail(ctx, "dan@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := r.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "dan@x.com", byID.Email)

	_, err = r.GetByEmail(ctx, "ghost@x.com")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	_, err := r.Create(ctx, newUser())
	require.NoError(t, err)

	second := newUser()
	_, err = r.Create(ctx, second)
	require.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	user := newUser()
	_, err := r.Create(ctx, user)
	require.NoError(t, err)
	require.NoError(t, r.AppendSession(ctx, user.ID, "token-1"))

	user.Name = "Daniel"
	user.Email = "daniel@x.com"
	updated, err := r.Update(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "Daniel", updated.Name)

	// Profile updates never touch the session set.
	assert.Equal(t, []string{"token-1"}, updated.Sessions)

	_, err = r.GetByEmail(ctx, "dan@x.com")
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = r.GetByEmail(ctx, "daniel@x.com")
	require.NoError(t, err)
}

func TestUserRepository_Update_EmailTakenByOther(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	first := newUser()
	_, err := r.Create(ctx, first)
	require.NoError(t, err)

	second := newUser()
	second.Email = "other@x.com"
	_, err = r.Create(ctx, second)
	require.NoError(t, err)

	second.Email = "dan@x.com"
	_, err = r.Update(ctx, second)
	require.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	user := newUser()
	_, err := r.Create(ctx, user)
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, user.ID))
	_, err = r.GetByID(ctx, user.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, user.ID), model.ErrNotFound)
}

func TestUserRepository_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	user := newUser()
	_, err := r.Create(ctx, user)
	require.NoError(t, err)

	require.NoError(t, r.AppendSession(ctx, user.ID, "token-1"))
	require.NoError(t, r.AppendSession(ctx, user.ID, "token-2"))

	got, err := r.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"token-1", "token-2"}, got.Sessions)

	require.NoError(t, r.RemoveSession(ctx, user.ID, "token-1"))
	got, err = r.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"token-2"}, got.Sessions)

	require.NoError(t, r.ClearSessions(ctx, user.ID))
	got, err = r.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Sessions)

	require.ErrorIs(t, r.AppendSession(ctx, uuid.New(), "token-3"), model.ErrNotFound)
}

func TestUserRepository_ConcurrentAppendSession(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	user := newUser()
	_, err := r.Create(ctx, user)
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_ = r.AppendSession(ctx, user.ID, fmt.Sprintf("token-%d", i))
		}(i)
	}
	wg.Wait()

	// No login loses its session to a concurrent one.
	got, err := r.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, got.Sessions, n)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	user := newUser()
	_, err := r.Create(ctx, user)
	require.NoError(t, err)
	require.NoError(t, r.AppendSession(ctx, user.ID, "token-1"))

	got, err := r.GetByID(ctx, user.ID)
	require.NoError(t, err)
	got.Sessions[0] = "tampered"

	fresh, err := r.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"token-1"}, fresh.Sessions)
}
