package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/taskhub/taskhub-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository is an in-memory UserStore. It mirrors the atomicity
// guarantees of the postgres implementation: every session mutation
// happens under the store lock as a single step, never as a
// read-modify-write visible to other callers.
type UserRepository struct {
	mu      sync.Mutex
	users   map[uuid.UUID]model.User
	byEmail map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[uuid.UUID]model.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return model.User{}, model.ErrEmailTaken
	}

	r.users[user.ID] = cloneUser(user)
	r.byEmail[user.Email] = user.ID
	return cloneUser(user), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return cloneUser(r.users[id]), nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *UserRepository) Update(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[user.ID]
	if !ok {
		return model.User{}, model.ErrNotFound
	}

	if other, exists := r.byEmail[user.Email]; exists && other != user.ID {
		return model.User{}, model.ErrEmailTaken
	}

	// Sessions are owned by the session operations below.
	user.Sessions = current.Sessions
	delete(r.byEmail, current.Email)
	r.users[user.ID] = cloneUser(user)
	r.byEmail[user.Email] = user.ID
	return cloneUser(user), nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return model.ErrNotFound
	}
	delete(r.byEmail, user.Email)
	delete(r.users, id)
	return nil
}

func (r *UserRepository) AppendSession(_ context.Context, id uuid.UUID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return model.ErrNotFound
	}
	user.Sessions = append(user.Sessions, token)
	r.users[id] = user
	return nil
}

func (r *UserRepository) RemoveSession(_ context.Context, id uuid.UUID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return model.ErrNotFound
	}

	sessions := user.Sessions[:0:0]
	for _, session := range user.Sessions {
		if session != token {
			sessions = append(sessions, session)
		}
	}
	user.Sessions = sessions
	r.users[id] = user
	return nil
}

func (r *UserRepository) ClearSessions(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return model.ErrNotFound
	}
	user.Sessions = []string{}
	r.users[id] = user
	return nil
}

func cloneUser(user model.User) model.User {
	sessions := make([]string, len(user.Sessions))
	copy(sessions, user.Sessions)
	user.Sessions = sessions
	return user
}
