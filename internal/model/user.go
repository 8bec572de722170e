package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users and their
// active session sets. Session mutations must be atomic at the store
// level so that concurrent logins and logouts never lose updates.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AppendSession(ctx context.Context, id uuid.UUID, token string) error
	RemoveSession(ctx context.Context, id uuid.UUID, token string) error
	ClearSessions(ctx context.Context, id uuid.UUID) error
}

// PasswordHasher computes and verifies one-way password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// User represents a stored user with authentication material.
// PasswordHash and Sessions never leave the service boundary; API
// responses use PublicUser instead.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Age          int
	Sessions     []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the externally visible view of a user.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Age   int       `json:"age"`
}

// Public returns the response-safe view of the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Age:   u.Age,
	}
}
