package context

import (
	"context"

	"github.com/taskhub/taskhub-server/internal/model"
)

type authKey struct{}

// Manager stores authentication info on request contexts using an
// unexported key type, so no other package can spoof it.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetAuth returns a context carrying the authenticated user and the
// presented token.
func (m *Manager) SetAuth(ctx context.Context, auth model.Auth) context.Context {
	return context.WithValue(ctx, authKey{}, auth)
}

// GetAuth retrieves authentication info from the context. The boolean
// is false on contexts that never passed the auth middleware.
func (m *Manager) GetAuth(ctx context.Context) (model.Auth, bool) {
	auth, ok := ctx.Value(authKey{}).(model.Auth)
	return auth, ok
}
