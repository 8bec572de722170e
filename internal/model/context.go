package model

import "context"

// Auth carries the authenticated user and the exact token the request
// presented. The token is kept so logout can revoke precisely that
// session.
type Auth struct {
	User  User
	Token string
}

// ContextManager stores and retrieves authentication info on a request
// context.
type ContextManager interface {
	SetAuth(ctx context.Context, auth Auth) context.Context
	GetAuth(ctx context.Context) (Auth, bool)
}
