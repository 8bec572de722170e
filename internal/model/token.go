package model

import "github.com/google/uuid"

// TokenManager signs and verifies session tokens. Verification covers
// signature and expiry only; whether a token is still a member of the
// user's active session set is a separate concern.
type TokenManager interface {
	Generate(userID uuid.UUID) (string, error)
	Parse(token string) (uuid.UUID, error)
}
