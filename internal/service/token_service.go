package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskhub/taskhub-server/internal/logger"
	"github.com/taskhub/taskhub-server/internal/model"
)

// TokenService issues, screens and revokes session tokens. Signature
// and expiry checks live in the TokenManager; this service adds the
// session registry: a token stays usable only while it remains a
// member of the user's active session set.
type TokenService struct {
	manager model.TokenManager
	store   model.UserStore
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, store model.UserStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, logger: logger}
}

// Issue signs a new token for the user and appends it to the active
// session set. The append is a single atomic store write, so two
// devices logging in at once both keep their session.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := s.manager.Generate(userID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.store.AppendSession(ctx, userID, token); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}

	return token, nil
}

// GetUserID decodes a token and returns its subject. Any failure maps
// to the uniform model.ErrInvalidToken; the specific reason is logged
// but never returned. Registry membership is deliberately not checked
// here, the caller cross-checks it against the loaded user.
func (s *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := s.manager.Parse(token)
	if err != nil {
		s.logger.Debug("Token service: token rejected", "error", err.Error())
		return uuid.Nil, model.ErrInvalidToken
	}
	return userID, nil
}

// IsActive reports whether the token is a member of the user's active
// session set.
func (s *TokenService) IsActive(user model.User, token string) bool {
	for _, session := range user.Sessions {
		if subtle.ConstantTimeCompare([]byte(session), []byte(token)) == 1 {
			return true
		}
	}
	return false
}

// Revoke removes exactly the presented token from the session set. The
// token still passes signature verification afterwards; it is rejected
// through registry membership alone.
func (s *TokenService) Revoke(ctx context.Context, userID uuid.UUID, token string) error {
	if err := s.store.RemoveSession(ctx, userID, token); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.logger.Info("Token service: session revoked", "user_id", userID)
	return nil
}

// RevokeAll clears the whole session set in one write, so a failure
// never leaves some devices logged out and others not.
func (s *TokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.ClearSessions(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	s.logger.Info("Token service: all sessions revoked", "user_id", userID)
	return nil
}
