package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskhub/taskhub-server/internal/logger"
	"github.com/taskhub/taskhub-server/internal/model"
)

// TokenService resolves user IDs from bearer tokens and screens them
// against the active session set.
type TokenService interface {
	GetUserID(ctx context.Context, token string) (uuid.UUID, error)
	IsActive(user model.User, token string) bool
}

// Authenticate validates bearer tokens and injects the authenticated
// user into the request context. Every failure branch collapses to the
// same 401 body; whether a token was missing, forged, expired or
// revoked is visible in logs only.
type Authenticate struct {
	tokenService   TokenService
	userStore      model.UserStore
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, userStore model.UserStore, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokenService:   tokenService,
		userStore:      userStore,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle is the gin middleware entry point.
func (m *Authenticate) Handle(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))

	auth, err := m.authenticateRequest(c.Request.Context(), token)
	if err != nil {
		m.logger.Debug("request authentication failed",
			"path", c.Request.URL.Path,
			"error", err.Error())
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
		return
	}

	c.Request = c.Request.WithContext(m.contextManager.SetAuth(c.Request.Context(), auth))
	c.Next()
}

func (m *Authenticate) authenticateRequest(ctx context.Context, token string) (model.Auth, error) {
	if token == "" {
		return model.Auth{}, model.ErrInvalidToken
	}

	userID, err := m.tokenService.GetUserID(ctx, token)
	if err != nil {
		return model.Auth{}, err
	}

	user, err := m.userStore.GetByID(ctx, userID)
	if err != nil {
		// A token for a deleted user is just an invalid token.
		return model.Auth{}, model.ErrInvalidToken
	}

	if !m.tokenService.IsActive(user, token) {
		return model.Auth{}, model.ErrInvalidToken
	}

	return model.Auth{User: user, Token: token}, nil
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
