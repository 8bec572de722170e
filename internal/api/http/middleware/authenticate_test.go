package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/taskhub/taskhub-server/internal/api/http/context"
	"github.com/taskhub/taskhub-server/internal/mocks"
	"github.com/taskhub/taskhub-server/internal/model"
	"github.com/taskhub/taskhub-server/internal/testutil"
)

func TestAuthenticate_Handle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	user := model.User{ID: userID, Email: "dan@x.com", Sessions: []string{"good-token"}}

	tests := []struct {
		name       string
		header     string
		setup      func(tokenService *mocks.TokenService, userStore *mocks.UserStore)
		wantStatus int
	}{
		{
			name:       "missing header",
			header:     "",
			setup:      func(*mocks.TokenService, *mocks.UserStore) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc123",
			setup:      func(*mocks.TokenService, *mocks.UserStore) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "undecodable token",
			header: "Bearer forged",
			setup: func(tokenService *mocks.TokenService, _ *mocks.UserStore) {
				tokenService.On("GetUserID", mock.Anything, "forged").Return(uuid.Nil, model.ErrInvalidToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "user deleted",
			header: "Bearer orphan-token",
			setup: func(tokenService *mocks.TokenService, userStore *mocks.UserStore) {
				tokenService.On("GetUserID", mock.Anything, "orphan-token").Return(userID, nil)
				userStore.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "revoked token",
			header: "Bearer revoked-token",
			setup: func(tokenService *mocks.TokenService, userStore *mocks.UserStore) {
				tokenService.On("GetUserID", mock.Anything, "revoked-token").Return(userID, nil)
				userStore.On("GetByID", mock.Anything, userID).Return(user, nil)
				tokenService.On("IsActive", user, "revoked-token").Return(false)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "active token",
			header: "Bearer good-token",
			setup: func(tokenService *mocks.TokenService, userStore *mocks.UserStore) {
				tokenService.On("GetUserID", mock.Anything, "good-token").Return(userID, nil)
				userStore.On("GetByID", mock.Anything, userID).Return(user, nil)
				tokenService.On("IsActive", user, "good-token").Return(true)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenService := mocks.NewTokenService(t)
			userStore := mocks.NewUserStore(t)
			tt.setup(tokenService, userStore)

			contextManager := httpctx.NewManager()
			m := NewAuthenticate(tokenService, userStore, contextManager, testutil.MakeNoopLogger())

			e := gin.New()
			e.GET("/protected", m.Handle, func(c *gin.Context) {
				auth, ok := contextManager.GetAuth(c.Request.Context())
				require.True(t, ok)
				assert.Equal(t, userID, auth.User.ID)
				assert.Equal(t, "good-token", auth.Token)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				// Every failure branch answers with the same body.
				assert.JSONEq(t, `{"error":"Authentication failed"}`, w.Body.String())
			}
		})
	}
}
