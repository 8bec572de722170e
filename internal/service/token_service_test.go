package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub-server/internal/mocks"
	"github.com/taskhub/taskhub-server/internal/model"
	"github.com/taskhub/taskhub-server/internal/testutil"
)

func TestTokenService_Issue_AppendsSession(t *testing.T) {
	userID := uuid.New()
	manager := mocks.NewTokenManager(t)
	manager.On("Generate", userID).Return("token-1", nil)

	store := mocks.NewUserStore(t)
	store.On("AppendSession", mock.Anything, userID, "token-1").Return(nil)

	s := NewTokenService(manager, store, testutil.MakeNoopLogger())

	token, err := s.Issue(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
}

func TestTokenService_Issue_PersistFailure(t *testing.T) {
	userID := uuid.New()
	manager := mocks.NewTokenManager(t)
	manager.On("Generate", userID).Return("token-1", nil)

	store := mocks.NewUserStore(t)
	store.On("AppendSession", mock.Anything, userID, "token-1").Return(errors.New("connection reset"))

	s := NewTokenService(manager, store, testutil.MakeNoopLogger())

	_, err := s.Issue(context.Background(), userID)
	require.Error(t, err)
}

func TestTokenService_GetUserID(t *testing.T) {
	userID := uuid.New()
	manager := mocks.NewTokenManager(t)
	manager.On("Parse", "good").Return(userID, nil)
	manager.On("Parse", "bad").Return(uuid.Nil, errors.New("signature mismatch"))

	store := mocks.NewUserStore(t)
	s := NewTokenService(manager, store, testutil.MakeNoopLogger())

	got, err := s.GetUserID(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	// Any decode failure collapses to the uniform error.
	_, err = s.GetUserID(context.Background(), "bad")
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestTokenService_IsActive(t *testing.T) {
	manager := mocks.NewTokenManager(t)
	store := mocks.NewUserStore(t)
	s := NewTokenService(manager, store, testutil.MakeNoopLogger())

	user := model.User{Sessions: []string{"token-1", "token-2"}}

	assert.True(t, s.IsActive(user, "token-1"))
	assert.True(t, s.IsActive(user, "token-2"))
	assert.False(t, s.IsActive(user, "token-3"))
	assert.False(t, s.IsActive(model.User{}, "token-1"))
}

func TestTokenService_Revoke(t *testing.T) {
	userID := uuid.New()
	manager := mocks.NewTokenManager(t)
	store := mocks.NewUserStore(t)
	store.On("RemoveSession", mock.Anything, userID, "token-1").Return(nil)

	s := NewTokenService(manager, store, testutil.MakeNoopLogger())
	require.NoError(t, s.Revoke(context.Background(), userID, "token-1"))
}

func TestTokenService_RevokeAll(t *testing.T) {
	userID := uuid.New()
	manager := mocks.NewTokenManager(t)
	store := mocks.NewUserStore(t)
	store.On("ClearSessions", mock.Anything, userID).Return(nil)

	s := NewTokenService(manager, store, testutil.MakeNoopLogger())
	require.NoError(t, s.RevokeAll(context.Background(), userID))
}
