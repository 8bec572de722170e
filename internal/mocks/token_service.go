package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/taskhub/taskhub-server/internal/model"
)

// TokenService is a testify mock of the middleware TokenService
// interface.
type TokenService struct {
	mock.Mock
}

func NewTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenService {
	m := &TokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *TokenService) IsActive(user model.User, token string) bool {
	args := m.Called(user, token)
	return args.Bool(0)
}
