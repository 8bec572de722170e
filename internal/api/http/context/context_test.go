package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub-server/internal/model"
)

func TestManager_Roundtrip(t *testing.T) {
	m := NewManager()
	auth := model.Auth{
		User:  model.User{ID: uuid.New(), Email: "dan@x.com"},
		Token: "token-1",
	}

	ctx := m.SetAuth(context.Background(), auth)

	got, ok := m.GetAuth(ctx)
	require.True(t, ok)
	assert.Equal(t, auth, got)
}

func TestManager_MissingAuth(t *testing.T) {
	m := NewManager()

	_, ok := m.GetAuth(context.Background())
	assert.False(t, ok)
}
