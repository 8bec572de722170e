package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	u := uuid.New()

	tokenString, err := j.Generate(u)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	got, err := j.Parse(tokenString)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestJWT_UniquePerIssue(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	u := uuid.New()

	first, err := j.Generate(u)
	require.NoError(t, err)
	second, err := j.Generate(u)
	require.NoError(t, err)

	// Two logins in the same second still get distinct tokens.
	require.NotEqual(t, first, second)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := NewJWT("secret", -time.Minute)
	u := uuid.New()

	tokenString, err := j.Generate(u)
	require.NoError(t, err)

	_, err = j.Parse(tokenString)
	require.Error(t, err)
}

func TestJWT_WrongSecret(t *testing.T) {
	signer := NewJWT("secret", time.Hour)
	verifier := NewJWT("other-secret", time.Hour)

	tokenString, err := signer.Generate(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Parse(tokenString)
	require.Error(t, err)
}

func TestJWT_MalformedToken(t *testing.T) {
	j := NewJWT("secret", time.Hour)

	_, err := j.Parse("")
	require.Error(t, err)

	_, err = j.Parse("not.a.token")
	require.Error(t, err)
}
