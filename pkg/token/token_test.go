package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := New("test-secret", time.Hour)

	signed, err := svc.Generate("user-1", "demo@stv.de")
	require.NoError(t, err)

	claims, err := svc.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "demo@stv.de", claims.Email)
}

func TestService_WrongSecret(t *testing.T) {
	signed, err := New("secret-a", time.Hour).Generate("user-1", "a@b.c")
	require.NoError(t, err)

	_, err = New("secret-b", time.Hour).Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Expired(t *testing.T) {
	svc := New("secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	signed, err := svc.Generate("user-1", "a@b.c")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Garbage(t *testing.T) {
	_, err := New("secret", time.Hour).Validate("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
