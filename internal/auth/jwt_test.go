package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/hotel-booking-backend/internal/auth"
)

func TestJWTRoundTrip(t *testing.T) {
	m := auth.NewJWTManager("test-secret", 15*time.Minute)

	token, err := m.GenerateAccessToken("user-1", "alice@example.com", "admin")
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTWrongSecret(t *testing.T) {
	m := auth.NewJWTManager("test-secret", 15*time.Minute)
	other := auth.NewJWTManager("another-secret", 15*time.Minute)

	token, err := m.GenerateAccessToken("user-1", "alice@example.com", "user")
	require.NoError(t, err)

	_, err = other.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	m := auth.NewJWTManager("test-secret", -time.Minute)

	token, err := m.GenerateAccessToken("user-1", "alice@example.com", "user")
	require.NoError(t, err)

	_, err = m.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTGarbage(t *testing.T) {
	m := auth.NewJWTManager("test-secret", 15*time.Minute)

	_, err := m.ParseAndValidate("not.a.token")
	assert.Error(t, err)
}
