package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.Generate("user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret-a", time.Hour).Generate("user-123")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	token, _, err := NewJWTManager("secret", -time.Minute).Generate("user-123")
	require.NoError(t, err)

	_, err = NewJWTManager("secret", -time.Minute).Parse(token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	_, err := NewJWTManager("secret", time.Hour).Parse("not.a.token")
	assert.Error(t, err)
}
