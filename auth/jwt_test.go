package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbassignana/EclipseURL/models"
)

func TestTokenRoundTrip(t *testing.T) {
	Init("test-secret")

	user := &models.User{ID: 42, IsAdmin: true}
	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	Init("test-secret")

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	Init("first-secret")
	token, err := GenerateToken(&models.User{ID: 1})
	require.NoError(t, err)

	Init("second-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
