package auth

import (
	"testing"
	"time"

	"empylo_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	require.NoError(t, Init("unit-test-secret"))

	user := models.User{
		Email:       "claims@example.com",
		AccountType: models.AccountTypeCompany,
		Password:    "hashed-secret",
	}
	user.ID = 42

	token, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.User.ID)
	assert.Equal(t, "claims@example.com", claims.User.Email)
	assert.Equal(t, models.AccountTypeCompany, claims.User.AccountType)

	// The embedded user is sanitized.
	assert.Empty(t, claims.User.Password)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	require.NoError(t, Init("unit-test-secret"))

	user := models.User{Email: "expired@example.com"}
	user.ID = 7

	token, err := GenerateToken(user, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	require.NoError(t, Init("unit-test-secret"))

	user := models.User{Email: "tamper@example.com"}
	token, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)
}

func TestInitRequiresSecret(t *testing.T) {
	assert.ErrorIs(t, Init(""), ErrSecretNotSet)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}
