package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedConfig "tunemates/internal/shared/config"
)

func testJWTService() *JWTService {
	return NewJWTService(&sharedConfig.JWTConfig{
		Secret:      "test-secret",
		Issuer:      "tunemates",
		Audience:    "tunemates",
		ExpiryHours: 3,
	})
}

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := testJWTService()

	token, err := svc.Generate(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, "alice", claims.Username)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := testJWTService().Generate(1, "bob")
	require.NoError(t, err)

	other := NewJWTService(&sharedConfig.JWTConfig{
		Secret:      "different-secret",
		Issuer:      "tunemates",
		Audience:    "tunemates",
		ExpiryHours: 3,
	})
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongAudience(t *testing.T) {
	token, err := testJWTService().Generate(1, "bob")
	require.NoError(t, err)

	other := NewJWTService(&sharedConfig.JWTConfig{
		Secret:      "test-secret",
		Issuer:      "tunemates",
		Audience:    "someone-else",
		ExpiryHours: 3,
	})
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	_, err := testJWTService().Verify("not.a.token")
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	hasher := NewBcryptPasswordHasher(4)

	hash, err := hasher.Hash("Sup3r$ecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3r$ecret", hash)

	assert.NoError(t, hasher.Verify("Sup3r$ecret", hash))
	assert.Error(t, hasher.Verify("wrong", hash))
}
