package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meufreelas/meufreelas_be/internal/models"
)

func TestSignJWTRoundTrip(t *testing.T) {
	token, err := SignJWT("test-secret", 42, models.RoleFreelancer, 60)
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(*Claims)
	require.True(t, ok)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, models.RoleFreelancer, claims.Role)
}

func TestSignJWTWrongSecret(t *testing.T) {
	token, err := SignJWT("test-secret", 42, models.RoleClient, 60)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
