package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda_gamer_back_end/internal/models"
)

func TestGenerateJWTClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	user := models.User{ID: "abc123", Email: "ana@x.com"}
	tokenString, err := GenerateJWT(user)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret-de-test"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "abc123", claims["user_id"])
	assert.Equal(t, "ana@x.com", claims["email"])

	// expiration à 24 heures, pas de refresh
	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	expected := time.Now().Add(24 * time.Hour).Unix()
	assert.InDelta(t, expected, int64(exp), 60)
}

func TestGenerateJWTRejectedWithOtherSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	tokenString, err := GenerateJWT(models.User{ID: "abc123", Email: "ana@x.com"})
	require.NoError(t, err)

	_, err = jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("autre-secret"), nil
	})
	assert.Error(t, err)
}
