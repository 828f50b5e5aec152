package user_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda_gamer_back_end/internal/middleware"
	"tienda_gamer_back_end/internal/storage"
)

func TestLoginRateLimitLocksAfterFailures(t *testing.T) {
	r, _ := setupRouterWithRedis(t, storage.NewMemStorage())
	perform(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@x.com", "password": "pw1",
	})

	for i := 0; i < middleware.LoginMaxAttempts; i++ {
		w := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "ana@x.com", "password": "mauvais",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
	}

	// au-delà du plafond : blocage, même avec le bon mot de passe
	w := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ana@x.com", "password": "mauvais",
	})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = perform(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ana@x.com", "password": "pw1",
	})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "retry_after")
}

func TestLoginRateLimitResetOnSuccess(t *testing.T) {
	r, _ := setupRouterWithRedis(t, storage.NewMemStorage())
	perform(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@x.com", "password": "pw1",
	})

	for i := 0; i < middleware.LoginMaxAttempts-1; i++ {
		perform(r, http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "ana@x.com", "password": "mauvais",
		})
	}

	w := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ana@x.com", "password": "pw1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// le succès a remis le compteur à zéro : on a de nouveau droit au plafond
	for i := 0; i < middleware.LoginMaxAttempts; i++ {
		w := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "ana@x.com", "password": "mauvais",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestLoginRateLimitIgnoresMalformedBodies(t *testing.T) {
	r, _ := setupRouterWithRedis(t, storage.NewMemStorage())
	perform(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@x.com", "password": "pw1",
	})

	// corps malformés portant l'email de quelqu'un d'autre : mot de passe absent
	for i := 0; i < middleware.LoginMaxAttempts*2; i++ {
		w := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "ana@x.com",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
	}

	// le compte n'est pas bloqué pour autant
	w := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ana@x.com", "password": "pw1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterRateLimitPerIP(t *testing.T) {
	r, _ := setupRouterWithRedis(t, storage.NewMemStorage())

	emails := []string{"a@x.com", "b@x.com", "c@x.com"}
	require.Equal(t, middleware.RegisterMaxAttempts, len(emails))
	for _, email := range emails {
		w := perform(r, http.MethodPost, "/api/auth/register", "", gin.H{
			"name": "Ana", "email": email, "password": "pw1",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := perform(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "d@x.com", "password": "pw1",
	})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestCartAddRateLimit(t *testing.T) {
	r, _ := setupRouterWithRedis(t, storage.NewMemStorage())
	token := registerAndLogin(t, r, "Ana", "ana@x.com", "pw1")

	item := gin.H{"productId": 7, "title": "Game", "price": 1000}
	for i := 0; i < middleware.CartMaxAdds; i++ {
		w := perform(r, http.MethodPost, "/api/cart/items", token, item)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := perform(r, http.MethodPost, "/api/cart/items", token, item)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
