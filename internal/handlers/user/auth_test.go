package user_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda_gamer_back_end/internal/storage"
)

func TestRegisterSuccess(t *testing.T) {
	r := setupRouter(storage.NewMemStorage())

	w := perform(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@x.com", "password": "pw1",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "message")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupRouter(storage.NewMemStorage())

	w := perform(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@x.com", "password": "pw1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = perform(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Otra", "email": "ana@x.com", "password": "pw2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterInvalidBody(t *testing.T) {
	r := setupRouter(storage.NewMemStorage())

	w := perform(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "pas-un-email", "password": "pw1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginSuccessReturnsTokenAndUser(t *testing.T) {
	r := setupRouter(storage.NewMemStorage())
	perform(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@x.com", "password": "pw1",
	})

	w := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ana@x.com", "password": "pw1",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ana", resp.User.Name)
	assert.Equal(t, "ana@x.com", resp.User.Email)
	// le hash ne doit jamais sortir
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "argon2id")
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	r := setupRouter(storage.NewMemStorage())
	perform(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@x.com", "password": "pw1",
	})

	// mauvais mot de passe sur un compte existant
	wrongPassword := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ana@x.com", "password": "mauvais",
	})
	// email inconnu
	unknownEmail := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "inconnu@x.com", "password": "pw1",
	})

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestMe(t *testing.T) {
	r := setupRouter(storage.NewMemStorage())
	token := registerAndLogin(t, r, "Ana", "ana@x.com", "pw1")

	w := perform(r, http.MethodGet, "/api/auth/me", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@x.com")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupRouter(storage.NewMemStorage())

	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/api/auth/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodPut, "/api/auth/profile", "", gin.H{"name": "X"}).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/api/cart", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/api/cart", "n-importe-quoi", nil).Code)
}

func TestUpdateProfileName(t *testing.T) {
	r := setupRouter(storage.NewMemStorage())
	token := registerAndLogin(t, r, "Ana", "ana@x.com", "pw1")

	w := perform(r, http.MethodPut, "/api/auth/profile", token, gin.H{"name": "Ana Maria"})
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/api/auth/me", token, nil)
	assert.Contains(t, w.Body.String(), "Ana Maria")
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	r := setupRouter(storage.NewMemStorage())
	token := registerAndLogin(t, r, "Ana", "ana@x.com", "pw1")

	w := perform(r, http.MethodPut, "/api/auth/profile", token, gin.H{
		"name": "Ana", "currentPassword": "pw1", "newPassword": "pw2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// l'ancien mot de passe ne marche plus, le nouveau oui
	old := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@x.com", "password": "pw1"})
	assert.Equal(t, http.StatusBadRequest, old.Code)

	fresh := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@x.com", "password": "pw2"})
	assert.Equal(t, http.StatusOK, fresh.Code)
}

func TestUpdateProfileWrongCurrentPassword(t *testing.T) {
	r := setupRouter(storage.NewMemStorage())
	token := registerAndLogin(t, r, "Ana", "ana@x.com", "pw1")

	w := perform(r, http.MethodPut, "/api/auth/profile", token, gin.H{
		"name": "Ana", "currentPassword": "mauvais", "newPassword": "pw2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfileNewPasswordRequiresCurrent(t *testing.T) {
	r := setupRouter(storage.NewMemStorage())
	token := registerAndLogin(t, r, "Ana", "ana@x.com", "pw1")

	w := perform(r, http.MethodPut, "/api/auth/profile", token, gin.H{
		"name": "Ana", "newPassword": "pw2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAccountCascadesCart(t *testing.T) {
	store := storage.NewMemStorage()
	r := setupRouter(store)
	token := registerAndLogin(t, r, "Ana", "ana@x.com", "pw1")

	w := perform(r, http.MethodPost, "/api/cart/items", token, gin.H{
		"productId": 7, "title": "Game", "image": "i.png", "price": 1000,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodDelete, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// le compte n'existe plus
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/api/auth/me", token, nil).Code)

	// et le document panier a été supprimé avec lui
	w = perform(r, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cart struct {
		Items []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Empty(t, cart.Items)
}
