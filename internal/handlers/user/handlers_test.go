package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"tienda_gamer_back_end/internal/cache"
	"tienda_gamer_back_end/internal/handlers/user"
	"tienda_gamer_back_end/internal/routes"
	"tienda_gamer_back_end/internal/storage"
)

// setupRouter monte les routes réelles sur le stockage mémoire,
// sans Redis ni SMTP (tout est nil-safe).
func setupRouter(store *storage.MemStorage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cartCache := cache.NewCartCache(nil)
	auth := &user.AuthHandler{Users: store, Carts: store, Cache: cartCache}
	cart := &user.CartHandler{Carts: store, Cache: cartCache}

	routes.RegisterRoutes(r, auth, cart, nil)
	return r
}

func perform(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r *gin.Engine, name, email, password string) string {
	t.Helper()

	w := perform(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = perform(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
