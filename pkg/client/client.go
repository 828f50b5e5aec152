// Package client fournit un client Go du backend Tienda Gamer : il porte le
// token de session et un miroir local du panier serveur. Le miroir est
// remplacé intégralement par la réponse de chaque mutation réussie, jamais
// fusionné de manière optimiste.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"tienda_gamer_back_end/internal/models"
)

// APIError reprend le statut HTTP et le message renvoyés par le backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client est l'état applicatif d'une session : une instance par utilisateur
// connecté, pas de singleton au niveau du paquet.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	items   []models.CartItem
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// Authenticated indique si un token de session est présent.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// do envoie une requête JSON avec le token Bearer et décode la réponse.
// Une réponse non-2xx devient une APIError portant le message du serveur.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// ================== COMPTE ==================

func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", body, nil)
}

// Login stocke le token de session puis charge le panier serveur.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return models.User{}, err
	}
	c.token = resp.Token

	if err := c.RefreshCart(ctx); err != nil {
		// login annoncé en échec : ne pas garder une session à moitié ouverte
		c.token = ""
		return models.User{}, err
	}
	return resp.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, name, currentPassword, newPassword string) error {
	body := map[string]string{"name": name}
	if currentPassword != "" {
		body["currentPassword"] = currentPassword
	}
	if newPassword != "" {
		body["newPassword"] = newPassword
	}
	return c.do(ctx, http.MethodPut, "/api/auth/profile", body, nil)
}

// DeleteAccount supprime le compte et termine la session locale.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/auth/profile", nil, nil); err != nil {
		return err
	}
	c.Logout()
	return nil
}

// Logout oublie le token et vide le miroir, sans appel serveur.
func (c *Client) Logout() {
	c.token = ""
	c.items = nil
}
