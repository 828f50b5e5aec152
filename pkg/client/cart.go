package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"tienda_gamer_back_end/internal/models"
)

// ErrQuantiteInvalide : une quantité sous 1 est refusée côté client,
// la requête n'est jamais envoyée.
var ErrQuantiteInvalide = errors.New("la quantité doit être au moins 1")

// Product porte les champs dénormalisés envoyés au moment de l'ajout.
type Product struct {
	ID    int
	Title string
	Image string
	Price float64
}

// ================== PANIER ==================

// RefreshCart remplace le miroir local par l'état serveur.
func (c *Client) RefreshCart(ctx context.Context) error {
	var cart models.Cart
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &cart); err != nil {
		return err
	}
	c.items = cart.Items
	return nil
}

func (c *Client) AddToCart(ctx context.Context, p Product) error {
	body := map[string]interface{}{
		"productId": p.ID,
		"title":     p.Title,
		"image":     p.Image,
		"price":     p.Price,
	}
	var cart models.Cart
	if err := c.do(ctx, http.MethodPost, "/api/cart/items", body, &cart); err != nil {
		return err
	}
	c.items = cart.Items
	return nil
}

func (c *Client) UpdateQuantity(ctx context.Context, productID, quantity int) error {
	if quantity < 1 {
		return ErrQuantiteInvalide
	}
	body := map[string]int{"quantity": quantity}
	var cart models.Cart
	path := fmt.Sprintf("/api/cart/items/%d", productID)
	if err := c.do(ctx, http.MethodPut, path, body, &cart); err != nil {
		return err
	}
	c.items = cart.Items
	return nil
}

func (c *Client) RemoveFromCart(ctx context.Context, productID int) error {
	var cart models.Cart
	path := fmt.Sprintf("/api/cart/items/%d", productID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &cart); err != nil {
		return err
	}
	c.items = cart.Items
	return nil
}

func (c *Client) ClearCart(ctx context.Context) error {
	var cart models.Cart
	if err := c.do(ctx, http.MethodDelete, "/api/cart", nil, &cart); err != nil {
		return err
	}
	c.items = cart.Items
	return nil
}

// Checkout simule le paiement : retourne le total puis vide le panier.
// Aucun processeur de paiement n'est appelé.
func (c *Client) Checkout(ctx context.Context) (float64, error) {
	total := c.Total()
	if err := c.ClearCart(ctx); err != nil {
		return 0, err
	}
	return total, nil
}

// ================== VALEURS DÉRIVÉES ==================

// Items retourne une copie du miroir local.
func (c *Client) Items() []models.CartItem {
	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Total recalcule le montant sur les prix dénormalisés du miroir.
func (c *Client) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount retourne la somme des quantités.
func (c *Client) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}
