package user

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"tienda_gamer_back_end/internal/cache"
	"tienda_gamer_back_end/internal/models"
	"tienda_gamer_back_end/internal/storage"
	storerrors "tienda_gamer_back_end/internal/storage/errors"
)

// CartHandler expose le panier : un document par utilisateur, créé
// paresseusement par toutes les opérations (politique uniforme).
type CartHandler struct {
	Carts storage.CartStorage
	Cache *cache.CartCache
	Rdb   *redis.Client
}

// saveRetries borne le rejeu des écritures conditionnelles : au-delà,
// on abandonne avec une erreur serveur plutôt que de boucler.
const saveRetries = 3

// mutateCart charge (ou crée) le panier, applique la mutation puis persiste
// avec la version lue. En cas de conflit de version un autre écrivain est
// passé : on relit et on rejoue la mutation sur l'état frais.
func (h *CartHandler) mutateCart(ctx context.Context, userID string, mutate func(*models.Cart) error) (models.Cart, error) {
	var lastErr error
	for attempt := 0; attempt < saveRetries; attempt++ {
		cart, err := h.Carts.GetOrCreateCart(ctx, userID)
		if err != nil {
			return models.Cart{}, err
		}

		if err := mutate(&cart); err != nil {
			return models.Cart{}, err
		}

		err = h.Carts.SaveCart(ctx, &cart)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, storerrors.ErrVersionConflict) {
			return models.Cart{}, err
		}
		lastErr = err
	}
	return models.Cart{}, lastErr
}

// afterMutation rafraîchit le cache et prévient les websockets.
func (h *CartHandler) afterMutation(ctx context.Context, cart models.Cart, event string) {
	h.Cache.Invalidate(ctx, cart.UserID)
	h.Cache.Set(ctx, cart)
	h.Cache.Notify(ctx, cart.UserID, event)
}

//
// 🟢 GET /api/cart
//
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// le cache ne sert que les lectures, jamais les mutations
	if cart, ok := h.Cache.Get(ctx, userID); ok {
		c.JSON(http.StatusOK, cart)
		return
	}

	cart, err := h.Carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	h.Cache.Set(ctx, cart)
	c.JSON(http.StatusOK, cart)
}

//
// 🟢 POST /api/cart/items
//
// Produit déjà présent : quantité +1, les champs dénormalisés (titre, image,
// prix) gardent leur valeur d'origine. Sinon : nouvelle ligne en fin de liste.
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		// pointeur : required rejette le zéro des int, or productId 0 est légal
		ProductID *int    `json:"productId" binding:"required"`
		Title     string  `json:"title" binding:"required"`
		Image     string  `json:"image"`
		Price     float64 `json:"price" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.mutateCart(ctx, userID, func(cart *models.Cart) error {
		cart.AddItem(models.CartItem{
			ProductID: *input.ProductID,
			Title:     input.Title,
			Image:     input.Image,
			Price:     input.Price,
		})
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	h.afterMutation(ctx, cart, cache.EventUpdated)
	c.JSON(http.StatusOK, cart)
}

//
// 🟡 PUT /api/cart/items/:productId
//
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID := c.GetString("user_id")

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.mutateCart(ctx, userID, func(cart *models.Cart) error {
		if !cart.SetQuantity(productID, input.Quantity) {
			return storerrors.ErrItemNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, storerrors.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans le panier"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	h.afterMutation(ctx, cart, cache.EventUpdated)
	c.JSON(http.StatusOK, cart)
}

//
// ❌ DELETE /api/cart/items/:productId
//
// Pas d'erreur si le produit est absent : le panier est renvoyé tel quel.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.GetString("user_id")

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.mutateCart(ctx, userID, func(cart *models.Cart) error {
		cart.RemoveItem(productID)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	h.afterMutation(ctx, cart, cache.EventUpdated)
	c.JSON(http.StatusOK, cart)
}

//
// 🧹 DELETE /api/cart
//
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.mutateCart(ctx, userID, func(cart *models.Cart) error {
		cart.Clear()
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	h.afterMutation(ctx, cart, cache.EventCleared)
	c.JSON(http.StatusOK, cart)
}
