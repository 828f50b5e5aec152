package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"tienda_gamer_back_end/internal/models"
)

const (
	// CartCacheTTL aligne la durée de vie du cache sur un panier abandonné.
	CartCacheTTL = 30 * 24 * time.Hour

	// Messages publiés sur le canal cart:<userID> pour le websocket.
	EventUpdated = "updated"
	EventCleared = "cleared"
)

// CartCache est un cache JSON read-through des documents panier.
// Avec un client nil (tests, Redis indisponible) toutes les opérations
// deviennent des no-op : la vérité reste toujours en base.
type CartCache struct {
	rdb *redis.Client
}

func NewCartCache(rdb *redis.Client) *CartCache {
	return &CartCache{rdb: rdb}
}

func cartKey(userID string) string { return "cart:" + userID }

// Get retourne le panier en cache, ou false en cas de miss.
func (cc *CartCache) Get(ctx context.Context, userID string) (models.Cart, bool) {
	if cc == nil || cc.rdb == nil {
		return models.Cart{}, false
	}
	data, err := cc.rdb.Get(ctx, cartKey(userID)).Result()
	if err != nil || data == "" {
		return models.Cart{}, false
	}
	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return models.Cart{}, false
	}
	return cart, true
}

func (cc *CartCache) Set(ctx context.Context, cart models.Cart) {
	if cc == nil || cc.rdb == nil {
		return
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return
	}
	cc.rdb.Set(ctx, cartKey(cart.UserID), data, CartCacheTTL)
}

func (cc *CartCache) Invalidate(ctx context.Context, userID string) {
	if cc == nil || cc.rdb == nil {
		return
	}
	cc.rdb.Del(ctx, cartKey(userID))
}

// Notify prévient les websockets abonnés qu'une mutation a eu lieu.
func (cc *CartCache) Notify(ctx context.Context, userID, event string) {
	if cc == nil || cc.rdb == nil {
		return
	}
	cc.rdb.Publish(ctx, cartKey(userID), event)
}
