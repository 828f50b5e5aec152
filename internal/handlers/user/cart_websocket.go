package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tienda_gamer_back_end/internal/cache"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket pousse le panier complet à chaque mutation, via le canal
// Redis cart:<userID> alimenté par CartCache.Notify.
func (h *CartHandler) CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")

	if h.Rdb == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Synchronisation temps réel indisponible"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := h.Rdb.Subscribe(ctx, "cart:"+userID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(gin.H{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != cache.EventUpdated && msg.Payload != cache.EventCleared {
				continue
			}

			// toujours relire la vérité en base, pas le cache
			cart, err := h.Carts.GetOrCreateCart(ctx, userID)
			if err != nil {
				log.Printf("❌ Erreur lecture panier pour WebSocket: %v", err)
				continue
			}

			response := gin.H{
				"type":  "cart_updated",
				"items": cart.Items,
				"total": cart.Total(),
				"count": cart.ItemCount(),
			}
			if err := conn.WriteJSON(response); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
