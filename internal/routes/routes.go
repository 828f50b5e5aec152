package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"tienda_gamer_back_end/internal/handlers/user"
	"tienda_gamer_back_end/internal/middleware"
)

// RegisterRoutes câble les endpoints auth et panier.
// Mêmes chemins que le frontend historique : /api/auth/* et /api/cart/*.
func RegisterRoutes(r *gin.Engine, auth *user.AuthHandler, cart *user.CartHandler, rdb *redis.Client) {
	api := r.Group("/api")

	a := api.Group("/auth")
	{
		a.POST("/register", middleware.RegisterRateLimit(rdb), auth.Register)
		a.POST("/login", middleware.LoginRateLimit(rdb), auth.Login)
		a.POST("/forgot-password", auth.ForgotPassword)
		a.POST("/reset-password", auth.ResetPassword)

		a.GET("/me", middleware.AuthRequired(), auth.Me)
		a.PUT("/profile", middleware.AuthRequired(), auth.UpdateProfile)
		a.DELETE("/profile", middleware.AuthRequired(), auth.DeleteAccount)
	}

	ct := api.Group("/cart", middleware.AuthRequired())
	{
		ct.GET("", cart.GetCart)
		ct.GET("/ws", cart.CartWebSocket)
		ct.POST("/items", middleware.CartRateLimit(rdb), cart.AddItem)
		ct.PUT("/items/:productId", cart.UpdateQuantity)
		ct.DELETE("/items/:productId", cart.RemoveItem)
		ct.DELETE("", cart.ClearCart)
	}
}
