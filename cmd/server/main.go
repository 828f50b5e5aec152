package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tienda_gamer_back_end/internal/cache"
	"tienda_gamer_back_end/internal/config"
	"tienda_gamer_back_end/internal/database"
	"tienda_gamer_back_end/internal/handlers/user"
	"tienda_gamer_back_end/internal/routes"
	"tienda_gamer_back_end/internal/storage"
	"tienda_gamer_back_end/internal/utils"
)

func main() {
	config.Load()

	database.ConnectDatabases()

	store := storage.NewMongoStorage(database.Mongo)
	cartCache := cache.NewCartCache(database.Redis)

	authHandler := &user.AuthHandler{
		Users:   store,
		Carts:   store,
		Cache:   cartCache,
		Rdb:     database.Redis,
		Mail:    utils.NewMailerFromEnv(),
		AuditDB: database.Mongo,
	}
	cartHandler := &user.CartHandler{
		Carts: store,
		Cache: cartCache,
		Rdb:   database.Redis,
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.Getenv("FRONTEND_URL", "http://localhost:5173")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(r, authHandler, cartHandler, database.Redis)

	port := config.Getenv("PORT", "8080")
	log.Println("🚀 Serveur Tienda Gamer lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Erreur serveur: %v", err)
	}
}
