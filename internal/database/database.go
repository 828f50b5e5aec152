package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tienda_gamer_back_end/internal/config"
)

// --- Variables Globales ---
var (
	MongoClient *mongo.Client
	Mongo       *mongo.Database
	Redis       *redis.Client
)

// ConnectDatabases initialise MongoDB puis Redis.
// Mongo est obligatoire, Redis est optionnel (cache, rate limit, websocket).
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectMongo(ctx)
	connectRedis(ctx)

	log.Println("✅ Toutes les bases de données sont connectées")
}

func connectMongo(ctx context.Context) {
	uri := config.Getenv("MONGODB_URI", "mongodb://localhost:27017")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("❌ Échec connexion MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("❌ MongoDB injoignable: %v", err)
	}

	MongoClient = client
	Mongo = client.Database(config.Getenv("MONGO_DB", "tienda_gamer"))

	ensureIndexes(ctx)
	log.Println("✅ MongoDB connecté")
}

// ensureIndexes pose les contraintes d'unicité : un email par compte,
// un document panier par utilisateur.
func ensureIndexes(ctx context.Context) {
	unique := options.Index().SetUnique(true)

	_, err := Mongo.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		log.Printf("⚠️ Erreur création index users.email: %v", err)
	}

	_, err = Mongo.Collection("carts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: unique,
	})
	if err != nil {
		log.Printf("⚠️ Erreur création index carts.userId: %v", err)
	}
}

func connectRedis(ctx context.Context) {
	addr := config.Getenv("REDIS_ADDR", "localhost:6379")

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Getenv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis injoignable (%s) — cache et rate limit désactivés: %v", addr, err)
		Redis = nil
		return
	}
	log.Println("✅ Redis connecté")
}
