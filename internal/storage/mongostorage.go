package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"tienda_gamer_back_end/internal/models"
	storerrors "tienda_gamer_back_end/internal/storage/errors"
)

// MongoStorage implémente UserStorage et CartStorage sur MongoDB.
// Collections : users (index unique sur email) et carts (index unique sur userId).
type MongoStorage struct {
	users *mongo.Collection
	carts *mongo.Collection
}

func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{
		users: db.Collection("users"),
		carts: db.Collection("carts"),
	}
}

// ================== UTILISATEURS ==================

func (ms *MongoStorage) CreateUser(ctx context.Context, user models.User) error {
	// email déjà pris ?
	err := ms.users.FindOne(ctx, bson.M{"email": user.Email}).Err()
	if err == nil {
		return storerrors.ErrEmailTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	_, err = ms.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		// l'index unique attrape la course entre le FindOne et l'InsertOne
		return storerrors.ErrEmailTaken
	}
	return err
}

func (ms *MongoStorage) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := ms.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, storerrors.ErrUserNotFound
	}
	return user, err
}

func (ms *MongoStorage) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := ms.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, storerrors.ErrUserNotFound
	}
	return user, err
}

func (ms *MongoStorage) UpdateUser(ctx context.Context, user models.User) error {
	update := bson.M{"$set": bson.M{
		"name":      user.Name,
		"password":  user.Password,
		"updatedAt": user.UpdatedAt,
	}}
	res, err := ms.users.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storerrors.ErrUserNotFound
	}
	return nil
}

func (ms *MongoStorage) DeleteUser(ctx context.Context, id string) error {
	res, err := ms.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storerrors.ErrUserNotFound
	}
	return nil
}

// ================== PANIER ==================

// GetOrCreateCart charge le panier de l'utilisateur et le crée vide s'il
// n'existe pas encore. Politique uniforme : toutes les opérations panier
// passent par ici, y compris le vidage.
func (ms *MongoStorage) GetOrCreateCart(ctx context.Context, userID string) (models.Cart, error) {
	var cart models.Cart
	err := ms.carts.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Cart{}, err
	}

	now := time.Now()
	cart = models.Cart{
		UserID:    userID,
		Items:     []models.CartItem{},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = ms.carts.InsertOne(ctx, cart)
	if mongo.IsDuplicateKeyError(err) {
		// deux requêtes concurrentes ont créé le panier : on relit le gagnant
		err = ms.carts.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	}
	if err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// SaveCart persiste la liste des lignes avec une écriture conditionnelle sur
// la version lue. MatchedCount == 0 signifie qu'un autre écrivain est passé
// entre temps : l'appelant relit et rejoue la mutation.
func (ms *MongoStorage) SaveCart(ctx context.Context, cart *models.Cart) error {
	now := time.Now()
	res, err := ms.carts.UpdateOne(ctx,
		bson.M{"userId": cart.UserID, "version": cart.Version},
		bson.M{
			"$set": bson.M{"items": cart.Items, "updatedAt": now},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storerrors.ErrVersionConflict
	}
	cart.Version++
	cart.UpdatedAt = now
	return nil
}

func (ms *MongoStorage) DeleteCart(ctx context.Context, userID string) error {
	_, err := ms.carts.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
