package storage

import (
	"context"

	"tienda_gamer_back_end/internal/models"
)

// UserStorage gère les comptes utilisateurs.
type UserStorage interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id string) error
}

// CartStorage gère le document panier, un seul par utilisateur.
// SaveCart est une écriture conditionnelle : elle échoue avec
// ErrVersionConflict si le document a changé depuis la lecture.
type CartStorage interface {
	GetOrCreateCart(ctx context.Context, userID string) (models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, userID string) error
}
