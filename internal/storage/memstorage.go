package storage

import (
	"context"
	"sync"
	"time"

	"tienda_gamer_back_end/internal/models"
	storerrors "tienda_gamer_back_end/internal/storage/errors"
)

// MemStorage est l'implémentation en mémoire, utilisée par les tests.
// Mêmes sémantiques que MongoStorage, version comprise.
type MemStorage struct {
	mu    sync.Mutex
	users map[string]models.User
	carts map[string]models.Cart
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		users: make(map[string]models.User),
		carts: make(map[string]models.Cart),
	}
}

// ================== UTILISATEURS ==================

func (ms *MemStorage) CreateUser(_ context.Context, user models.User) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for _, u := range ms.users {
		if u.Email == user.Email {
			return storerrors.ErrEmailTaken
		}
	}
	ms.users[user.ID] = user
	return nil
}

func (ms *MemStorage) GetUser(_ context.Context, id string) (models.User, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	user, ok := ms.users[id]
	if !ok {
		return models.User{}, storerrors.ErrUserNotFound
	}
	return user, nil
}

func (ms *MemStorage) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for _, user := range ms.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storerrors.ErrUserNotFound
}

func (ms *MemStorage) UpdateUser(_ context.Context, user models.User) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	stored, ok := ms.users[user.ID]
	if !ok {
		return storerrors.ErrUserNotFound
	}
	stored.Name = user.Name
	stored.Password = user.Password
	stored.UpdatedAt = user.UpdatedAt
	ms.users[user.ID] = stored
	return nil
}

func (ms *MemStorage) DeleteUser(_ context.Context, id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, ok := ms.users[id]; !ok {
		return storerrors.ErrUserNotFound
	}
	delete(ms.users, id)
	return nil
}

// ================== PANIER ==================

func (ms *MemStorage) GetOrCreateCart(_ context.Context, userID string) (models.Cart, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	cart, ok := ms.carts[userID]
	if !ok {
		now := time.Now()
		cart = models.Cart{
			UserID:    userID,
			Items:     []models.CartItem{},
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		}
		ms.carts[userID] = cart
	}
	return copyCart(cart), nil
}

func (ms *MemStorage) SaveCart(_ context.Context, cart *models.Cart) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	stored, ok := ms.carts[cart.UserID]
	if !ok || stored.Version != cart.Version {
		return storerrors.ErrVersionConflict
	}
	cart.Version++
	cart.UpdatedAt = time.Now()
	ms.carts[cart.UserID] = copyCart(*cart)
	return nil
}

func (ms *MemStorage) DeleteCart(_ context.Context, userID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.carts, userID)
	return nil
}

// copyCart évite de partager la slice des lignes entre appelants.
func copyCart(cart models.Cart) models.Cart {
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	return cart
}
