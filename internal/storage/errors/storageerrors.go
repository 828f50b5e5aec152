package storerrors

import "errors"

var (
	ErrEmailTaken      = errors.New("email deja utilise")
	ErrUserNotFound    = errors.New("utilisateur introuvable")
	ErrItemNotFound    = errors.New("article introuvable dans le panier")
	ErrVersionConflict = errors.New("conflit de version sur le panier")
)
