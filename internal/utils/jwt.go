package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tienda_gamer_back_end/internal/models"
)

// JWTSecret lit le secret de signature depuis l'environnement.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// GenerateJWT émet un token HS256 valable 24 heures.
// Pas de refresh : après expiration l'utilisateur doit se reconnecter.
func GenerateJWT(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}
