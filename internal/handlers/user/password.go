package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tienda_gamer_back_end/internal/config"
	"tienda_gamer_back_end/internal/utils"
)

// ================== MOT DE PASSE OUBLIÉ ==================

// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email requis"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// ⚠️ Réponse neutre : on ne révèle pas si l'email existe
	neutral := gin.H{"message": "Si cet email existe, un lien de réinitialisation a été envoyé"}

	user, err := h.Users.GetUserByEmail(ctx, input.Email)
	if err != nil || h.Rdb == nil {
		c.JSON(http.StatusOK, neutral)
		return
	}

	resetToken := generateResetToken()

	// Token valable 1 heure, usage unique
	if err := h.Rdb.Set(ctx, "reset_token:"+resetToken, user.ID, 1*time.Hour).Err(); err != nil {
		log.Printf("❌ Erreur sauvegarde token reset: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la génération du lien"})
		return
	}

	go h.sendPasswordResetEmail(user.Email, user.Name, resetToken)

	c.JSON(http.StatusOK, neutral)
}

// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if h.Rdb == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service indisponible"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Rdb.Get(ctx, "reset_token:"+input.Token).Result()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide ou expiré"})
		return
	}

	user, err := h.Users.GetUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide ou expiré"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la réinitialisation"})
		return
	}

	user.Password = hashedPassword
	user.UpdatedAt = time.Now()
	if err := h.Users.UpdateUser(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	// usage unique
	h.Rdb.Del(ctx, "reset_token:"+input.Token)

	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe réinitialisé avec succès"})
}

// ================== UTILITAIRES ==================

func generateResetToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

func (h *AuthHandler) sendPasswordResetEmail(email, name, token string) {
	baseURL := config.Getenv("FRONTEND_URL", "http://localhost:5173")
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", baseURL, token)

	subject := "Réinitialisation de votre mot de passe Tienda Gamer"
	htmlBody := utils.PasswordResetHTML(name, resetLink)

	if err := h.Mail.Send(email, subject, htmlBody); err != nil {
		log.Printf("❌ Erreur envoi email reset à %s: %v", email, err)
	} else {
		log.Printf("✅ Email de réinitialisation envoyé à %s", email)
	}
}
