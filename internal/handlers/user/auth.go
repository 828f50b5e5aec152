package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tienda_gamer_back_end/internal/cache"
	"tienda_gamer_back_end/internal/models"
	"tienda_gamer_back_end/internal/storage"
	storerrors "tienda_gamer_back_end/internal/storage/errors"
	"tienda_gamer_back_end/internal/utils"
)

// AuthHandler regroupe les endpoints de compte : inscription, connexion,
// profil, suppression et réinitialisation de mot de passe.
type AuthHandler struct {
	Users   storage.UserStorage
	Carts   storage.CartStorage
	Cache   *cache.CartCache
	Rdb     *redis.Client
	Mail    *utils.Mailer
	AuditDB *mongo.Database
}

// ================== INSCRIPTION / CONNEXION ==================

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID().Hex(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storerrors.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cet email est déjà enregistré"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	utils.LogAction(h.AuditDB, user.ID, utils.ActionRegister, c.ClientIP())
	c.JSON(http.StatusCreated, gin.H{"message": "Utilisateur enregistré avec succès"})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// même réponse pour email inconnu et mot de passe incorrect
	user, err := h.Users.GetUserByEmail(ctx, input.Email)
	valid := false
	if err == nil {
		valid, _ = utils.VerifyPassword(input.Password, user.Password)
	}
	if !valid {
		// signal pour le rate limit : seuls les vrais échecs d'identifiants comptent
		c.Set("login_failed", true)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiants invalides"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	utils.LogAction(h.AuditDB, user.ID, utils.ActionLogin, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// ================== PROFIL ==================

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storerrors.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// PUT /api/auth/profile
// Le nom est toujours mis à jour ; changer de mot de passe exige le mot de
// passe actuel vérifié.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Name            string `json:"name" binding:"required"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := h.Users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storerrors.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if input.CurrentPassword != "" {
		valid, _ := utils.VerifyPassword(input.CurrentPassword, user.Password)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mot de passe actuel incorrect"})
			return
		}
	}

	if input.NewPassword != "" {
		if input.CurrentPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mot de passe actuel requis"})
			return
		}
		hashedPassword, err := utils.HashPassword(input.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}
		user.Password = hashedPassword
	}

	user.Name = input.Name
	user.UpdatedAt = time.Now()

	if err := h.Users.UpdateUser(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour profil"})
		return
	}

	utils.LogAction(h.AuditDB, userID, utils.ActionProfileUpdate, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "Profil mis à jour avec succès"})
}

// DELETE /api/auth/profile
// Supprime le compte et son panier (pas de document orphelin).
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Users.DeleteUser(ctx, userID); err != nil && !errors.Is(err, storerrors.ErrUserNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du compte"})
		return
	}

	if err := h.Carts.DeleteCart(ctx, userID); err == nil {
		h.Cache.Invalidate(ctx, userID)
		h.Cache.Notify(ctx, userID, cache.EventCleared)
	}

	utils.LogAction(h.AuditDB, userID, utils.ActionDelete, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "Compte supprimé avec succès"})
}
