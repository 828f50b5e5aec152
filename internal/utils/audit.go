package utils

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"tienda_gamer_back_end/internal/models"
)

const (
	ActionRegister      = "account.register"
	ActionLogin         = "account.login"
	ActionProfileUpdate = "account.profile_update"
	ActionDelete        = "account.delete"
)

// LogAction enregistre un évènement d'audit en arrière-plan, au mieux :
// un échec d'audit ne doit jamais faire échouer la requête.
func LogAction(db *mongo.Database, userID, action, ip string) {
	if db == nil {
		return
	}

	event := models.AuditEvent{
		EventID:   uuid.NewString(),
		UserID:    userID,
		Action:    action,
		IP:        ip,
		CreatedAt: time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := db.Collection("audit_events").InsertOne(ctx, event); err != nil {
			log.Printf("⚠️ Erreur écriture audit (%s): %v", action, err)
		}
	}()
}
