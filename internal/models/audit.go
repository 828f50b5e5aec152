package models

import "time"

// AuditEvent trace une action sensible sur un compte (meilleur effort).
type AuditEvent struct {
	EventID   string    `bson:"_id" json:"eventId"`
	UserID    string    `bson:"userId" json:"userId"`
	Action    string    `bson:"action" json:"action"`
	IP        string    `bson:"ip" json:"ip"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
