package domain

import "time"

// AuditLog is a best-effort trail row. Writes must never fail a request.
type AuditLog struct {
	ID         string         `json:"id" gorm:"primaryKey;size:36"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id" gorm:"index;size:36"`
	ActorID    *string        `json:"actor_id,omitempty" gorm:"size:36"`
	Changes    map[string]any `json:"changes,omitempty" gorm:"serializer:json"`
	CreatedAt  time.Time      `json:"created_at"`
}
