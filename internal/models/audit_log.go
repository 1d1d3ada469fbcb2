package models

import "time"

// AuditLog is append-only. ActorID is nil for customer-originated actions
// (decisions arriving through the public token endpoint).
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ActorID *uint  `json:"actor_id"`
	Action  string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50;index" json:"entity"`
	EntityID *uint  `json:"entity_id"`

	AttachmentURL string `gorm:"size:255" json:"attachment_url"`
	Metadata      string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
