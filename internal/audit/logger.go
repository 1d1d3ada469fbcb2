package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/WorkshopServices01/workshop-api/internal/models"
)

// Entry is one append-only audit record. ActorID is nil for actions that
// arrive through the public token endpoint (customer-originated).
type Entry struct {
	ActorID       *uint
	Action        string
	Entity        string
	EntityID      *uint
	AttachmentURL string
	Metadata      any
}

type Sink interface {
	Log(e Entry) error
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(e Entry) error {
	var metaJSON string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	rec := models.AuditLog{
		ActorID:       e.ActorID,
		Action:        e.Action,
		Entity:        e.Entity,
		EntityID:      e.EntityID,
		AttachmentURL: e.AttachmentURL,
		Metadata:      metaJSON,
	}

	return l.db.Create(&rec).Error
}

var _ Sink = (*Logger)(nil)
