package models

import "time"

// Media is a photo attached to a work order. Owned by the work order.
type Media struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WorkOrderID uint `gorm:"not null;index" json:"work_order_id"`

	// before | during | after
	Phase string `gorm:"size:10;not null" json:"phase"`

	Path      string `gorm:"size:255;not null" json:"path"`
	ThumbPath string `gorm:"size:255" json:"thumb_path"`
	Mime      string `gorm:"size:50" json:"mime"`
	Note      string `gorm:"size:255" json:"note"`

	CreatedAt time.Time `json:"created_at"`
}

const (
	MediaPhaseBefore = "before"
	MediaPhaseDuring = "during"
	MediaPhaseAfter  = "after"
)
