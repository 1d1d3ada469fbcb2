package models

import "time"

// ApprovalRequest is one outstanding or resolved customer-approval attempt.
// The token is the only credential the customer ever holds.
type ApprovalRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WorkOrderID uint      `gorm:"not null;index" json:"work_order_id"`
	WorkOrder   WorkOrder `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	// email | whatsapp
	SentVia string `gorm:"size:20;not null" json:"sent_via"`

	// Monotonic false -> true. Once true, decision and decided_at are frozen.
	IsUsed bool `gorm:"not null;default:false" json:"is_used"`

	// approve | reject; empty while undecided or when superseded by a re-send.
	Decision  string     `gorm:"size:10" json:"decision"`
	Reason    string     `gorm:"type:text" json:"reason"`
	DecidedAt *time.Time `json:"decided_at"`

	CreatedAt time.Time `json:"created_at"`
}

const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"

	DecisionApprove = "approve"
	DecisionReject  = "reject"
)
