package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the single bill for one work order. State-free: all monetary
// fields are fixed at creation, only paid moves as payments are applied.
type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// At most one invoice per work order.
	WorkOrderID uint      `gorm:"not null;uniqueIndex" json:"work_order_id"`
	WorkOrder   WorkOrder `gorm:"constraint:OnUpdate:CASCADE;" json:"-"`

	Subtotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Discount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount"`
	Tax      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	// Running sum of payments; never exceeds total.
	Paid decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"paid"`

	Method string `gorm:"size:20" json:"method"`

	Payments []Payment `gorm:"constraint:OnDelete:CASCADE;" json:"payments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Balance returns total - paid. Never negative by invariant.
func (inv *Invoice) Balance() decimal.Decimal {
	return inv.Total.Sub(inv.Paid)
}

// Payment is one settlement against an invoice. Immutable after creation.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	InvoiceID uint `gorm:"not null;index" json:"invoice_id"`

	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method string          `gorm:"size:20" json:"method"`
	Ref    string          `gorm:"size:100" json:"ref"`

	PaidAt time.Time `json:"paid_at"`
}

const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)
