package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrder is one repair job, tracked from intake to closure. It owns its
// items, attached services and media outright; the invoice only references it.
type WorkOrder struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint     `gorm:"not null" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	VehicleID uint    `gorm:"not null" json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"vehicle"`

	CreatedBy     uint `gorm:"not null" json:"created_by"`
	CreatedByUser User `gorm:"foreignKey:CreatedBy" json:"-"`

	Status    string `gorm:"size:30;not null;default:'new';index" json:"status"`
	Complaint string `gorm:"type:text" json:"complaint"`

	EstParts *decimal.Decimal `gorm:"type:decimal(12,2)" json:"est_parts"`
	EstLabor *decimal.Decimal `gorm:"type:decimal(12,2)" json:"est_labor"`
	// Always derived from est_parts + est_labor, never written directly.
	EstTotal *decimal.Decimal `gorm:"type:decimal(12,2)" json:"est_total"`

	FinalCost *decimal.Decimal `gorm:"type:decimal(12,2)" json:"final_cost"`

	WarrantyText string `gorm:"type:text" json:"warranty_text"`
	Notes        string `gorm:"type:text" json:"notes"`

	ScheduledAt *time.Time `json:"scheduled_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	Items    []WorkOrderItem    `gorm:"constraint:OnDelete:CASCADE;" json:"items,omitempty"`
	Services []WorkOrderService `gorm:"constraint:OnDelete:CASCADE;" json:"services,omitempty"`
	Media    []Media            `gorm:"constraint:OnDelete:CASCADE;" json:"media,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkOrderItem is one billable line (a part or a labor unit).
// Line total = qty * unit_price, computed on demand, never stored.
type WorkOrderItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WorkOrderID uint `gorm:"not null;index" json:"work_order_id"`

	// part | labor
	ItemType  string          `gorm:"size:10;not null" json:"item_type"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Qty       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"qty"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
}

const (
	ItemTypePart  = "part"
	ItemTypeLabor = "labor"
)

// LineTotal returns qty * unit_price, unrounded.
func (i WorkOrderItem) LineTotal() decimal.Decimal {
	return i.Qty.Mul(i.UnitPrice)
}

// WorkOrderService is a flat-rate catalog service attached to a work order.
// Price is copied from the catalog at attach time so later catalog edits do
// not rewrite history.
type WorkOrderService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WorkOrderID uint `gorm:"not null;index" json:"work_order_id"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Price decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}
