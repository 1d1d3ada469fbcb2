package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part is a catalog entry for stocked parts.
type Part struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string          `gorm:"size:100;not null" json:"name"`
	SKU       string          `gorm:"size:50;uniqueIndex" json:"sku"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Stock     int             `gorm:"default:0" json:"stock"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service is a catalog entry for flat-rate services (oil change, alignment, ...).
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string          `gorm:"size:100;not null" json:"name"`
	Category  string          `gorm:"size:50" json:"category"`
	BasePrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"base_price"`
	Active    bool            `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
