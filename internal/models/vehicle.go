package models

import "time"

type Vehicle struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint     `gorm:"not null" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PlateNo  string `gorm:"size:20;not null" json:"plate_no"`
	Make     string `gorm:"size:50;not null" json:"make"`
	Model    string `gorm:"size:50;not null" json:"model"`
	Year     int    `json:"year"`
	VIN      string `gorm:"size:30" json:"vin"`
	Odometer int    `json:"odometer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
