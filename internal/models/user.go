package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName string `gorm:"size:100;not null" json:"full_name"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone    string `gorm:"size:20" json:"phone"`

	// engineer | sales | admin
	Role string `gorm:"size:20;not null" json:"role"`

	PasswordHash string `gorm:"not null" json:"-"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleEngineer = "engineer"
	RoleSales    = "sales"
	RoleAdmin    = "admin"
)
