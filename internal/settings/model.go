package settings

import (
	"time"
)

// Settings is the single-row application configuration: landlord identity
// and currency. Every consumer (receipts, reports) reads this one
// authoritative copy instead of carrying its own.
type Settings struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyName string    `gorm:"size:100;not null" json:"company_name"`
	Address     string    `gorm:"size:255" json:"address"`
	Phone       string    `gorm:"size:30" json:"phone"`
	Email       string    `gorm:"size:100" json:"email"`
	Currency    string    `gorm:"size:10;not null;default:FCFA" json:"currency"`
	DarkMode    bool      `json:"dark_mode"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}

type Input struct {
	CompanyName string `json:"company_name" binding:"required"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Currency    string `json:"currency" binding:"required"`
	DarkMode    bool   `json:"dark_mode"`
}
