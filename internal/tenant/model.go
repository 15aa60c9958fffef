package tenant

import (
	"time"
)

const (
	PaymentStatusUpToDate = "up-to-date"
	PaymentStatusLate     = "late"
)

// Tenant occupies exactly one unit. Creating or moving a tenant flips the
// target unit to occupied; deleting the tenant releases it.
type Tenant struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Phone         string    `gorm:"size:30;not null" json:"phone"`
	Email         *string   `gorm:"size:100" json:"email"`
	UnitID        uint      `gorm:"not null;index" json:"unit_id"`
	DepositAmount float64   `gorm:"not null" json:"deposit_amount"`
	LeaseStart    string    `gorm:"size:10;not null" json:"lease_start"` // YYYY-MM-DD
	LeaseEnd      *string   `gorm:"size:10" json:"lease_end"`
	PaymentStatus string    `gorm:"column:payment_status;size:20;not null;default:up-to-date" json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

type CreateInput struct {
	Name          string  `json:"name" binding:"required"`
	Phone         string  `json:"phone" binding:"required"`
	Email         *string `json:"email"`
	UnitID        uint    `json:"unit_id" binding:"required"`
	DepositAmount float64 `json:"deposit_amount" binding:"required"`
	LeaseStart    string  `json:"lease_start" binding:"required"`
	LeaseEnd      *string `json:"lease_end"`
}

type UpdateInput struct {
	Name          string  `json:"name" binding:"required"`
	Phone         string  `json:"phone" binding:"required"`
	Email         *string `json:"email"`
	UnitID        uint    `json:"unit_id" binding:"required"`
	DepositAmount float64 `json:"deposit_amount" binding:"required"`
	LeaseStart    string  `json:"lease_start" binding:"required"`
	LeaseEnd      *string `json:"lease_end"`
	PaymentStatus string  `json:"payment_status" binding:"required,oneof=up-to-date late"`
}

// WithDetails decorates a tenant with unit and property display fields.
// Lookups are non-fatal: a broken reference renders as "Unknown".
type WithDetails struct {
	Tenant
	UnitName     string  `json:"unit_name"`
	RentAmount   float64 `json:"rent_amount"`
	PropertyName string  `json:"property_name"`
}
