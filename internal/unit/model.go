package unit

import (
	"time"
)

const (
	StatusVacant   = "vacant"
	StatusOccupied = "occupied"

	TypeApartment = "apartment"
	TypeStudio    = "studio"
)

// Unit is a single rentable space within a property. Status is occupied iff
// exactly one tenant references it.
type Unit struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Type       string    `gorm:"size:20;not null" json:"type"`
	Size       float64   `gorm:"not null" json:"size"`
	Rent       float64   `gorm:"not null" json:"rent"`
	Status     string    `gorm:"size:20;not null;default:vacant" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Unit) TableName() string {
	return "units"
}

type Input struct {
	PropertyID uint    `json:"property_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Type       string  `json:"type" binding:"required,oneof=apartment studio"`
	Size       float64 `json:"size" binding:"required"`
	Rent       float64 `json:"rent" binding:"required"`
}

// WithDetails decorates a unit with its property and current tenant names.
type WithDetails struct {
	Unit
	PropertyName string `json:"property_name"`
	TenantName   string `json:"tenant_name,omitempty"`
}
