package property

import (
	"time"
)

// Property is a building that owns zero or more units.
type Property struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Address   string    `gorm:"size:255;not null" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Property) TableName() string {
	return "properties"
}

type Input struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// WithStats decorates a property with unit occupancy counts for list views.
type WithStats struct {
	Property
	UnitCount     int `json:"unit_count"`
	OccupiedCount int `json:"occupied_count"`
}
