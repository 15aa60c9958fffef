package expense

import (
	"time"
)

const (
	CategoryUtilities   = "utilities"
	CategoryMaintenance = "maintenance"
	CategoryRepairs     = "repairs"
	CategoryTaxes       = "taxes"
	CategoryInsurance   = "insurance"
	CategoryWater       = "water"
	CategoryElectricity = "electricity"
	CategoryOther       = "other"
)

type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PropertyID  uint      `gorm:"not null;index" json:"property_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Date        string    `gorm:"size:10;not null" json:"date"`
	Category    string    `gorm:"size:30;not null" json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

type WithDetails struct {
	Expense
	PropertyName string `json:"property_name"`
}

type Input struct {
	PropertyID  uint    `json:"property_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Category    string  `json:"category" binding:"required,oneof=utilities maintenance repairs taxes insurance water electricity other"`
	Description string  `json:"description"`
}

type ListFilter struct {
	PropertyID *uint
	Category   string
	From       string
	To         string
}
