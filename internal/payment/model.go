package payment

import (
	"time"
)

const (
	StatusPaid    = "paid"
	StatusPartial = "partial"
	StatusUnpaid  = "unpaid"

	TypeRent    = "rent"
	TypeDeposit = "deposit"
	TypeCharges = "charges"
)

// Payment is one billing record. At most one payment exists per
// (tenant, period, type); the period is an opaque human label such as
// "Mars 2025". Dates travel as YYYY-MM-DD strings.
type Payment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TenantID   uint      `gorm:"not null;index" json:"tenant_id"`
	Amount     float64   `gorm:"not null" json:"amount"`
	PaidAmount *float64  `gorm:"column:paid_amount" json:"paid_amount,omitempty"`
	Date       *string   `gorm:"size:10" json:"date"`
	Type       string    `gorm:"size:20;not null" json:"type"`
	Status     string    `gorm:"size:20;not null" json:"status"`
	Period     string    `gorm:"size:50;not null;index" json:"period"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// WithDetails decorates a payment with display names resolved through LEFT
// JOINs; broken references fall back to "Unknown" instead of failing.
type WithDetails struct {
	Payment
	TenantName   string `json:"tenant_name"`
	UnitName     string `json:"unit_name"`
	PropertyName string `json:"property_name"`
}

type RecordInput struct {
	TenantID uint    `json:"tenant_id" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	Date     string  `json:"date" binding:"required"`
	Type     string  `json:"type" binding:"required,oneof=rent deposit charges"`
	Period   string  `json:"period" binding:"required"`
}

type UpdateInput struct {
	Amount     float64  `json:"amount" binding:"required"`
	PaidAmount *float64 `json:"paid_amount"`
	Date       *string  `json:"date"`
	Type       string   `json:"type" binding:"required,oneof=rent deposit charges"`
	Status     string   `json:"status" binding:"required,oneof=paid partial unpaid"`
	Period     string   `json:"period" binding:"required"`
}

type ListFilter struct {
	Period   string
	Status   string
	TenantID *uint
}

// GenerateOutcome is the per-tenant result of a bulk generation run.
type GenerateOutcome struct {
	TenantID   uint   `json:"tenant_id"`
	TenantName string `json:"tenant_name"`
	Status     string `json:"status"` // created | exists | error
	PaymentID  uint   `json:"payment_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

type GenerateResult struct {
	Message string            `json:"message"`
	Results []GenerateOutcome `json:"results"`
}

// occupiedTenant is a tenant on an occupied unit, with that unit's rent.
type occupiedTenant struct {
	TenantID   uint
	TenantName string
	Rent       float64
}
