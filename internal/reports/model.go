package reports

import (
	"time"
)

const (
	ReportTypeIncome    = "income"
	ReportTypeExpenses  = "expenses"
	ReportTypeOccupancy = "occupancy"
	ReportTypeOverview  = "overview"

	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"

	FormatPDF   = "pdf"
	FormatExcel = "excel"
	FormatCSV   = "csv"
)

// Query selects the reporting window. Month is 1-12 and only consulted for
// the month and quarter periods; quarter is derived as ceil(month/3).
type Query struct {
	Type   string
	Period string
	Year   int
	Month  int
}

type SeriesPoint struct {
	Label    string  `json:"label"`
	Revenue  float64 `json:"revenue,omitempty"`
	Expenses float64 `json:"expenses,omitempty"`
	Rate     float64 `json:"rate,omitempty"`
}

type IncomeReport struct {
	Total float64       `json:"total"`
	Data  []SeriesPoint `json:"data"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type ExpensesReport struct {
	Total      float64         `json:"total"`
	Data       []SeriesPoint   `json:"data"`
	ByCategory []CategoryTotal `json:"by_category"`
}

// OccupancyReport carries the current rate. The time series repeats that
// snapshot for every point; there is no historical occupancy record.
type OccupancyReport struct {
	Rate          float64       `json:"rate"`
	TotalUnits    int64         `json:"total_units"`
	OccupiedUnits int64         `json:"occupied_units"`
	Data          []SeriesPoint `json:"data"`
}

type OverviewReport struct {
	NetProfit float64         `json:"net_profit"`
	Income    IncomeReport    `json:"income"`
	Expenses  ExpensesReport  `json:"expenses"`
	Occupancy OccupancyReport `json:"occupancy"`
}

// Report is the polymorphic response body; exactly one field is set.
type Report struct {
	Type      string           `json:"type"`
	Income    *IncomeReport    `json:"income,omitempty"`
	Expenses  *ExpensesReport  `json:"expenses,omitempty"`
	Occupancy *OccupancyReport `json:"occupancy,omitempty"`
	Overview  *OverviewReport  `json:"overview,omitempty"`
}

type OverduePayment struct {
	PaymentID    uint      `json:"payment_id"`
	TenantID     uint      `json:"tenant_id"`
	TenantName   string    `json:"tenant_name"`
	UnitName     string    `json:"unit_name"`
	PropertyName string    `json:"property_name"`
	Amount       float64   `json:"amount"`
	Period       string    `json:"period"`
	CreatedAt    time.Time `json:"-"`
	DaysLate     int       `json:"days_late"`
}

type Dashboard struct {
	Properties      int64           `json:"properties"`
	Units           int64           `json:"units"`
	OccupiedUnits   int64           `json:"occupied_units"`
	Tenants         int64           `json:"tenants"`
	OccupancyRate   float64         `json:"occupancy_rate"`
	Revenue         float64         `json:"revenue"`
	Expenses        float64         `json:"expenses"`
	NetProfit       float64         `json:"net_profit"`
	RevenueSeries   []SeriesPoint   `json:"revenue_series"`
	ExpenseByCat    []CategoryTotal `json:"expenses_by_category"`
	OverduePayments []OverduePayment `json:"overdue_payments"`
}

// paidPayment is the slice of a payment row the aggregator needs.
type paidPayment struct {
	Amount float64
	Date   *string
}

type expenseRow struct {
	Amount   float64
	Date     string
	Category string
}
