package reports

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidType   = errors.New("unknown report type")
	ErrInvalidPeriod = errors.New("unknown report period")
)

type Service interface {
	ComputeReport(ctx context.Context, q Query) (*Report, error)
	GetDashboard(ctx context.Context, q Query) (*Dashboard, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

var monthLabels = [12]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Juin",
	"Juil", "Août", "Sep", "Oct", "Nov", "Déc",
}

// window resolves a query to an inclusive YYYY-MM-DD date range.
// Quarter is ceil(month/3), so any month of a quarter selects it.
func window(q Query) (from, to string, err error) {
	switch q.Period {
	case PeriodMonth:
		start := time.Date(q.Year, time.Month(q.Month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return start.Format("2006-01-02"), end.Format("2006-01-02"), nil
	case PeriodQuarter:
		quarter := (q.Month + 2) / 3
		firstMonth := (quarter-1)*3 + 1
		start := time.Date(q.Year, time.Month(firstMonth), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 3, -1)
		return start.Format("2006-01-02"), end.Format("2006-01-02"), nil
	case PeriodYear:
		return fmt.Sprintf("%04d-01-01", q.Year), fmt.Sprintf("%04d-12-31", q.Year), nil
	default:
		return "", "", ErrInvalidPeriod
	}
}

// bucketLabel groups a date into the series bucket for the period: days for
// a month window, months otherwise.
func bucketLabel(date string, period string) (string, bool) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", false
	}
	if period == PeriodMonth {
		return fmt.Sprintf("%02d", d.Day()), true
	}
	return monthLabels[int(d.Month())-1], true
}

// bucketOrder enumerates the series buckets for the window in order, so
// empty buckets still show up as zeros.
func bucketOrder(q Query) []string {
	switch q.Period {
	case PeriodMonth:
		days := time.Date(q.Year, time.Month(q.Month), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 1, -1).Day()
		out := make([]string, 0, days)
		for d := 1; d <= days; d++ {
			out = append(out, fmt.Sprintf("%02d", d))
		}
		return out
	case PeriodQuarter:
		quarter := (q.Month + 2) / 3
		first := (quarter - 1) * 3
		return []string{monthLabels[first], monthLabels[first+1], monthLabels[first+2]}
	default:
		return monthLabels[:]
	}
}

func (s *service) ComputeReport(ctx context.Context, q Query) (*Report, error) {
	switch q.Type {
	case ReportTypeIncome:
		income, err := s.incomeReport(ctx, q)
		if err != nil {
			return nil, err
		}
		return &Report{Type: q.Type, Income: income}, nil
	case ReportTypeExpenses:
		expenses, err := s.expensesReport(ctx, q)
		if err != nil {
			return nil, err
		}
		return &Report{Type: q.Type, Expenses: expenses}, nil
	case ReportTypeOccupancy:
		occ, err := s.occupancyReport(ctx, q)
		if err != nil {
			return nil, err
		}
		return &Report{Type: q.Type, Occupancy: occ}, nil
	case ReportTypeOverview:
		income, err := s.incomeReport(ctx, q)
		if err != nil {
			return nil, err
		}
		expenses, err := s.expensesReport(ctx, q)
		if err != nil {
			return nil, err
		}
		occ, err := s.occupancyReport(ctx, q)
		if err != nil {
			return nil, err
		}
		return &Report{
			Type: q.Type,
			Overview: &OverviewReport{
				NetProfit: income.Total - expenses.Total,
				Income:    *income,
				Expenses:  *expenses,
				Occupancy: *occ,
			},
		}, nil
	default:
		return nil, ErrInvalidType
	}
}

func (s *service) incomeReport(ctx context.Context, q Query) (*IncomeReport, error) {
	from, to, err := window(q)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.PaidPaymentsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	buckets := map[string]float64{}
	total := 0.0
	for _, row := range rows {
		if row.Date == nil {
			continue
		}
		label, ok := bucketLabel(*row.Date, q.Period)
		if !ok {
			continue
		}
		buckets[label] += row.Amount
		total += row.Amount
	}

	data := make([]SeriesPoint, 0)
	for _, label := range bucketOrder(q) {
		data = append(data, SeriesPoint{Label: label, Revenue: buckets[label]})
	}
	return &IncomeReport{Total: total, Data: data}, nil
}

func (s *service) expensesReport(ctx context.Context, q Query) (*ExpensesReport, error) {
	from, to, err := window(q)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ExpensesBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	buckets := map[string]float64{}
	byCategory := map[string]float64{}
	categories := make([]string, 0)
	total := 0.0
	for _, row := range rows {
		label, ok := bucketLabel(row.Date, q.Period)
		if !ok {
			continue
		}
		buckets[label] += row.Amount
		if _, seen := byCategory[row.Category]; !seen {
			categories = append(categories, row.Category)
		}
		byCategory[row.Category] += row.Amount
		total += row.Amount
	}

	data := make([]SeriesPoint, 0)
	for _, label := range bucketOrder(q) {
		data = append(data, SeriesPoint{Label: label, Expenses: buckets[label]})
	}
	cats := make([]CategoryTotal, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, CategoryTotal{Category: c, Total: byCategory[c]})
	}
	return &ExpensesReport{Total: total, Data: data, ByCategory: cats}, nil
}

// occupancyReport reports the current rate. The series repeats that snapshot
// across the window's buckets; no occupancy history is kept.
func (s *service) occupancyReport(ctx context.Context, q Query) (*OccupancyReport, error) {
	total, occupied, err := s.repo.UnitCounts(ctx)
	if err != nil {
		return nil, err
	}

	rate := 0.0
	if total > 0 {
		rate = float64(occupied) / float64(total) * 100
	}

	data := make([]SeriesPoint, 0)
	for _, label := range bucketOrder(q) {
		data = append(data, SeriesPoint{Label: label, Rate: rate})
	}
	return &OccupancyReport{
		Rate:          rate,
		TotalUnits:    total,
		OccupiedUnits: occupied,
		Data:          data,
	}, nil
}

const overdueLimit = 5

func (s *service) GetDashboard(ctx context.Context, q Query) (*Dashboard, error) {
	properties, err := s.repo.CountProperties(ctx)
	if err != nil {
		return nil, err
	}
	tenants, err := s.repo.CountTenants(ctx)
	if err != nil {
		return nil, err
	}
	totalUnits, occupied, err := s.repo.UnitCounts(ctx)
	if err != nil {
		return nil, err
	}

	income, err := s.incomeReport(ctx, q)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expensesReport(ctx, q)
	if err != nil {
		return nil, err
	}

	// Twelve-month revenue/expense series for the query's year.
	yearQuery := Query{Period: PeriodYear, Year: q.Year}
	yearIncome, err := s.incomeReport(ctx, yearQuery)
	if err != nil {
		return nil, err
	}
	yearExpenses, err := s.expensesReport(ctx, yearQuery)
	if err != nil {
		return nil, err
	}
	series := make([]SeriesPoint, 0, 12)
	for i := range yearIncome.Data {
		series = append(series, SeriesPoint{
			Label:    yearIncome.Data[i].Label,
			Revenue:  yearIncome.Data[i].Revenue,
			Expenses: yearExpenses.Data[i].Expenses,
		})
	}

	overdue, err := s.repo.OverduePayments(ctx, overdueLimit)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range overdue {
		days := int(now.Sub(overdue[i].CreatedAt).Hours() / 24)
		if days < 0 {
			days = 0
		}
		overdue[i].DaysLate = days
	}

	rate := 0.0
	if totalUnits > 0 {
		rate = float64(occupied) / float64(totalUnits) * 100
	}

	return &Dashboard{
		Properties:      properties,
		Units:           totalUnits,
		OccupiedUnits:   occupied,
		Tenants:         tenants,
		OccupancyRate:   rate,
		Revenue:         income.Total,
		Expenses:        expenses.Total,
		NetProfit:       income.Total - expenses.Total,
		RevenueSeries:   series,
		ExpenseByCat:    expenses.ByCategory,
		OverduePayments: overdue,
	}, nil
}
