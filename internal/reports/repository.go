package reports

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	PaidPaymentsBetween(ctx context.Context, from, to string) ([]paidPayment, error)
	ExpensesBetween(ctx context.Context, from, to string) ([]expenseRow, error)
	UnitCounts(ctx context.Context) (total, occupied int64, err error)
	CountProperties(ctx context.Context) (int64, error)
	CountTenants(ctx context.Context) (int64, error)
	OverduePayments(ctx context.Context, limit int) ([]OverduePayment, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Dates are stored as YYYY-MM-DD strings, so range filters compare
// lexicographically. Rows without a date are excluded from windows.
func (r *gormRepository) PaidPaymentsBetween(ctx context.Context, from, to string) ([]paidPayment, error) {
	var rows []paidPayment
	err := r.db.WithContext(ctx).
		Table("payments").
		Select("payments.amount AS amount, payments.date AS date").
		Where("payments.status = ?", "paid").
		Where("payments.date IS NOT NULL AND payments.date >= ? AND payments.date <= ?", from, to).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) ExpensesBetween(ctx context.Context, from, to string) ([]expenseRow, error) {
	var rows []expenseRow
	err := r.db.WithContext(ctx).
		Table("expenses").
		Select("expenses.amount AS amount, expenses.date AS date, expenses.category AS category").
		Where("expenses.date >= ? AND expenses.date <= ?", from, to).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) UnitCounts(ctx context.Context) (int64, int64, error) {
	var total, occupied int64
	if err := r.db.WithContext(ctx).Table("units").Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Table("units").Where("status = ?", "occupied").Count(&occupied).Error; err != nil {
		return 0, 0, err
	}
	return total, occupied, nil
}

func (r *gormRepository) CountProperties(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("properties").Count(&n).Error
	return n, err
}

func (r *gormRepository) CountTenants(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("tenants").Count(&n).Error
	return n, err
}

func (r *gormRepository) OverduePayments(ctx context.Context, limit int) ([]OverduePayment, error) {
	var rows []OverduePayment
	err := r.db.WithContext(ctx).
		Table("payments").
		Select(`payments.id AS payment_id,
			payments.tenant_id AS tenant_id,
			COALESCE(t.name, 'Unknown') AS tenant_name,
			COALESCE(u.name, 'Unknown') AS unit_name,
			COALESCE(p.name, 'Unknown') AS property_name,
			payments.amount AS amount,
			payments.period AS period,
			payments.created_at AS created_at`).
		Joins("LEFT JOIN tenants t ON t.id = payments.tenant_id").
		Joins("LEFT JOIN units u ON u.id = t.unit_id").
		Joins("LEFT JOIN properties p ON p.id = u.property_id").
		Where("payments.status IN ?", []string{"unpaid", "partial"}).
		Order("payments.created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
