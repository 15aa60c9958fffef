package expense

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id uint) (*Expense, error)
	GetWithDetails(ctx context.Context, id uint) (*WithDetails, error)
	List(ctx context.Context, f ListFilter) ([]WithDetails, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id uint) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

const detailSelect = `expenses.*, COALESCE(p.name, 'Unknown') AS property_name`

func (r *gormRepository) Create(ctx context.Context, e *Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uint) (*Expense, error) {
	var e Expense
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *gormRepository) GetWithDetails(ctx context.Context, id uint) (*WithDetails, error) {
	var row WithDetails
	err := r.db.WithContext(ctx).
		Table("expenses").
		Select(detailSelect).
		Joins("LEFT JOIN properties p ON p.id = expenses.property_id").
		Where("expenses.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRepository) List(ctx context.Context, f ListFilter) ([]WithDetails, error) {
	q := r.db.WithContext(ctx).
		Table("expenses").
		Select(detailSelect).
		Joins("LEFT JOIN properties p ON p.id = expenses.property_id")

	if f.PropertyID != nil {
		q = q.Where("expenses.property_id = ?", *f.PropertyID)
	}
	if f.Category != "" {
		q = q.Where("expenses.category = ?", f.Category)
	}
	if f.From != "" {
		q = q.Where("expenses.date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("expenses.date <= ?", f.To)
	}

	var rows []WithDetails
	if err := q.Order("expenses.date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) Update(ctx context.Context, e *Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Expense{}, id).Error
}
