package payment

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uint) (*Payment, error)
	GetWithDetails(ctx context.Context, id uint) (*WithDetails, error)
	FindByTenantPeriodType(ctx context.Context, tenantID uint, period, typ string) (*Payment, error)
	List(ctx context.Context, f ListFilter) ([]WithDetails, error)
	ListOccupiedTenants(ctx context.Context) ([]occupiedTenant, error)
	Update(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id uint) error
	WithTx(tx *gorm.DB) Repository
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{db: tx}
}

const detailSelect = `payments.*,
	COALESCE(t.name, 'Unknown') AS tenant_name,
	COALESCE(u.name, 'Unknown') AS unit_name,
	COALESCE(p.name, 'Unknown') AS property_name`

func (r *gormRepository) Create(ctx context.Context, p *Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uint) (*Payment, error) {
	var p Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) GetWithDetails(ctx context.Context, id uint) (*WithDetails, error) {
	var row WithDetails
	err := r.db.WithContext(ctx).
		Table("payments").
		Select(detailSelect).
		Joins("LEFT JOIN tenants t ON t.id = payments.tenant_id").
		Joins("LEFT JOIN units u ON u.id = t.unit_id").
		Joins("LEFT JOIN properties p ON p.id = u.property_id").
		Where("payments.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRepository) FindByTenantPeriodType(ctx context.Context, tenantID uint, period, typ string) (*Payment, error) {
	var p Payment
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND period = ? AND type = ?", tenantID, period, typ).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) List(ctx context.Context, f ListFilter) ([]WithDetails, error) {
	q := r.db.WithContext(ctx).
		Table("payments").
		Select(detailSelect).
		Joins("LEFT JOIN tenants t ON t.id = payments.tenant_id").
		Joins("LEFT JOIN units u ON u.id = t.unit_id").
		Joins("LEFT JOIN properties p ON p.id = u.property_id")

	if f.Period != "" {
		q = q.Where("payments.period = ?", f.Period)
	}
	if f.Status != "" {
		q = q.Where("payments.status = ?", f.Status)
	}
	if f.TenantID != nil {
		q = q.Where("payments.tenant_id = ?", *f.TenantID)
	}

	var rows []WithDetails
	if err := q.Order("payments.created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) ListOccupiedTenants(ctx context.Context) ([]occupiedTenant, error) {
	var rows []occupiedTenant
	err := r.db.WithContext(ctx).
		Table("tenants").
		Select("tenants.id AS tenant_id, tenants.name AS tenant_name, u.rent AS rent").
		Joins("JOIN units u ON u.id = tenants.unit_id").
		Where("u.status = ?", "occupied").
		Order("tenants.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) Update(ctx context.Context, p *Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Payment{}, id).Error
}
