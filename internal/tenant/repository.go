package tenant

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id uint) (*Tenant, error)
	GetWithDetails(ctx context.Context, id uint) (*WithDetails, error)
	List(ctx context.Context) ([]WithDetails, error)
	Update(ctx context.Context, t *Tenant) error
	Delete(ctx context.Context, id uint) error
	UpdatePaymentStatus(ctx context.Context, id uint, status string) error
	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, t *Tenant) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Tenant, error) {
	var t Tenant
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

const detailSelect = `
	t.id, t.name, t.phone, t.email, t.unit_id, t.deposit_amount,
	t.lease_start, t.lease_end, t.payment_status, t.created_at, t.updated_at,
	COALESCE(u.name, 'Unknown') as unit_name,
	COALESCE(u.rent, 0) as rent_amount,
	COALESCE(p.name, 'Unknown') as property_name
`

func (r *repository) GetWithDetails(ctx context.Context, id uint) (*WithDetails, error) {
	var t WithDetails
	err := r.db.WithContext(ctx).
		Table("tenants t").
		Select(detailSelect).
		Joins("LEFT JOIN units u ON t.unit_id = u.id").
		Joins("LEFT JOIN properties p ON u.property_id = p.id").
		Where("t.id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) List(ctx context.Context) ([]WithDetails, error) {
	var tenants []WithDetails
	err := r.db.WithContext(ctx).
		Table("tenants t").
		Select(detailSelect).
		Joins("LEFT JOIN units u ON t.unit_id = u.id").
		Joins("LEFT JOIN properties p ON u.property_id = p.id").
		Order("t.created_at DESC").
		Find(&tenants).Error
	return tenants, err
}

func (r *repository) Update(ctx context.Context, t *Tenant) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Tenant{}, id).Error
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&Tenant{}).
		Where("id = ?", id).
		Update("payment_status", status).Error
}
