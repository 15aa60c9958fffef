package unit

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, u *Unit) error
	GetByID(ctx context.Context, id uint) (*Unit, error)
	List(ctx context.Context, propertyID *uint) ([]WithDetails, error)
	Update(ctx context.Context, u *Unit) error
	// DeleteCascade removes the unit and any tenants assigned to it.
	DeleteCascade(ctx context.Context, id uint) error

	// SetStatus flips a unit between vacant and occupied. Callers running a
	// multi-step reconciliation pass their transaction via WithTx.
	SetStatus(ctx context.Context, id uint, status string) error
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

func (r *repository) Create(ctx context.Context, u *Unit) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Unit, error) {
	var u Unit
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context, propertyID *uint) ([]WithDetails, error) {
	query := r.db.WithContext(ctx).
		Table("units u").
		Select(`
			u.id, u.property_id, u.name, u.type, u.size, u.rent, u.status,
			u.created_at, u.updated_at,
			COALESCE(p.name, 'Unknown') as property_name,
			COALESCE(t.name, '') as tenant_name
		`).
		Joins("LEFT JOIN properties p ON u.property_id = p.id").
		Joins("LEFT JOIN tenants t ON t.unit_id = u.id")

	if propertyID != nil {
		query = query.Where("u.property_id = ?", *propertyID)
	}

	var units []WithDetails
	err := query.Order("u.created_at DESC").Find(&units).Error
	return units, err
}

func (r *repository) Update(ctx context.Context, u *Unit) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM tenants WHERE unit_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Unit{}, id).Error
	})
}

func (r *repository) SetStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&Unit{}).
		Where("id = ?", id).
		Update("status", status).Error
}
