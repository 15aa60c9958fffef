package property

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, id uint) (*Property, error)
	List(ctx context.Context) ([]WithStats, error)
	Update(ctx context.Context, p *Property) error
	// DeleteCascade removes the property together with its units and their
	// tenants in one transaction. Payments are never cascade-deleted.
	DeleteCascade(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Property, error) {
	var p Property
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]WithStats, error) {
	var props []WithStats
	err := r.db.WithContext(ctx).
		Table("properties p").
		Select(`
			p.id, p.name, p.address, p.created_at, p.updated_at,
			COUNT(u.id) as unit_count,
			COALESCE(SUM(CASE WHEN u.status = 'occupied' THEN 1 ELSE 0 END), 0) as occupied_count
		`).
		Joins("LEFT JOIN units u ON u.property_id = p.id").
		Group("p.id, p.name, p.address, p.created_at, p.updated_at").
		Order("p.created_at DESC").
		Find(&props).Error
	return props, err
}

func (r *repository) Update(ctx context.Context, p *Property) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM tenants WHERE unit_id IN (SELECT id FROM units WHERE property_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM units WHERE property_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Property{}, id).Error
	})
}
