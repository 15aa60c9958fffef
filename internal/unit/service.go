package unit

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("unit not found")
	ErrPropertyNotFound = errors.New("property not found")
)

type Service interface {
	CreateUnit(ctx context.Context, in Input) (*Unit, error)
	GetUnit(ctx context.Context, id uint) (*Unit, error)
	ListUnits(ctx context.Context, propertyID *uint) ([]WithDetails, error)
	UpdateUnit(ctx context.Context, id uint, in Input) (*Unit, error)
	DeleteUnit(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
	db   *gorm.DB
}

func NewService(repo Repository, db *gorm.DB) Service {
	return &service{repo: repo, db: db}
}

func (s *service) CreateUnit(ctx context.Context, in Input) (*Unit, error) {
	if err := s.propertyExists(ctx, in.PropertyID); err != nil {
		return nil, err
	}

	u := &Unit{
		PropertyID: in.PropertyID,
		Name:       strings.TrimSpace(in.Name),
		Type:       in.Type,
		Size:       in.Size,
		Rent:       in.Rent,
		Status:     StatusVacant,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetUnit(ctx context.Context, id uint) (*Unit, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *service) ListUnits(ctx context.Context, propertyID *uint) ([]WithDetails, error) {
	return s.repo.List(ctx, propertyID)
}

func (s *service) UpdateUnit(ctx context.Context, id uint, in Input) (*Unit, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	if in.PropertyID != u.PropertyID {
		if err := s.propertyExists(ctx, in.PropertyID); err != nil {
			return nil, err
		}
	}

	u.PropertyID = in.PropertyID
	u.Name = strings.TrimSpace(in.Name)
	u.Type = in.Type
	u.Size = in.Size
	u.Rent = in.Rent

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) DeleteUnit(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return s.repo.DeleteCascade(ctx, id)
}

func (s *service) propertyExists(ctx context.Context, propertyID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Table("properties").Where("id = ?", propertyID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrPropertyNotFound
	}
	return nil
}
