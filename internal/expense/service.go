package expense

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("expense not found")
	ErrPropertyNotFound = errors.New("property not found")
)

type Service interface {
	CreateExpense(ctx context.Context, in Input) (*WithDetails, error)
	GetExpense(ctx context.Context, id uint) (*WithDetails, error)
	ListExpenses(ctx context.Context, f ListFilter) ([]WithDetails, error)
	UpdateExpense(ctx context.Context, id uint, in Input) (*WithDetails, error)
	DeleteExpense(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
	db   *gorm.DB
}

func NewService(repo Repository, db *gorm.DB) Service {
	return &service{repo: repo, db: db}
}

func (s *service) propertyExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Table("properties").Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *service) CreateExpense(ctx context.Context, in Input) (*WithDetails, error) {
	ok, err := s.propertyExists(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPropertyNotFound
	}

	e := &Expense{
		PropertyID:  in.PropertyID,
		Amount:      in.Amount,
		Date:        in.Date,
		Category:    in.Category,
		Description: in.Description,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return s.repo.GetWithDetails(ctx, e.ID)
}

func (s *service) GetExpense(ctx context.Context, id uint) (*WithDetails, error) {
	row, err := s.repo.GetWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}

func (s *service) ListExpenses(ctx context.Context, f ListFilter) ([]WithDetails, error) {
	return s.repo.List(ctx, f)
}

func (s *service) UpdateExpense(ctx context.Context, id uint, in Input) (*WithDetails, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.PropertyID != e.PropertyID {
		ok, err := s.propertyExists(ctx, in.PropertyID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrPropertyNotFound
		}
	}

	e.PropertyID = in.PropertyID
	e.Amount = in.Amount
	e.Date = in.Date
	e.Category = in.Category
	e.Description = in.Description

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return s.repo.GetWithDetails(ctx, e.ID)
}

func (s *service) DeleteExpense(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
