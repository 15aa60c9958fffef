package property

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("property not found")

type Service interface {
	CreateProperty(ctx context.Context, in Input) (*Property, error)
	GetProperty(ctx context.Context, id uint) (*Property, error)
	ListProperties(ctx context.Context) ([]WithStats, error)
	UpdateProperty(ctx context.Context, id uint, in Input) (*Property, error)
	DeleteProperty(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateProperty(ctx context.Context, in Input) (*Property, error) {
	p := &Property{
		Name:    strings.TrimSpace(in.Name),
		Address: strings.TrimSpace(in.Address),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProperty(ctx context.Context, id uint) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *service) ListProperties(ctx context.Context) ([]WithStats, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateProperty(ctx context.Context, id uint, in Input) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Address = strings.TrimSpace(in.Address)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProperty(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return s.repo.DeleteCascade(ctx, id)
}
