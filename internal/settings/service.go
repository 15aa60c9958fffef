package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Service interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, in Input) (*Settings, error)
}

type service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) Service {
	return &service{db: db}
}

// Get returns the settings row, creating defaults on first access.
func (s *service) Get(ctx context.Context) (*Settings, error) {
	var st Settings
	err := s.db.WithContext(ctx).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		st = Settings{
			CompanyName: "Gestion Locative",
			Currency:    "FCFA",
		}
		if err := s.db.WithContext(ctx).Create(&st).Error; err != nil {
			return nil, err
		}
		return &st, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *service) Update(ctx context.Context, in Input) (*Settings, error) {
	st, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	st.CompanyName = in.CompanyName
	st.Address = in.Address
	st.Phone = in.Phone
	st.Email = in.Email
	st.Currency = in.Currency
	st.DarkMode = in.DarkMode

	if err := s.db.WithContext(ctx).Save(st).Error; err != nil {
		return nil, err
	}
	return st, nil
}
