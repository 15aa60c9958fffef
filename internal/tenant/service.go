package tenant

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/gorgui02/rental-management-backend/internal/auditlog"
	"github.com/gorgui02/rental-management-backend/internal/unit"
)

var (
	ErrNotFound        = errors.New("tenant not found")
	ErrUnitUnavailable = errors.New("unit unavailable or does not exist")
)

type Service interface {
	CreateTenant(ctx context.Context, in CreateInput) (*WithDetails, error)
	GetTenant(ctx context.Context, id uint) (*WithDetails, error)
	ListTenants(ctx context.Context) ([]WithDetails, error)
	UpdateTenant(ctx context.Context, id uint, in UpdateInput) (*WithDetails, error)
	DeleteTenant(ctx context.Context, id uint) error
}

type service struct {
	repo     Repository
	units    unit.Repository
	db       *gorm.DB
	auditSvc auditlog.Service
}

func NewService(repo Repository, units unit.Repository, db *gorm.DB, auditSvc auditlog.Service) Service {
	return &service{repo: repo, units: units, db: db, auditSvc: auditSvc}
}

// CreateTenant assigns the tenant to a vacant unit and flips it to occupied,
// both inside one transaction so the occupancy invariant holds under
// concurrent requests.
func (s *service) CreateTenant(ctx context.Context, in CreateInput) (*WithDetails, error) {
	t := &Tenant{
		Name:          strings.TrimSpace(in.Name),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         in.Email,
		UnitID:        in.UnitID,
		DepositAmount: in.DepositAmount,
		LeaseStart:    in.LeaseStart,
		LeaseEnd:      in.LeaseEnd,
		PaymentStatus: PaymentStatusUpToDate,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		units := s.units.WithTx(tx)

		target, err := units.GetByID(ctx, in.UnitID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnitUnavailable
		} else if err != nil {
			return err
		}
		if target.Status != unit.StatusVacant {
			return ErrUnitUnavailable
		}

		if err := s.repo.WithTx(tx).Create(ctx, t); err != nil {
			return err
		}
		return units.SetStatus(ctx, in.UnitID, unit.StatusOccupied)
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(ctx, nil, "TENANT_CREATED", map[string]interface{}{
		"tenant_id": t.ID, "unit_id": t.UnitID,
	}, "", "success")

	return s.repo.GetWithDetails(ctx, t.ID)
}

func (s *service) GetTenant(ctx context.Context, id uint) (*WithDetails, error) {
	t, err := s.repo.GetWithDetails(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return t, err
}

func (s *service) ListTenants(ctx context.Context) ([]WithDetails, error) {
	return s.repo.List(ctx)
}

// UpdateTenant moves the tenant when unit_id changes: the old unit is
// released and the new one occupied atomically. If the new unit is
// unavailable the whole update aborts and no unit state changes.
func (s *service) UpdateTenant(ctx context.Context, id uint, in UpdateInput) (*WithDetails, error) {
	current, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	oldUnitID := current.UnitID
	moving := in.UnitID != oldUnitID

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		units := s.units.WithTx(tx)

		if moving {
			target, err := units.GetByID(ctx, in.UnitID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnitUnavailable
			} else if err != nil {
				return err
			}
			if target.Status != unit.StatusVacant {
				return ErrUnitUnavailable
			}

			if err := units.SetStatus(ctx, oldUnitID, unit.StatusVacant); err != nil {
				return err
			}
			if err := units.SetStatus(ctx, in.UnitID, unit.StatusOccupied); err != nil {
				return err
			}
		}

		current.Name = strings.TrimSpace(in.Name)
		current.Phone = strings.TrimSpace(in.Phone)
		current.Email = in.Email
		current.UnitID = in.UnitID
		current.DepositAmount = in.DepositAmount
		current.LeaseStart = in.LeaseStart
		current.LeaseEnd = in.LeaseEnd
		current.PaymentStatus = in.PaymentStatus

		return s.repo.WithTx(tx).Update(ctx, current)
	})
	if err != nil {
		return nil, err
	}

	if moving {
		s.auditSvc.LogAction(ctx, nil, "TENANT_MOVED", map[string]interface{}{
			"tenant_id": id, "from_unit": oldUnitID, "to_unit": in.UnitID,
		}, "", "success")
	}

	return s.repo.GetWithDetails(ctx, id)
}

// DeleteTenant removes the tenant and releases its unit. Outstanding
// payments are left in place.
func (s *service) DeleteTenant(ctx context.Context, id uint) error {
	current, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		return s.units.WithTx(tx).SetStatus(ctx, current.UnitID, unit.StatusVacant)
	})
	if err != nil {
		return err
	}

	s.auditSvc.LogAction(ctx, nil, "TENANT_DELETED", map[string]interface{}{
		"tenant_id": id, "unit_id": current.UnitID,
	}, "", "success")
	return nil
}
