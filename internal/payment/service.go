package payment

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gorgui02/rental-management-backend/internal/auditlog"
	"github.com/gorgui02/rental-management-backend/internal/tenant"
	"github.com/gorgui02/rental-management-backend/utils"
)

var (
	ErrNotFound       = errors.New("payment not found")
	ErrTenantNotFound = errors.New("tenant not found")
	ErrNotPaid        = errors.New("payment is not settled")
	ErrDuplicate      = errors.New("payment already exists for this tenant, period and type")
)

type Service interface {
	RecordPayment(ctx context.Context, in RecordInput, actorID *uint, ip string) (*Payment, error)
	GeneratePayments(ctx context.Context, period string, actorID *uint, ip string) (*GenerateResult, error)
	GetPayment(ctx context.Context, id uint) (*WithDetails, error)
	ListPayments(ctx context.Context, f ListFilter) ([]WithDetails, error)
	UpdatePayment(ctx context.Context, id uint, in UpdateInput) (*Payment, error)
	DeletePayment(ctx context.Context, id uint, actorID *uint, ip string) error
}

type service struct {
	repo     Repository
	tenants  tenant.Repository
	db       *gorm.DB
	auditSvc auditlog.Service
}

func NewService(repo Repository, tenants tenant.Repository, db *gorm.DB, auditSvc auditlog.Service) Service {
	return &service{repo: repo, tenants: tenants, db: db, auditSvc: auditSvc}
}

// RecordPayment settles one payment. If a payment already exists for the
// tenant, period and type it is overwritten in place, otherwise a new row is
// created. Either way the result is fully paid and the tenant is marked
// up-to-date, all inside one transaction.
func (s *service) RecordPayment(ctx context.Context, in RecordInput, actorID *uint, ip string) (*Payment, error) {
	var result *Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := s.tenants.WithTx(tx).GetByID(ctx, in.TenantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTenantNotFound
			}
			return err
		}

		existing, err := repo.FindByTenantPeriodType(ctx, in.TenantID, in.Period, in.Type)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		date := in.Date
		if existing != nil {
			existing.Amount = in.Amount
			existing.PaidAmount = &in.Amount
			existing.Date = &date
			existing.Status = StatusPaid
			if err := repo.Update(ctx, existing); err != nil {
				return err
			}
			result = existing
		} else {
			p := &Payment{
				TenantID:   in.TenantID,
				Amount:     in.Amount,
				PaidAmount: &in.Amount,
				Date:       &date,
				Type:       in.Type,
				Status:     StatusPaid,
				Period:     in.Period,
			}
			if err := repo.Create(ctx, p); err != nil {
				return err
			}
			result = p
		}

		return s.tenants.WithTx(tx).UpdatePaymentStatus(ctx, in.TenantID, tenant.PaymentStatusUpToDate)
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(ctx, actorID, "PAYMENT_RECORDED", map[string]interface{}{
		"payment_id": result.ID,
		"tenant_id":  result.TenantID,
		"period":     result.Period,
		"amount":     result.Amount,
	}, ip, "success")

	return result, nil
}

// GeneratePayments creates an unpaid rent payment for every tenant living on
// an occupied unit, for the given period. Tenants that already have a rent
// payment for the period are reported as "exists" and left untouched, which
// makes the operation safe to repeat. Each tenant is processed in its own
// transaction so one failure does not roll back the rest.
func (s *service) GeneratePayments(ctx context.Context, period string, actorID *uint, ip string) (*GenerateResult, error) {
	occupants, err := s.repo.ListOccupiedTenants(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]GenerateOutcome, 0, len(occupants))
	created := 0
	for _, occ := range occupants {
		outcome := GenerateOutcome{TenantID: occ.TenantID, TenantName: occ.TenantName}

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)

			existing, err := repo.FindByTenantPeriodType(ctx, occ.TenantID, period, TypeRent)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if existing != nil {
				outcome.Status = "exists"
				outcome.PaymentID = existing.ID
				return nil
			}

			p := &Payment{
				TenantID: occ.TenantID,
				Amount:   occ.Rent,
				Type:     TypeRent,
				Status:   StatusUnpaid,
				Period:   period,
			}
			if err := repo.Create(ctx, p); err != nil {
				return err
			}
			if err := s.tenants.WithTx(tx).UpdatePaymentStatus(ctx, occ.TenantID, tenant.PaymentStatusLate); err != nil {
				return err
			}
			outcome.Status = "created"
			outcome.PaymentID = p.ID
			created++
			return nil
		})
		if err != nil {
			utils.Logger().WithError(err).WithField("tenant_id", occ.TenantID).
				Warn("payment generation failed for tenant")
			outcome.Status = "error"
			outcome.Error = err.Error()
		}
		results = append(results, outcome)
	}

	s.auditSvc.LogAction(ctx, actorID, "PAYMENTS_GENERATED", map[string]interface{}{
		"period":  period,
		"created": created,
		"total":   len(results),
	}, ip, "success")

	return &GenerateResult{
		Message: fmt.Sprintf("%d payment(s) generated for %s", created, period),
		Results: results,
	}, nil
}

func (s *service) GetPayment(ctx context.Context, id uint) (*WithDetails, error) {
	row, err := s.repo.GetWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}

func (s *service) ListPayments(ctx context.Context, f ListFilter) ([]WithDetails, error) {
	return s.repo.List(ctx, f)
}

// UpdatePayment rewrites a payment and keeps the tenant's own status in
// step: a paid payment marks the tenant up-to-date, an unpaid or partial one
// marks them late. When a paid amount is given the status is derived from it
// rather than trusted from the input. Moving the payment onto a (period,
// type) pair another payment of the same tenant already holds is rejected.
func (s *service) UpdatePayment(ctx context.Context, id uint, in UpdateInput) (*Payment, error) {
	var result *Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		p, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		other, err := repo.FindByTenantPeriodType(ctx, p.TenantID, in.Period, in.Type)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if other != nil && other.ID != p.ID {
			return ErrDuplicate
		}

		p.Amount = in.Amount
		p.PaidAmount = in.PaidAmount
		p.Date = in.Date
		p.Type = in.Type
		p.Period = in.Period
		p.Status = in.Status

		if in.PaidAmount != nil {
			if *in.PaidAmount >= in.Amount {
				p.Status = StatusPaid
			} else if *in.PaidAmount > 0 {
				p.Status = StatusPartial
			} else {
				p.Status = StatusUnpaid
			}
		}

		if err := repo.Update(ctx, p); err != nil {
			return err
		}

		tenantStatus := tenant.PaymentStatusLate
		if p.Status == StatusPaid {
			tenantStatus = tenant.PaymentStatusUpToDate
		}
		if err := s.tenants.WithTx(tx).UpdatePaymentStatus(ctx, p.TenantID, tenantStatus); err != nil {
			return err
		}

		result = p
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return result, nil
}

// DeletePayment removes the record. The tenant's payment status is left as
// is; it will converge on the next recording or generation pass.
func (s *service) DeletePayment(ctx context.Context, id uint, actorID *uint, ip string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAction(ctx, actorID, "PAYMENT_DELETED", map[string]interface{}{
		"payment_id": p.ID,
		"tenant_id":  p.TenantID,
		"period":     p.Period,
	}, ip, "success")
	return nil
}
