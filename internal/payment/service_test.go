package payment

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gorgui02/rental-management-backend/internal/auditlog"
	"github.com/gorgui02/rental-management-backend/internal/property"
	"github.com/gorgui02/rental-management-backend/internal/tenant"
	"github.com/gorgui02/rental-management-backend/internal/unit"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&property.Property{},
		&unit.Unit{},
		&tenant.Tenant{},
		&Payment{},
		&auditlog.AuditLog{},
	))
	return db
}

type fixture struct {
	db        *gorm.DB
	svc       Service
	tenantSvc tenant.Service
	unitID    uint
	tenantID  uint
}

// newFixture seeds one property with one unit (rent 100000) and one tenant
// assigned through the occupancy flow, so the unit ends up occupied.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupDB(t)
	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	tenantRepo := tenant.NewRepository(db)
	unitRepo := unit.NewRepository(db)
	tenantSvc := tenant.NewService(tenantRepo, unitRepo, db, auditSvc)
	svc := NewService(NewRepository(db), tenantRepo, db, auditSvc)

	p := property.Property{Name: "Résidence Les Palmiers", Address: "Dakar"}
	require.NoError(t, db.Create(&p).Error)
	u := unit.Unit{PropertyID: p.ID, Name: "A1", Type: unit.TypeApartment, Size: 60, Rent: 100000, Status: unit.StatusVacant}
	require.NoError(t, db.Create(&u).Error)

	created, err := tenantSvc.CreateTenant(context.Background(), tenant.CreateInput{
		Name:          "Moussa Diop",
		Phone:         "770000000",
		UnitID:        u.ID,
		DepositAmount: 200000,
		LeaseStart:    "2025-01-01",
	})
	require.NoError(t, err)

	return &fixture{db: db, svc: svc, tenantSvc: tenantSvc, unitID: u.ID, tenantID: created.ID}
}

func (f *fixture) tenantStatus(t *testing.T) string {
	t.Helper()
	var tn tenant.Tenant
	require.NoError(t, f.db.First(&tn, f.tenantID).Error)
	return tn.PaymentStatus
}

func (f *fixture) unitStatus(t *testing.T) string {
	t.Helper()
	var u unit.Unit
	require.NoError(t, f.db.First(&u, f.unitID).Error)
	return u.Status
}

func TestGenerateRecordRegenerateCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Equal(t, unit.StatusOccupied, f.unitStatus(t))

	// Generation creates one unpaid rent payment and flags the tenant late.
	result, err := f.svc.GeneratePayments(ctx, "Mars 2025", nil, "")
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "created", result.Results[0].Status)

	var payments []Payment
	require.NoError(t, f.db.Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, StatusUnpaid, payments[0].Status)
	assert.Equal(t, 100000.0, payments[0].Amount)
	assert.Equal(t, TypeRent, payments[0].Type)
	assert.Equal(t, tenant.PaymentStatusLate, f.tenantStatus(t))

	// Recording for the same period settles the existing row in place.
	recorded, err := f.svc.RecordPayment(ctx, RecordInput{
		TenantID: f.tenantID,
		Amount:   100000,
		Date:     "2025-03-05",
		Type:     TypeRent,
		Period:   "Mars 2025",
	}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, payments[0].ID, recorded.ID)
	assert.Equal(t, StatusPaid, recorded.Status)
	assert.Equal(t, tenant.PaymentStatusUpToDate, f.tenantStatus(t))

	// Regeneration reports exists and creates nothing.
	result, err = f.svc.GeneratePayments(ctx, "Mars 2025", nil, "")
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "exists", result.Results[0].Status)

	require.NoError(t, f.db.Find(&payments).Error)
	assert.Len(t, payments, 1)
}

func TestRecordPaymentCreatesWhenMissing(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.RecordPayment(context.Background(), RecordInput{
		TenantID: f.tenantID,
		Amount:   200000,
		Date:     "2025-01-02",
		Type:     TypeDeposit,
		Period:   "Janvier 2025",
	}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, p.Status)
	require.NotNil(t, p.PaidAmount)
	assert.Equal(t, 200000.0, *p.PaidAmount)
	assert.Equal(t, tenant.PaymentStatusUpToDate, f.tenantStatus(t))
}

func TestRecordPaymentUnknownTenant(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RecordPayment(context.Background(), RecordInput{
		TenantID: 999,
		Amount:   100000,
		Date:     "2025-03-05",
		Type:     TypeRent,
		Period:   "Mars 2025",
	}, nil, "")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestAtMostOnePaymentPerTenantPeriodType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.svc.RecordPayment(ctx, RecordInput{
			TenantID: f.tenantID,
			Amount:   100000,
			Date:     "2025-03-05",
			Type:     TypeRent,
			Period:   "Mars 2025",
		}, nil, "")
		require.NoError(t, err)
	}
	_, err := f.svc.GeneratePayments(ctx, "Mars 2025", nil, "")
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&Payment{}).
		Where("tenant_id = ? AND period = ? AND type = ?", f.tenantID, "Mars 2025", TypeRent).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdatePaymentStatusSync(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.RecordPayment(ctx, RecordInput{
		TenantID: f.tenantID,
		Amount:   100000,
		Date:     "2025-03-05",
		Type:     TypeRent,
		Period:   "Mars 2025",
	}, nil, "")
	require.NoError(t, err)

	// Back to unpaid flags the tenant late.
	updated, err := f.svc.UpdatePayment(ctx, p.ID, UpdateInput{
		Amount: 100000,
		Type:   TypeRent,
		Status: StatusUnpaid,
		Period: "Mars 2025",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusUnpaid, updated.Status)
	assert.Equal(t, tenant.PaymentStatusLate, f.tenantStatus(t))

	// A partial amount derives partial status and keeps the tenant late.
	paid := 40000.0
	updated, err = f.svc.UpdatePayment(ctx, p.ID, UpdateInput{
		Amount:     100000,
		PaidAmount: &paid,
		Type:       TypeRent,
		Status:     StatusPaid,
		Period:     "Mars 2025",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPartial, updated.Status)
	assert.Equal(t, tenant.PaymentStatusLate, f.tenantStatus(t))

	// Settling the full amount flips both back.
	full := 100000.0
	updated, err = f.svc.UpdatePayment(ctx, p.ID, UpdateInput{
		Amount:     100000,
		PaidAmount: &full,
		Type:       TypeRent,
		Status:     StatusUnpaid,
		Period:     "Mars 2025",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, updated.Status)
	assert.Equal(t, tenant.PaymentStatusUpToDate, f.tenantStatus(t))
}

func TestUpdatePaymentRejectsDuplicateKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RecordPayment(ctx, RecordInput{
		TenantID: f.tenantID,
		Amount:   100000,
		Date:     "2025-03-05",
		Type:     TypeRent,
		Period:   "Mars 2025",
	}, nil, "")
	require.NoError(t, err)

	second, err := f.svc.RecordPayment(ctx, RecordInput{
		TenantID: f.tenantID,
		Amount:   100000,
		Date:     "2025-04-05",
		Type:     TypeRent,
		Period:   "Avril 2025",
	}, nil, "")
	require.NoError(t, err)

	// Moving the April payment onto the March key would create a second row
	// for (tenant, Mars 2025, rent).
	_, err = f.svc.UpdatePayment(ctx, second.ID, UpdateInput{
		Amount: 100000,
		Type:   TypeRent,
		Status: StatusPaid,
		Period: "Mars 2025",
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	var count int64
	require.NoError(t, f.db.Model(&Payment{}).
		Where("tenant_id = ? AND period = ? AND type = ?", f.tenantID, "Mars 2025", TypeRent).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var untouched Payment
	require.NoError(t, f.db.First(&untouched, second.ID).Error)
	assert.Equal(t, "Avril 2025", untouched.Period)
}

func TestUpdatePaymentNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdatePayment(context.Background(), 999, UpdateInput{
		Amount: 100000,
		Type:   TypeRent,
		Status: StatusPaid,
		Period: "Mars 2025",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePaymentKeepsTenantStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GeneratePayments(ctx, "Mars 2025", nil, "")
	require.NoError(t, err)
	require.Equal(t, tenant.PaymentStatusLate, f.tenantStatus(t))

	var p Payment
	require.NoError(t, f.db.First(&p).Error)
	require.NoError(t, f.svc.DeletePayment(ctx, p.ID, nil, ""))

	// No recompute on delete: the tenant stays late until the next pass.
	assert.Equal(t, tenant.PaymentStatusLate, f.tenantStatus(t))

	var count int64
	require.NoError(t, f.db.Model(&Payment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteTenantKeepsPaymentsAndReleasesUnit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RecordPayment(ctx, RecordInput{
		TenantID: f.tenantID,
		Amount:   100000,
		Date:     "2025-03-05",
		Type:     TypeRent,
		Period:   "Mars 2025",
	}, nil, "")
	require.NoError(t, err)

	require.NoError(t, f.tenantSvc.DeleteTenant(ctx, f.tenantID))
	assert.Equal(t, unit.StatusVacant, f.unitStatus(t))

	var count int64
	require.NoError(t, f.db.Model(&Payment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGenerateSkipsVacantUnits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.tenantSvc.DeleteTenant(ctx, f.tenantID))

	result, err := f.svc.GeneratePayments(ctx, "Avril 2025", nil, "")
	require.NoError(t, err)
	assert.Empty(t, result.Results)
}
