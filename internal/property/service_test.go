package property

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gorgui02/rental-management-backend/internal/tenant"
	"github.com/gorgui02/rental-management-backend/internal/unit"
)

func setupService(t *testing.T) (*gorm.DB, Service) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Property{}, &unit.Unit{}, &tenant.Tenant{}))
	return db, NewService(NewRepository(db))
}

func TestCreateAndGetProperty(t *testing.T) {
	_, svc := setupService(t)
	ctx := context.Background()

	p, err := svc.CreateProperty(ctx, Input{Name: "Résidence Niarela", Address: "Bamako"})
	require.NoError(t, err)

	got, err := svc.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Résidence Niarela", got.Name)
}

func TestListPropertiesWithStats(t *testing.T) {
	db, svc := setupService(t)
	ctx := context.Background()

	p, err := svc.CreateProperty(ctx, Input{Name: "Immeuble Plateau", Address: "Dakar"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&unit.Unit{PropertyID: p.ID, Name: "A1", Type: unit.TypeStudio, Size: 30, Rent: 50000, Status: unit.StatusOccupied}).Error)
	require.NoError(t, db.Create(&unit.Unit{PropertyID: p.ID, Name: "A2", Type: unit.TypeStudio, Size: 30, Rent: 50000, Status: unit.StatusVacant}).Error)

	rows, err := svc.ListProperties(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].UnitCount)
	assert.Equal(t, 1, rows[0].OccupiedCount)
}

func TestDeletePropertyCascades(t *testing.T) {
	db, svc := setupService(t)
	ctx := context.Background()

	p, err := svc.CreateProperty(ctx, Input{Name: "Immeuble Médina", Address: "Dakar"})
	require.NoError(t, err)
	u := unit.Unit{PropertyID: p.ID, Name: "B1", Type: unit.TypeApartment, Size: 70, Rent: 120000, Status: unit.StatusOccupied}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, db.Create(&tenant.Tenant{
		Name: "Abdou Sow", Phone: "770000009", UnitID: u.ID,
		DepositAmount: 100000, LeaseStart: "2025-01-01", PaymentStatus: tenant.PaymentStatusUpToDate,
	}).Error)

	require.NoError(t, svc.DeleteProperty(ctx, p.ID))

	var unitCount, tenantCount int64
	require.NoError(t, db.Model(&unit.Unit{}).Count(&unitCount).Error)
	require.NoError(t, db.Model(&tenant.Tenant{}).Count(&tenantCount).Error)
	assert.Zero(t, unitCount)
	assert.Zero(t, tenantCount)

	_, err = svc.GetProperty(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePropertyNotFound(t *testing.T) {
	_, svc := setupService(t)
	_, err := svc.UpdateProperty(context.Background(), 404, Input{Name: "X", Address: "Y"})
	assert.ErrorIs(t, err, ErrNotFound)
}
