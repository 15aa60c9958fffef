package unit

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gorgui02/rental-management-backend/internal/property"
)

func setupService(t *testing.T) (*gorm.DB, Service) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&property.Property{}, &Unit{}))
	// List joins the tenants table; the tenant package imports this one, so
	// create the table directly instead of migrating tenant.Tenant.
	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS tenants (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, unit_id INTEGER NOT NULL)`).Error)
	return db, NewService(NewRepository(db), db)
}

func TestCreateUnitStartsVacant(t *testing.T) {
	db, svc := setupService(t)
	p := property.Property{Name: "Résidence Mermoz", Address: "Dakar"}
	require.NoError(t, db.Create(&p).Error)

	u, err := svc.CreateUnit(context.Background(), Input{
		PropertyID: p.ID, Name: "A1", Type: TypeStudio, Size: 35, Rent: 80000,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusVacant, u.Status)
}

func TestCreateUnitUnknownProperty(t *testing.T) {
	_, svc := setupService(t)

	_, err := svc.CreateUnit(context.Background(), Input{
		PropertyID: 55, Name: "A1", Type: TypeStudio, Size: 35, Rent: 80000,
	})
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestListUnitsFilterByProperty(t *testing.T) {
	db, svc := setupService(t)
	ctx := context.Background()

	a := property.Property{Name: "Immeuble A", Address: "Dakar"}
	b := property.Property{Name: "Immeuble B", Address: "Dakar"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	for _, in := range []Input{
		{PropertyID: a.ID, Name: "A1", Type: TypeStudio, Size: 30, Rent: 50000},
		{PropertyID: a.ID, Name: "A2", Type: TypeApartment, Size: 65, Rent: 110000},
		{PropertyID: b.ID, Name: "B1", Type: TypeStudio, Size: 30, Rent: 55000},
	} {
		_, err := svc.CreateUnit(ctx, in)
		require.NoError(t, err)
	}

	all, err := svc.ListUnits(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	rows, err := svc.ListUnits(ctx, &a.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Immeuble A", rows[0].PropertyName)
}

func TestUpdateUnitKeepsStatus(t *testing.T) {
	db, svc := setupService(t)
	ctx := context.Background()

	p := property.Property{Name: "Immeuble C", Address: "Dakar"}
	require.NoError(t, db.Create(&p).Error)
	u, err := svc.CreateUnit(ctx, Input{PropertyID: p.ID, Name: "C1", Type: TypeStudio, Size: 30, Rent: 50000})
	require.NoError(t, err)

	require.NoError(t, db.Model(&Unit{}).Where("id = ?", u.ID).Update("status", StatusOccupied).Error)

	updated, err := svc.UpdateUnit(ctx, u.ID, Input{
		PropertyID: p.ID, Name: "C1 bis", Type: TypeStudio, Size: 32, Rent: 52000,
	})
	require.NoError(t, err)
	assert.Equal(t, "C1 bis", updated.Name)
	assert.Equal(t, StatusOccupied, updated.Status)
}
