package expense

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
	require.NoError(t, db.AutoMigrate(&property.Property{}, &Expense{}))
	return db, NewService(NewRepository(db), db)
}

func seedProperty(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	p := property.Property{Name: "Villa Ngor", Address: "Dakar"}
	require.NoError(t, db.Create(&p).Error)
	return p.ID
}

func TestCreateExpenseResolvesPropertyName(t *testing.T) {
	db, svc := setupService(t)
	propID := seedProperty(t, db)

	e, err := svc.CreateExpense(context.Background(), Input{
		PropertyID: propID,
		Amount:     35000,
		Date:       "2025-03-12",
		Category:   CategoryWater,
	})
	require.NoError(t, err)
	assert.Equal(t, "Villa Ngor", e.PropertyName)
	assert.Equal(t, CategoryWater, e.Category)
}

func TestCreateExpenseUnknownProperty(t *testing.T) {
	_, svc := setupService(t)

	_, err := svc.CreateExpense(context.Background(), Input{
		PropertyID: 77,
		Amount:     35000,
		Date:       "2025-03-12",
		Category:   CategoryOther,
	})
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestListExpensesFilters(t *testing.T) {
	db, svc := setupService(t)
	ctx := context.Background()
	propID := seedProperty(t, db)

	for _, e := range []Input{
		{PropertyID: propID, Amount: 10000, Date: "2025-02-01", Category: CategoryWater},
		{PropertyID: propID, Amount: 20000, Date: "2025-03-01", Category: CategoryWater},
		{PropertyID: propID, Amount: 30000, Date: "2025-03-15", Category: CategoryRepairs},
	} {
		_, err := svc.CreateExpense(ctx, e)
		require.NoError(t, err)
	}

	rows, err := svc.ListExpenses(ctx, ListFilter{Category: CategoryWater})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = svc.ListExpenses(ctx, ListFilter{From: "2025-03-01", To: "2025-03-31"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = svc.ListExpenses(ctx, ListFilter{Category: CategoryWater, From: "2025-03-01"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 20000.0, rows[0].Amount)
}

func TestUpdateAndDeleteExpense(t *testing.T) {
	db, svc := setupService(t)
	ctx := context.Background()
	propID := seedProperty(t, db)

	e, err := svc.CreateExpense(ctx, Input{
		PropertyID: propID,
		Amount:     10000,
		Date:       "2025-03-01",
		Category:   CategoryWater,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateExpense(ctx, e.ID, Input{
		PropertyID: propID,
		Amount:     12000,
		Date:       "2025-03-02",
		Category:   CategoryElectricity,
	})
	require.NoError(t, err)
	assert.Equal(t, 12000.0, updated.Amount)
	assert.Equal(t, CategoryElectricity, updated.Category)

	require.NoError(t, svc.DeleteExpense(ctx, e.ID))
	_, err = svc.GetExpense(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
