package settings

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Settings{}))
	return NewService(db)
}

func TestGetCreatesDefaults(t *testing.T) {
	svc := setupService(t)

	st, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Gestion Locative", st.CompanyName)
	assert.Equal(t, "FCFA", st.Currency)

	// Second read returns the same row, not another one.
	again, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, st.ID, again.ID)
}

func TestUpdateSettings(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	updated, err := svc.Update(ctx, Input{
		CompanyName: "SCI Les Almadies",
		Address:     "Route des Almadies, Dakar",
		Phone:       "338600000",
		Email:       "contact@almadies.sn",
		Currency:    "FCFA",
		DarkMode:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "SCI Les Almadies", updated.CompanyName)
	assert.True(t, updated.DarkMode)

	st, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SCI Les Almadies", st.CompanyName)
}
