package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) (*gorm.DB, Service) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	return db, NewService(NewRepository(db))
}

func TestCreateUserHashesPassword(t *testing.T) {
	_, svc := setupService(t)

	u, err := svc.CreateUser(context.Background(), CreateInput{
		Username: "admin",
		Password: "s3cret-pass",
		Email:    "admin@example.com",
		Role:     RoleAdmin,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")))
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	_, svc := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateInput{
		Username: "gestionnaire",
		Password: "pass1234",
		Email:    "g@example.com",
		Role:     RoleUser,
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, CreateInput{
		Username: "gestionnaire",
		Password: "other",
		Email:    "g2@example.com",
		Role:     RoleUser,
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestDeleteLastAdminRejected(t *testing.T) {
	_, svc := setupService(t)
	ctx := context.Background()

	admin, err := svc.CreateUser(ctx, CreateInput{
		Username: "admin",
		Password: "pass1234",
		Email:    "admin@example.com",
		Role:     RoleAdmin,
	})
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, admin.ID)
	assert.ErrorIs(t, err, ErrLastAdmin)

	// With a second admin the first becomes deletable.
	_, err = svc.CreateUser(ctx, CreateInput{
		Username: "admin2",
		Password: "pass1234",
		Email:    "admin2@example.com",
		Role:     RoleAdmin,
	})
	require.NoError(t, err)
	assert.NoError(t, svc.DeleteUser(ctx, admin.ID))
}

func TestDeleteRegularUserAllowed(t *testing.T) {
	_, svc := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateInput{
		Username: "admin",
		Password: "pass1234",
		Email:    "admin@example.com",
		Role:     RoleAdmin,
	})
	require.NoError(t, err)

	u, err := svc.CreateUser(ctx, CreateInput{
		Username: "viewer",
		Password: "pass1234",
		Email:    "viewer@example.com",
		Role:     RoleUser,
	})
	require.NoError(t, err)
	assert.NoError(t, svc.DeleteUser(ctx, u.ID))
}

func TestUpdateUserKeepsPasswordWhenBlank(t *testing.T) {
	_, svc := setupService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateInput{
		Username: "admin",
		Password: "original-pass",
		Email:    "admin@example.com",
		Role:     RoleAdmin,
	})
	require.NoError(t, err)
	originalHash := u.PasswordHash

	updated, err := svc.UpdateUser(ctx, u.ID, UpdateInput{
		Username: "admin",
		Email:    "new@example.com",
		Role:     RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, originalHash, updated.PasswordHash)
	assert.Equal(t, "new@example.com", updated.Email)

	updated, err = svc.UpdateUser(ctx, u.ID, UpdateInput{
		Username: "admin",
		Password: "rotated-pass",
		Email:    "new@example.com",
		Role:     RoleAdmin,
	})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, updated.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("rotated-pass")))
}

func TestUpdateUserDuplicateUsername(t *testing.T) {
	_, svc := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateInput{
		Username: "alpha",
		Password: "pass1234",
		Email:    "a@example.com",
		Role:     RoleUser,
	})
	require.NoError(t, err)

	b, err := svc.CreateUser(ctx, CreateInput{
		Username: "beta",
		Password: "pass1234",
		Email:    "b@example.com",
		Role:     RoleUser,
	})
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, b.ID, UpdateInput{
		Username: "alpha",
		Email:    "b@example.com",
		Role:     RoleUser,
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	// Keeping your own username is not a conflict.
	_, err = svc.UpdateUser(ctx, b.ID, UpdateInput{
		Username: "beta",
		Email:    "b@example.com",
		Role:     RoleUser,
	})
	assert.NoError(t, err)
}

func TestGetUserNotFound(t *testing.T) {
	_, svc := setupService(t)
	_, err := svc.GetUser(context.Background(), 123)
	assert.ErrorIs(t, err, ErrNotFound)
}
