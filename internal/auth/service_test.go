package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gorgui02/rental-management-backend/config"
	"github.com/gorgui02/rental-management-backend/internal/user"
	"github.com/gorgui02/rental-management-backend/utils"
)

// memoryTokenStore is an in-process TokenStore for tests.
type memoryTokenStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{values: map[string]string{}}
}

func (m *memoryTokenStore) Set(key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryTokenStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", utils.ErrTokenNotFound
	}
	return v, nil
}

func (m *memoryTokenStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func setupAuth(t *testing.T) (*gorm.DB, Service) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}))

	cfg := &config.Config{
		JWTAccessSecret:   "test-secret",
		JWTAccessTTLHours: 1,
		AdminUsername:     "admin",
		AdminPassword:     "admin-pass",
		AdminEmail:        "admin@example.com",
	}
	require.NoError(t, SeedAdminUser(db, cfg))

	return db, NewService(user.NewRepository(db), newMemoryTokenStore(), cfg)
}

func TestLoginAndAuthenticate(t *testing.T) {
	_, svc := setupAuth(t)
	ctx := context.Background()

	token, u, err := svc.Login(ctx, "admin", "admin-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, user.RoleAdmin, u.Role)

	authed, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, authed.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	_, svc := setupAuth(t)

	_, _, err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	_, svc := setupAuth(t)

	_, _, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	_, svc := setupAuth(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "admin", "admin-pass")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(token))

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateGarbageToken(t *testing.T) {
	_, svc := setupAuth(t)

	_, err := svc.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	db, _ := setupAuth(t)

	cfg := &config.Config{
		AdminUsername: "admin",
		AdminPassword: "admin-pass",
		AdminEmail:    "admin@example.com",
	}
	require.NoError(t, SeedAdminUser(db, cfg))

	var count int64
	require.NoError(t, db.Model(&user.User{}).Where("role = ?", user.RoleAdmin).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
