package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gorgui02/rental-management-backend/config"
	"github.com/gorgui02/rental-management-backend/internal/user"
	"github.com/gorgui02/rental-management-backend/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type Service interface {
	Login(ctx context.Context, username, password string) (string, *user.User, error)
	// Authenticate validates a token and its live session, returning the user.
	Authenticate(ctx context.Context, token string) (*user.User, error)
	Logout(token string) error
}

type service struct {
	users  user.Repository
	tokens utils.TokenStore
	secret string
	ttl    time.Duration
}

func NewService(users user.Repository, tokens utils.TokenStore, cfg *config.Config) Service {
	return &service{
		users:  users,
		tokens: tokens,
		secret: cfg.JWTAccessSecret,
		ttl:    time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
	}
}

func (s *service) Login(ctx context.Context, username, password string) (string, *user.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	} else if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	jti := newSessionID()
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    u.Role,
		"jti":     jti,
		"exp":     time.Now().Add(s.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", nil, err
	}

	// Track the session so logout actually revokes the token.
	if err := s.tokens.Set(sessionKey(jti), fmt.Sprint(u.ID), s.ttl); err != nil {
		return "", nil, err
	}

	return token, u, nil
}

func (s *service) Authenticate(ctx context.Context, tokenStr string) (*user.User, error) {
	claims, err := s.parseClaims(tokenStr)
	if err != nil {
		return nil, err
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, ErrInvalidToken
	}
	if _, err := s.tokens.Get(sessionKey(jti)); err != nil {
		return nil, ErrInvalidToken
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, uint(userIDFloat))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}
	return u, err
}

func (s *service) Logout(tokenStr string) error {
	claims, err := s.parseClaims(tokenStr)
	if err != nil {
		// Nothing to revoke for a token we cannot read.
		return nil
	}
	if jti, _ := claims["jti"].(string); jti != "" {
		return s.tokens.Delete(sessionKey(jti))
	}
	return nil
}

func (s *service) parseClaims(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func sessionKey(jti string) string {
	return fmt.Sprintf("session:%s", jti)
}

func newSessionID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// SeedAdminUser creates the default admin account when no admin exists yet.
// The password comes from configuration and is stored bcrypt-hashed.
func SeedAdminUser(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&user.User{}).Where("role = ?", user.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if cfg.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD must be set to seed the first admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &user.User{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		Email:        cfg.AdminEmail,
		Role:         user.RoleAdmin,
	}
	return db.Create(admin).Error
}
