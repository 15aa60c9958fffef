package utils

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gorgui02/rental-management-backend/config"
)

// TokenStore keeps short-lived session tokens. The redis implementation is
// used in production; tests substitute an in-memory one.
type TokenStore interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
}

var ErrTokenNotFound = errors.New("token not found")

type redisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore connects to redis and verifies the connection.
func NewRedisTokenStore(cfg *config.Config) (TokenStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &redisTokenStore{client: client}, nil
}

func (s *redisTokenStore) Set(key string, value string, ttl time.Duration) error {
	return s.client.Set(context.Background(), key, value, ttl).Err()
}

func (s *redisTokenStore) Get(key string) (string, error) {
	val, err := s.client.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return "", ErrTokenNotFound
	}
	return val, err
}

func (s *redisTokenStore) Delete(key string) error {
	return s.client.Del(context.Background(), key).Err()
}
