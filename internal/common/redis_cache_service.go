package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"infinite-experiment/airportd/internal/logging"

	"github.com/redis/go-redis/v9"
)

// RedisCacheService implements CacheInterface using Redis
type RedisCacheService struct {
	client *redis.Client
	ctx    context.Context
}

// Ensure RedisCacheService implements CacheInterface
var _ CacheInterface = (*RedisCacheService)(nil)

// NewRedisCacheService creates a new Redis-based cache service
func NewRedisCacheService(addr, password string) (*RedisCacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx := context.Background()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Test connection
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCacheService{
		client: client,
		ctx:    ctx,
	}, nil
}

// Set stores a value in Redis with the given key and duration
func (r *RedisCacheService) Set(key string, value []byte, duration time.Duration) {
	if err := r.client.Set(r.ctx, key, value, duration).Err(); err != nil {
		logging.Warn("Redis cache: failed to set key", "key", key, "error", err.Error())
	}
}

// Get retrieves a value from Redis by key
func (r *RedisCacheService) Get(key string) ([]byte, bool) {
	data, err := r.client.Get(r.ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		logging.Warn("Redis cache: failed to get key", "key", key, "error", err.Error())
		return nil, false
	}

	return data, true
}

// Close closes the Redis connection
func (r *RedisCacheService) Close() error {
	return r.client.Close()
}

// TTL returns the remaining time to live of a key
func (r *RedisCacheService) TTL(key string) (time.Duration, error) {
	return r.client.TTL(r.ctx, key).Result()
}
