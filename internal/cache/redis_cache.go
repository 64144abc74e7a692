package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

const keyPrefix = "course-progress:"

// CourseListKey holds the serialized course catalog.
const CourseListKey = "courses:list"

type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
}

type redisCache struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisCache(client *redis.Client, logger *slog.Logger) CacheService {
	return &redisCache{
		client: client,
		logger: logger,
	}
}

func (r *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+key, payload, ttl).Err(); err != nil {
		r.logger.Warn("Cache set failed", "key", key, "error", err)
		return err
	}
	return nil
}

func (r *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	payload, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		r.logger.Warn("Cache get failed", "key", key, "error", err)
		return err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("failed to decode cache value: %w", err)
	}
	return nil
}

func (r *redisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, keyPrefix+key).Err()
}

// DeletePattern removes every key matching pattern. SCAN is used instead of
// KEYS so large keyspaces do not block the server.
func (r *redisCache) DeletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, keyPrefix+pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	r.logger.Debug("Deleting cached keys", "pattern", pattern, "count", len(keys))
	return r.client.Del(ctx, keys...).Err()
}
