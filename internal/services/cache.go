package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gratia-app/gratia-backend/internal/database"
)

// CacheKeyPrefix is the Redis key prefix for cached data.
const CacheKeyPrefix = "cache:"

// CacheService is a small JSON cache on top of Redis. It fails open: a
// missing Redis client or a Redis error reads as a cache miss.
type CacheService struct{}

// Get retrieves a value from the cache into dest. The bool reports a hit.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if database.RedisClient == nil {
		return false, nil
	}
	val, err := database.RedisClient.Get(ctx, CacheKeyPrefix+key).Result()
	if err != nil {
		return false, nil // cache miss, not an error
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a value in the cache with the given TTL.
func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if database.RedisClient == nil {
		return nil
	}
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return database.RedisClient.Set(ctx, CacheKeyPrefix+key, jsonData, ttl).Err()
}

// Delete removes a value from the cache.
func (c *CacheService) Delete(ctx context.Context, key string) error {
	if database.RedisClient == nil {
		return nil
	}
	return database.RedisClient.Del(ctx, CacheKeyPrefix+key).Err()
}

// Cache is the global cache service instance.
var Cache = &CacheService{}
