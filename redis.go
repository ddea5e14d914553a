package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// initRedis initializes the Redis connection
func initRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis:6379"
	}

	opt, err := redis.ParseURL(fmt.Sprintf("redis://%s", redisURL))
	if err != nil {
		// Fallback to simple connection
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	redisClient = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	return nil
}

// cacheGet unmarshals a cached JSON payload into dest. Returns false when the
// cache is unavailable, the key is missing, or the payload is stale-invalid.
func cacheGet(ctx context.Context, key string, dest any) bool {
	if redisClient == nil {
		return false
	}
	cached, err := redisClient.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), dest) == nil
}

func cacheSet(ctx context.Context, key string, v any, ttl time.Duration) {
	if redisClient == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		redisClient.SetEx(ctx, key, data, ttl)
	}
}

func cacheDel(ctx context.Context, keys ...string) {
	if redisClient == nil {
		return
	}
	redisClient.Del(ctx, keys...)
}

func transactionsCacheKey(userID string) string { return "transactions:" + userID }
func accountsCacheKey(userID string) string     { return "accounts:" + userID }
func calendarCacheKey(userID string) string     { return "calendar:" + userID }
