// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"medibook/config"

	"github.com/go-redis/redis/v8"
)

// AuthCachePrefix prefixes token-hash keys in the auth cache.
const AuthCachePrefix = "auth:"

var (
	// AuthCacheClient holds token hashes for revocation checks.
	AuthCacheClient *redis.Client
	// ThrottleCacheClient backs the shared login-attempt store.
	ThrottleCacheClient *redis.Client
	// ResetCacheClient holds short-lived password reset tokens.
	ResetCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (db %d): %v", db, err)
	}
	return client
}

// InitRedis initializes all Redis clients.
func InitRedis() {
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	ThrottleCacheClient = newRedisClient(config.AppConfig.RedisThrottleDB)
	ResetCacheClient = newRedisClient(config.AppConfig.RedisResetDB)
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	}
	return AuthCacheClient
}

// GetThrottleCacheClient returns the Redis client backing the login throttle.
func GetThrottleCacheClient() *redis.Client {
	if ThrottleCacheClient == nil {
		ThrottleCacheClient = newRedisClient(config.AppConfig.RedisThrottleDB)
	}
	return ThrottleCacheClient
}

// GetResetCacheClient returns the Redis client for password reset tokens.
func GetResetCacheClient() *redis.Client {
	if ResetCacheClient == nil {
		ResetCacheClient = newRedisClient(config.AppConfig.RedisResetDB)
	}
	return ResetCacheClient
}
