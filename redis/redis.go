package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	if _, err := Client.Ping(Ctx).Result(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// DenylistToken marks a refresh token's jti as revoked until it would have
// expired anyway.
func DenylistToken(jti string, ttl time.Duration) error {
	if Client == nil || jti == "" {
		return nil
	}
	return Client.Set(Ctx, "denylist:"+jti, 1, ttl).Err()
}

// IsTokenDenied reports whether a jti has been revoked. With no Redis
// configured, logout falls back to stateless behavior.
func IsTokenDenied(jti string) bool {
	if Client == nil || jti == "" {
		return false
	}
	n, err := Client.Exists(Ctx, "denylist:"+jti).Result()
	return err == nil && n > 0
}
