package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const authCacheTTL = 15 * time.Minute

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: when Redis is
// unreachable the client stays nil and every helper degrades to a no-op.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// hashCredentials creates a hash of email+password for the cache key so raw
// credentials never reach Redis
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(email, password)
	staffID, err := client.Get(ctx, key).Int()
	if err != nil {
		return 0, false
	}
	return staffID, true
}

// CacheAuth caches valid credentials for the auth TTL
func CacheAuth(ctx context.Context, email, password string, staffID int) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Set(ctx, key, staffID, authCacheTTL)
}

// InvalidateAuth drops any cached credential entry for the email+password pair
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	client.Del(ctx, hashCredentials(email, password))
}
