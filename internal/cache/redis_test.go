package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis tests need a running Redis/Valkey server and are skipped unless
// REDIS_ADDRESS (e.g., "localhost:6379") is set.

func newTestRedisCache(t *testing.T, ttl time.Duration) Cache {
	t.Helper()
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("Skipping Redis tests: set REDIS_ADDRESS to enable")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush Redis test DB: %v", err)
	}
	_ = client.Close()

	c, err := New("redis", ProviderConfig{TTL: ttl, RedisAddress: addr, RedisDB: 15, KeyPrefix: "test:"})
	if err != nil {
		t.Fatalf("New redis cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisCache_GetSet(t *testing.T) {
	c := newTestRedisCache(t, 10*time.Second)

	if _, ok := c.Get("catalog"); ok {
		t.Fatal("Expected miss")
	}
	c.Set("catalog", []byte("body"))
	val, ok := c.Get("catalog")
	if !ok || string(val) != "body" {
		t.Fatalf("Expected hit with body, got %q %v", val, ok)
	}
}

func TestRedisCache_ContainsAndLen(t *testing.T) {
	c := newTestRedisCache(t, 10*time.Second)

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	if !c.Contains("a") || c.Contains("zzz") {
		t.Fatal("Unexpected Contains results")
	}
	if c.Len() != 2 {
		t.Fatalf("Expected Len 2, got %d", c.Len())
	}
}

func TestRedisCache_Expiry(t *testing.T) {
	c := newTestRedisCache(t, 100*time.Millisecond)

	c.Set("short", []byte("lived"))
	time.Sleep(300 * time.Millisecond)
	if c.Contains("short") {
		t.Fatal("Expected key to expire")
	}
}

func TestRedisCache_PingFailure(t *testing.T) {
	_, err := New("redis", ProviderConfig{RedisAddress: "127.0.0.1:1"})
	if err == nil {
		t.Fatal("Expected error when Redis is unreachable")
	}
}
