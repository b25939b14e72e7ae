package cache

import (
	"testing"
	"time"
)

func newMemoryTestCache(t *testing.T, cfg ProviderConfig) Cache {
	t.Helper()
	c, err := New("memory", cfg)
	if err != nil {
		t.Fatalf("New memory cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCache_GetSet(t *testing.T) {
	c := newMemoryTestCache(t, ProviderConfig{Size: 10, TTL: time.Hour})

	val, ok := c.Get("catalog")
	if ok {
		t.Fatal("Expected miss for catalog")
	}
	if val != nil {
		t.Fatalf("Expected nil value on miss, got %v", val)
	}

	c.Set("catalog", []byte(`[{"id":"1"}]`))
	val, ok = c.Get("catalog")
	if !ok {
		t.Fatal("Expected hit for catalog")
	}
	if string(val) != `[{"id":"1"}]` {
		t.Fatalf("Unexpected value %s", string(val))
	}
}

func TestMemoryCache_ContainsAndLen(t *testing.T) {
	c := newMemoryTestCache(t, ProviderConfig{Size: 10, TTL: time.Hour})

	if c.Contains("absent") {
		t.Fatal("Expected absent key to not be contained")
	}
	if c.Len() != 0 {
		t.Fatalf("Expected Len 0, got %d", c.Len())
	}

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("b", []byte("3"))
	if !c.Contains("a") {
		t.Fatal("Expected a to be contained")
	}
	if c.Len() != 2 {
		t.Fatalf("Expected Len 2 after overwrite, got %d", c.Len())
	}
}

func TestMemoryCache_Eviction(t *testing.T) {
	var evicted []string
	c := newMemoryTestCache(t, ProviderConfig{
		Size:    2,
		TTL:     time.Hour,
		OnEvict: func(key string, _ []byte) { evicted = append(evicted, key) },
	})

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("c", []byte("3"))

	if len(evicted) != 1 || evicted[0] != "a" {
		t.Fatalf("Expected 'a' to be evicted, got %v", evicted)
	}
	if c.Contains("a") {
		t.Fatal("Evicted key 'a' should not be present")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := newMemoryTestCache(t, ProviderConfig{Size: 10, TTL: 20 * time.Millisecond})

	c.Set("short", []byte("lived"))
	time.Sleep(60 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Fatal("Expected entry to expire")
	}
}

func TestMemoryCache_DefaultSize(t *testing.T) {
	c := newMemoryTestCache(t, ProviderConfig{TTL: time.Hour})

	for i := 0; i < defaultSize+4; i++ {
		c.Set(string(rune('a'+i)), []byte("x"))
	}
	if c.Len() != defaultSize {
		t.Fatalf("Expected Len %d with default size, got %d", defaultSize, c.Len())
	}
}
