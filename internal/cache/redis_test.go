package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	config := &CacheConfig{
		Addr:         mr.Addr(),
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	cache := NewRedisCache(config)
	return cache, mr
}

func TestDefaultCacheConfig(t *testing.T) {
	config := DefaultCacheConfig()

	if config.Addr != "localhost:6379" {
		t.Errorf("Expected Addr to be localhost:6379, got %s", config.Addr)
	}

	if config.PoolSize != 10 {
		t.Errorf("Expected PoolSize to be 10, got %d", config.PoolSize)
	}

	if config.DialTimeout != 5*time.Second {
		t.Errorf("Expected DialTimeout to be 5s, got %v", config.DialTimeout)
	}
}

func TestNewRedisCacheWithNilConfig(t *testing.T) {
	cache := NewRedisCache(nil)

	if cache == nil {
		t.Fatal("Expected cache to be created with default config")
	}

	if cache.client == nil {
		t.Error("Expected Redis client to be initialized")
	}
}

func TestRedisCacheSetAndGet(t *testing.T) {
	cache, mr := setupTestRedis(t)
	defer mr.Close()

	type listing struct {
		Title  string  `json:"title"`
		Budget float64 `json:"budget"`
	}

	original := listing{Title: "Paint the fence", Budget: 120}
	key := "tasks:open"

	if err := cache.Set(key, original, time.Minute); err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	var got listing
	if err := cache.Get(key, &got); err != nil {
		t.Fatalf("Failed to get from cache: %v", err)
	}

	if got.Title != original.Title || got.Budget != original.Budget {
		t.Errorf("Cached value mismatch: got %+v, want %+v", got, original)
	}
}

func TestRedisCacheGetMiss(t *testing.T) {
	cache, mr := setupTestRedis(t)
	defer mr.Close()

	var dest string
	err := cache.Get("missing:key", &dest)
	if err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisCacheDelete(t *testing.T) {
	cache, mr := setupTestRedis(t)
	defer mr.Close()

	if err := cache.Set("tasks:open", "payload", time.Minute); err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	if err := cache.Delete("tasks:open"); err != nil {
		t.Fatalf("Failed to delete key: %v", err)
	}

	exists, err := cache.Exists("tasks:open")
	if err != nil {
		t.Fatalf("Failed to check existence: %v", err)
	}
	if exists {
		t.Error("Expected key to be gone after delete")
	}
}

func TestRedisCacheDeletePattern(t *testing.T) {
	cache, mr := setupTestRedis(t)
	defer mr.Close()

	keys := []string{"tasks:open", "tasks:featured", "mail:dead"}
	for _, key := range keys {
		if err := cache.Set(key, "payload", time.Minute); err != nil {
			t.Fatalf("Failed to set %s: %v", key, err)
		}
	}

	if err := cache.DeletePattern("tasks:*"); err != nil {
		t.Fatalf("Failed to delete pattern: %v", err)
	}

	for _, key := range []string{"tasks:open", "tasks:featured"} {
		exists, _ := cache.Exists(key)
		if exists {
			t.Errorf("Expected %s to be deleted", key)
		}
	}

	exists, _ := cache.Exists("mail:dead")
	if !exists {
		t.Error("Expected keys outside the pattern to survive")
	}
}

func TestRedisCacheHealth(t *testing.T) {
	cache, mr := setupTestRedis(t)
	defer mr.Close()

	if err := cache.Health(); err != nil {
		t.Errorf("Expected healthy cache, got %v", err)
	}
}
