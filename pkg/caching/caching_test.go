package caching

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	url := "https://stay.example.com"
	if err := cache.Set(url, []byte("<html>cached</html>")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	body, hit := cache.Get(url)
	if !hit {
		t.Fatal("Get() miss, want hit")
	}
	if string(body) != "<html>cached</html>" {
		t.Errorf("Get() = %q", body)
	}
}

func TestCache_MissForUnknownURL(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	if _, hit := cache.Get("https://never-stored.example.com"); hit {
		t.Error("Get() hit for a URL never stored")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	url := "https://stay.example.com"
	if err := cache.Set(url, []byte("stale soon")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	if _, hit := cache.Get(url); hit {
		t.Error("Get() hit after TTL expiry, want miss")
	}
}

func TestCache_ZeroTTLNeverHits(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	cache.Set("https://x.example.com", []byte("x"))
	if _, hit := cache.Get("https://x.example.com"); hit {
		t.Error("zero TTL cache must never serve entries")
	}
}

func TestCache_NilSafe(t *testing.T) {
	var cache *Cache
	if _, hit := cache.Get("https://x.example.com"); hit {
		t.Error("nil cache Get() must miss")
	}
	if err := cache.Set("https://x.example.com", []byte("x")); err != nil {
		t.Errorf("nil cache Set() error = %v, want nil", err)
	}
}

func TestCache_DistinctURLsDistinctEntries(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	cache.Set("https://a.example.com", []byte("a"))
	cache.Set("https://b.example.com", []byte("b"))

	body, _ := cache.Get("https://a.example.com")
	if string(body) != "a" {
		t.Errorf("entry for a = %q, want %q", body, "a")
	}
	body, _ = cache.Get("https://b.example.com")
	if string(body) != "b" {
		t.Errorf("entry for b = %q, want %q", body, "b")
	}
}
