package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() failed: %v", err)
	}

	if err := c.Set(ctx, "pypi:requests", []byte(`{"version":"2.31.0"}`), time.Hour); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	data, ok, err := c.Get(ctx, "pypi:requests")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !ok {
		t.Fatal("Get() returned miss for existing key")
	}
	if string(data) != `{"version":"2.31.0"}` {
		t.Errorf("Get() = %q", data)
	}
}

func TestFileCache_Miss(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	_, ok, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("Get() returned hit for missing key")
	}
}

func TestFileCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "key", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	_, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("Get() returned hit for expired key")
	}
}

func TestFileCache_NoTTL(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	// ttl 0 means no expiration
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	_, ok, _ := c.Get(ctx, "key")
	if !ok {
		t.Error("entry with ttl 0 should not expire")
	}
}

func TestFileCache_Delete(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	_ = c.Set(ctx, "key", []byte("value"), time.Hour)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("Get() returned hit after Delete()")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("NullCache should never hit")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestHash_Stability(t *testing.T) {
	h1 := Hash([]byte("pypi:requests"))
	h2 := Hash([]byte("pypi:requests"))
	if h1 != h2 {
		t.Error("hash should be deterministic")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
	if h1 == Hash([]byte("pypi:flask")) {
		t.Error("different keys should produce different hashes")
	}
}
