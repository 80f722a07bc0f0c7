package cache

import (
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("entity-search", "Paris")
	k2 := Key("entity-search", "Paris")
	if k1 != k2 {
		t.Error("key must be deterministic")
	}

	if Key("entity-search", "Paris") == Key("property-search", "Paris") {
		t.Error("different kinds must produce different keys")
	}
	if Key("entity-search", "Paris") == Key("entity-search", "France") {
		t.Error("different terms must produce different keys")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Hour)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("expected hit with v, got %q found=%v", val, found)
	}

	_ = c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Hour)
	_ = c.Set("k", []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expected expiry")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set(Key("entity-search", "Paris"), []byte(`{"search":[]}`), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get(Key("entity-search", "Paris"))
	if !found || string(val) != `{"search":[]}` {
		t.Errorf("expected hit, got %q found=%v", val, found)
	}

	// A second client over the same directory sees the entry
	c2 := NewDiskCache(dir, time.Hour)
	if _, found := c2.Get(Key("entity-search", "Paris")); !found {
		t.Error("expected persisted entry")
	}
}

func TestDiskCache_Expired(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	_ = c.Set("k", []byte("v"), -time.Second)

	if _, found := c.Get("k"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestDiskCache_DefaultTTL(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	_ = c.Set("k", []byte("v"), 0)

	if _, found := c.Get("k"); !found {
		t.Error("zero TTL must fall back to the cache default")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed disk only
	seed := NewDiskCache(dir, time.Hour)
	_ = seed.Set("k", []byte("v"), time.Hour)

	c := NewLayeredCache(time.Minute, dir, time.Hour)

	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("expected disk hit, got %q found=%v", val, found)
	}

	// Entry is now in memory too
	if _, found := c.memory.Get("k"); !found {
		t.Error("expected promotion into memory")
	}
}

func TestLayeredCache_SetWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, found := c.memory.Get("k"); !found {
		t.Error("expected memory entry")
	}
	if _, found := c.disk.Get("k"); !found {
		t.Error("expected disk entry")
	}
}
