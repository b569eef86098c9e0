package cache_test

import (
	"testing"
	"time"

	"motodealer/internal/cache"
)

func TestSetGetDelete(t *testing.T) {
	c := cache.New(time.Minute)
	defer c.Stop()

	c.Set("k", 42)
	v, ok := c.Get("k")
	if !ok || v.(int) != 42 {
		t.Fatalf("want 42, got %v (%v)", v, ok)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("deleted key still visible")
	}
}

func TestExpiredEntryIsInvisible(t *testing.T) {
	c := cache.New(time.Minute)
	defer c.Stop()

	// Per-entry TTL override; already expired on insert.
	c.Set("k", 1, -time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry served")
	}
}

func TestStopReleasesCleanup(t *testing.T) {
	c := cache.New(time.Minute)
	c.Stop()

	// The cache stays usable after Stop; only the janitor is gone.
	c.Set("k", "v")
	if v, ok := c.Get("k"); !ok || v.(string) != "v" {
		t.Fatalf("cache unusable after Stop: %v (%v)", v, ok)
	}
}
