package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New()
	defer c.Close()

	key := Key("books.list")
	c.Set(key, "value", time.Minute)

	got, ok := c.Get(key)
	if !ok || got != "value" {
		t.Fatalf("expected cached value, got %v (ok=%v)", got, ok)
	}

	if _, ok := c.Get(Key("books.list", "other")); ok {
		t.Fatal("expected miss for different arguments")
	}
}

func TestExpiry(t *testing.T) {
	c := New()
	defer c.Close()

	key := Key("summary", "book-1")
	c.Set(key, "value", time.Minute)

	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if _, ok := c.Get(key); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestEvictExpired(t *testing.T) {
	c := New()
	defer c.Close()

	c.Set(Key("op", "a"), 1, time.Minute)
	c.Set(Key("op", "b"), 2, time.Hour)

	c.now = func() time.Time { return time.Now().Add(30 * time.Minute) }
	c.evictExpired()

	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after eviction, got %d", c.Len())
	}
}

func TestDelete(t *testing.T) {
	c := New()
	defer c.Close()

	c.Set(Key("summary", "book-1"), 1, time.Minute)
	c.Set(Key("summary", "book-2"), 2, time.Minute)

	c.Delete(Key("summary", "book-1"))

	if _, ok := c.Get(Key("summary", "book-1")); ok {
		t.Fatal("expected deleted entry to miss")
	}
	if _, ok := c.Get(Key("summary", "book-2")); !ok {
		t.Fatal("expected other keys untouched")
	}

	// Deleting an absent key is a no-op.
	c.Delete(Key("summary", "book-3"))
}

func TestKeyStableAndDistinct(t *testing.T) {
	if Key("op", "a", "b") != Key("op", "a", "b") {
		t.Fatal("expected identical inputs to produce identical keys")
	}
	if Key("op", "a", "b") == Key("op", "ab") {
		t.Fatal("expected argument boundaries to affect the key")
	}
}
