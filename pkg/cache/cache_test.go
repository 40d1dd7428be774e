package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New[int](time.Minute)
	c.Set("k", 42)
	v, ok := c.Get("k")
	if !ok || v != 42 {
		t.Fatalf("expected 42, got %d ok=%v", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss for absent key")
	}
}

func TestExpiry(t *testing.T) {
	c := New[string](10 * time.Millisecond)
	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestDelete(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("k", "v")
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected entry to be gone after delete")
	}
}

func TestCleanExpired(t *testing.T) {
	c := New[int](10 * time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	c.Set("c", 3)
	if n := c.CleanExpired(); n != 2 {
		t.Fatalf("expected 2 expired entries dropped, got %d", n)
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatal("fresh entry should survive cleanup")
	}
}
