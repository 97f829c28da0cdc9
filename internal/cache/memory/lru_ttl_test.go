package memory

import (
	"testing"
	"time"
)

func TestLRUTTL_GetSet(t *testing.T) {
	c := NewLRUTTL[string, int](4, 0, time.Minute)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a=1, got %d ok=%v", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestLRUTTL_ExpiryUsesInjectedClock(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cur := base
	c := NewLRUTTL[string, string](4, 0, 10*time.Second)
	c.SetClock(func() time.Time { return cur })

	c.Set("k", "v", 0)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected hit before expiry")
	}
	cur = base.Add(11 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after TTL elapsed")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry should be removed, len=%d", c.Len())
	}
}

func TestLRUTTL_EvictsLeastRecent(t *testing.T) {
	c := NewLRUTTL[string, int](2, 0, time.Minute)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Get("a") // refresh a
	c.Set("c", 3, 0)
	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a retained")
	}
}

func TestLRUTTL_ByteBudget(t *testing.T) {
	c := NewLRUTTL[string, string](100, 10, time.Minute)
	c.Set("a", "aaaa", 6)
	c.Set("b", "bbbb", 6)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected a evicted by byte budget")
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatalf("expected b retained")
	}
}
