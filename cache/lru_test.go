package cache

import (
	"testing"
	"time"
)

// The canonical recency property for capacity 2:
// Set a, Set b, Get a, Set c => b evicted, a and c present.
// Contrast with TestCache_EvictionByCreationOrder.
func TestLRU_RecencyEviction(t *testing.T) {
	t.Parallel()

	l := NewLRU[string, int](2)

	l.Set("a", 1) // LRU = a
	l.Set("b", 2) // MRU = b

	if _, ok := l.Get("a"); !ok { // promote a -> MRU
		t.Fatal("expect hit for a")
	}
	l.Set("c", 3) // overflow -> evict LRU (b)

	if _, ok := l.Get("b"); ok {
		t.Fatal("b must be evicted")
	}
	if _, ok := l.Get("a"); !ok {
		t.Fatal("a must survive (promoted)")
	}
	if v, ok := l.Get("c"); !ok || v != 3 {
		t.Fatal("c must be present")
	}
}

// Replacing an existing key counts as an access and promotes it.
func TestLRU_ReplacePromotes(t *testing.T) {
	t.Parallel()

	l := NewLRU[string, int](2)
	l.Set("a", 1)
	l.Set("b", 2)
	l.Set("a", 11) // replace promotes a; LRU is now b
	l.Set("c", 3)  // evicts b

	if _, ok := l.Get("b"); ok {
		t.Fatal("b must be evicted after a was promoted by replace")
	}
	if v, ok := l.Get("a"); !ok || v != 11 {
		t.Fatalf("a want 11, got %v ok=%v", v, ok)
	}
}

// Get sweeps ALL expired entries before looking up the requested key,
// not just the requested one.
func TestLRU_GetSweepsExpired(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	l := NewLRUWithClock[string, int](8, clk)

	l.SetWithTTL("e1", 1, 10*time.Millisecond)
	l.SetWithTTL("e2", 2, 10*time.Millisecond)
	l.Set("live", 3)
	clk.add(20 * time.Millisecond)

	if _, ok := l.Get("e1"); ok {
		t.Fatal("expired e1 must read as absent")
	}
	// The sweep removed e2 too, not only the requested key.
	if l.Len() != 1 {
		t.Fatalf("sweep must remove every expired entry, Len=%d", l.Len())
	}
	if v, ok := l.Get("live"); !ok || v != 3 {
		t.Fatal("live must survive the sweep")
	}
}

// Plain Set clears a previous per-key TTL: the LRU variant inherits no
// default TTL.
func TestLRU_SetClearsTTL(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	l := NewLRUWithClock[string, int](8, clk)

	l.SetWithTTL("k", 1, 10*time.Millisecond)
	l.Set("k", 2) // refresh without TTL
	clk.add(50 * time.Millisecond)

	if v, ok := l.Get("k"); !ok || v != 2 {
		t.Fatalf("k must not expire after TTL was cleared, got %v ok=%v", v, ok)
	}
}

// Keys and Each report entries least-recently used first.
func TestLRU_KeysOrder(t *testing.T) {
	t.Parallel()

	l := NewLRU[string, int](8)
	l.Set("a", 1)
	l.Set("b", 2)
	l.Set("c", 3)
	l.Get("a") // order now: b, c, a

	want := []string{"b", "c", "a"}
	got := l.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys want %v, got %v", want, got)
		}
	}
}

func TestLRU_RemoveContainsClear(t *testing.T) {
	t.Parallel()

	l := NewLRU[string, int](8)
	l.Set("a", 1)
	l.Set("b", 2)

	if v, ok := l.Remove("a"); !ok || v != 1 {
		t.Fatalf("Remove a want previous 1, got %v ok=%v", v, ok)
	}
	if l.Contains("a") {
		t.Fatal("a must be absent after Remove")
	}
	if !l.Contains("b") {
		t.Fatal("b must still be present")
	}

	l.Clear()
	if l.Len() != 0 {
		t.Fatalf("Len after Clear want 0, got %d", l.Len())
	}
	// The list is reset too: a fresh Set must work normally.
	l.Set("c", 3)
	if _, ok := l.Get("c"); !ok {
		t.Fatal("Set after Clear must work")
	}
}

func TestNewLRU_PanicsOnZeroMaxSize(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("NewLRU must panic when maxSize <= 0")
		}
	}()
	NewLRU[string, int](0)
}
