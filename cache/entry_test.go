package cache

import (
	"testing"
	"time"
)

// Reading and touching are inseparable: every Value() call bumps
// lastAccessed and increments accessCount.
func TestEntry_ValueTouches(t *testing.T) {
	t.Parallel()

	e := NewEntry("payload", 0)
	if e.AccessCount() != 0 {
		t.Fatalf("fresh entry must have zero accesses, got %d", e.AccessCount())
	}

	before := e.LastAccessed()
	time.Sleep(2 * time.Millisecond)

	if v := e.Value(); v != "payload" {
		t.Fatalf("Value want payload, got %q", v)
	}
	_ = e.Value()
	if e.AccessCount() != 2 {
		t.Fatalf("accessCount want 2, got %d", e.AccessCount())
	}
	if !e.LastAccessed().After(before) {
		t.Fatal("Value must advance lastAccessed")
	}
}

// IsExpired is a pure predicate against the supplied time; the deadline is
// fixed at construction.
func TestEntry_IsExpired(t *testing.T) {
	t.Parallel()

	e := NewEntry(1, 50*time.Millisecond)
	deadline, ok := e.ExpiresAt()
	if !ok {
		t.Fatal("entry with TTL must report a deadline")
	}
	if e.IsExpired(deadline.Add(-time.Millisecond)) {
		t.Fatal("not expired before the deadline")
	}
	if !e.IsExpired(deadline.Add(time.Millisecond)) {
		t.Fatal("expired after the deadline")
	}

	forever := NewEntry(1, 0)
	if _, ok := forever.ExpiresAt(); ok {
		t.Fatal("zero TTL must mean no deadline")
	}
	if forever.IsExpired(time.Now().Add(100 * 365 * 24 * time.Hour)) {
		t.Fatal("entries without a deadline never expire")
	}
}

// Metadata mutates independently of the value and does not count as an
// access.
func TestEntry_Metadata(t *testing.T) {
	t.Parallel()

	e := NewEntry("v", 0)
	if e.Metadata("source") != nil {
		t.Fatal("absent metadata must read as nil")
	}

	e.SetMetadata("source", "registrar")
	e.SetMetadata("attempts", 3)

	if got := e.Metadata("source"); got != "registrar" {
		t.Fatalf("metadata source want registrar, got %v", got)
	}
	if got := e.Metadata("attempts"); got != 3 {
		t.Fatalf("metadata attempts want 3, got %v", got)
	}
	if e.AccessCount() != 0 {
		t.Fatal("metadata operations must not count as accesses")
	}
}
