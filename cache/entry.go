package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// Entry wraps a cached value with creation/expiry deadlines and access
// bookkeeping. The expiry deadline is fixed at construction and never
// changes; lastAccessed and accessCount are the only mutable timing fields.
// Both are atomic so the owning cache may touch entries while holding only
// its read lock.
type Entry[V any] struct {
	val       V
	createdAt int64 // UnixNano
	expiresAt int64 // UnixNano; 0 = never expires

	lastAccessed atomic.Int64
	accessCount  atomic.Int64

	// Free-form metadata, mutable independently of the value.
	metaMu   sync.Mutex
	metadata map[string]any
}

// NewEntry wraps v. A non-positive ttl means the entry never expires.
func NewEntry[V any](v V, ttl time.Duration) *Entry[V] {
	now := time.Now().UnixNano()
	var deadline int64
	if ttl > 0 {
		deadline = now + int64(ttl)
	}
	return newEntry(v, now, deadline)
}

// newEntry builds an entry from an absolute deadline (0 = no expiry).
func newEntry[V any](v V, now, deadline int64) *Entry[V] {
	e := &Entry[V]{val: v, createdAt: now, expiresAt: deadline}
	e.lastAccessed.Store(now)
	return e
}

// Value returns the wrapped value and records the access: reading and
// touching are inseparable. Every call bumps lastAccessed and increments
// accessCount.
func (e *Entry[V]) Value() V { return e.valueAt(time.Now().UnixNano()) }

func (e *Entry[V]) valueAt(now int64) V {
	e.lastAccessed.Store(now)
	e.accessCount.Add(1)
	return e.val
}

// IsExpired reports whether the entry's deadline has passed at now.
// Entries without a deadline never expire.
func (e *Entry[V]) IsExpired(now time.Time) bool { return e.expiredAt(now.UnixNano()) }

func (e *Entry[V]) expiredAt(now int64) bool {
	return e.expiresAt != 0 && now > e.expiresAt
}

// CreatedAt returns the entry's creation time.
func (e *Entry[V]) CreatedAt() time.Time { return time.Unix(0, e.createdAt) }

// ExpiresAt returns the expiry deadline. The second result is false when
// the entry never expires.
func (e *Entry[V]) ExpiresAt() (time.Time, bool) {
	if e.expiresAt == 0 {
		return time.Time{}, false
	}
	return time.Unix(0, e.expiresAt), true
}

// LastAccessed returns the time of the most recent successful read
// (creation time if the entry was never read).
func (e *Entry[V]) LastAccessed() time.Time { return time.Unix(0, e.lastAccessed.Load()) }

// AccessCount returns how many times the value has been read.
func (e *Entry[V]) AccessCount() int64 { return e.accessCount.Load() }

// Metadata returns the metadata stored under key, or nil if absent.
func (e *Entry[V]) Metadata(key string) any {
	e.metaMu.Lock()
	defer e.metaMu.Unlock()
	return e.metadata[key]
}

// SetMetadata attaches free-form metadata to the entry. Metadata mutates
// independently of the value and does not count as an access.
func (e *Entry[V]) SetMetadata(key string, v any) {
	e.metaMu.Lock()
	defer e.metaMu.Unlock()
	if e.metadata == nil {
		e.metadata = make(map[string]any)
	}
	e.metadata[key] = v
}

// info snapshots the entry's bookkeeping for inspection.
func (e *Entry[V]) info() EntryInfo {
	i := EntryInfo{
		CreatedAt:    time.Unix(0, e.createdAt),
		LastAccessed: time.Unix(0, e.lastAccessed.Load()),
		AccessCount:  e.accessCount.Load(),
	}
	if e.expiresAt != 0 {
		i.ExpiresAt = time.Unix(0, e.expiresAt)
	}
	return i
}
