package cache

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// ErrNoLoader is returned by GetOrLoad when no loader is supplied.
var ErrNoLoader = errors.New("cache: no loader provided")

// Cache is a capacity-bounded TTL cache guarded by a single readers-writer
// lock. All methods are safe for concurrent use by multiple goroutines.
//
// Two properties distinguish it from LRU:
//
//   - Overflow eviction removes the entry with the smallest creation time,
//     independent of access recency.
//   - The miss path of GetOrLoad holds the cache-wide write lock across the
//     loader call, so all concurrent loads on one instance are serialized —
//     across every key, not merely the contending one. The upside is that a
//     loader runs twice for the same key only if an earlier load failed to
//     populate the cache.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*Entry[V]

	opt Options[K, V]
}

// New constructs a cache with the provided Options.
// Panics when MaxSize <= 0.
func New[K comparable, V any](opt Options[K, V]) *Cache[K, V] {
	if opt.MaxSize <= 0 {
		panic("cache: MaxSize must be > 0")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	return &Cache[K, V]{
		entries: make(map[K]*Entry[V], opt.MaxSize),
		opt:     opt,
	}
}

// Get returns the value for k and a presence flag. Expired entries report
// absent but are not deleted on this path; deletion is left to the calls
// that purge (Len, Keys, Stats) and to the maintenance helpers.
// A successful Get touches the entry (lastAccessed, accessCount).
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.getLocked(k)
}

// getLocked requires at least the read lock. Entry touches use atomics, so
// the shared lock is sufficient.
func (c *Cache[K, V]) getLocked(k K) (V, bool) {
	e, ok := c.entries[k]
	if !ok || e.expiredAt(c.now()) {
		c.opt.Metrics.Miss()
		var zero V
		return zero, false
	}
	c.opt.Metrics.Hit()
	return e.valueAt(c.now()), true
}

// GetOrLoad returns the value for k, invoking load on miss and caching a
// non-nil result with the default TTL. Loader errors propagate to the
// caller untouched and nothing is cached for them.
//
// The write lock is held across the load, so concurrent loads on this
// instance are fully serialized (see the type comment). A slow loader
// therefore blocks every other operation on the cache; ctx is passed to
// the loader, not applied to lock acquisition.
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, k K, load LoaderFunc[K, V]) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if load == nil {
		var zero V
		return zero, ErrNoLoader
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check: another caller may have populated k while we waited.
	if e, ok := c.entries[k]; ok && !e.expiredAt(c.now()) {
		c.opt.Metrics.Hit()
		return e.valueAt(c.now()), nil
	}
	v, err := load(ctx, k)
	if err != nil {
		var zero V
		return zero, err
	}
	if !isNil(v) {
		c.setLocked(k, v, c.deadline(c.opt.DefaultTTL))
	}
	return v, nil
}

// Set inserts or updates k→v with the cache's default TTL.
// A nil value is a silent no-op by contract, not an error.
func (c *Cache[K, V]) Set(k K, v V) { c.set(k, v, c.opt.DefaultTTL) }

// SetWithTTL inserts or updates k→v with a per-key TTL.
// A non-positive ttl disables expiration for this entry.
func (c *Cache[K, V]) SetWithTTL(k K, v V, ttl time.Duration) { c.set(k, v, ttl) }

func (c *Cache[K, V]) set(k K, v V, ttl time.Duration) {
	if isNil(v) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(k, v, c.deadline(ttl))
}

// setLocked inserts or replaces k. At capacity the entry with the smallest
// createdAt is evicted first: creation order, not recency.
func (c *Cache[K, V]) setLocked(k K, v V, deadline int64) {
	if _, ok := c.entries[k]; !ok && len(c.entries) >= c.opt.MaxSize {
		c.evictOldestLocked()
	}
	c.entries[k] = newEntry(v, c.now(), deadline)
	c.opt.Metrics.Size(len(c.entries))
}

// evictOldestLocked removes the entry with the smallest creation time.
// O(n) scan; the capacity bound keeps n small in practice.
func (c *Cache[K, V]) evictOldestLocked() {
	var (
		oldestKey K
		oldest    *Entry[V]
	)
	for k, e := range c.entries {
		if oldest == nil || e.createdAt < oldest.createdAt {
			oldestKey, oldest = k, e
		}
	}
	if oldest == nil {
		return
	}
	delete(c.entries, oldestKey)
	c.opt.Metrics.Evict(EvictCapacity)
	if cb := c.opt.OnEvict; cb != nil {
		cb(oldestKey, oldest.val, EvictCapacity)
	}
}

// Add inserts k→v only if k is absent (an expired entry counts as absent).
// Returns false on duplicate or nil value; no update is performed.
func (c *Cache[K, V]) Add(k K, v V) bool {
	if isNil(v) {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[k]; ok && !e.expiredAt(c.now()) {
		return false
	}
	c.setLocked(k, v, c.deadline(c.opt.DefaultTTL))
	return true
}

// Remove deletes k and returns the previous value, if any. Removal is not
// counted as an eviction and does not trigger OnEvict.
func (c *Cache[K, V]) Remove(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok {
		var zero V
		return zero, false
	}
	delete(c.entries, k)
	c.opt.Metrics.Size(len(c.entries))
	return e.val, true
}

// Contains reports whether k is present and not expired, without touching
// the entry.
func (c *Cache[K, V]) Contains(k K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[k]
	return ok && !e.expiredAt(c.now())
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*Entry[V], c.opt.MaxSize)
	c.opt.Metrics.Size(0)
}

// Len purges all currently expired entries, then returns the number of
// resident entries. Unlike Get, this call reflects an up-to-date view.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeExpiredLocked()
	return len(c.entries)
}

// Keys purges all currently expired entries, then returns the remaining
// keys in unspecified order.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeExpiredLocked()
	ks := make([]K, 0, len(c.entries))
	for k := range c.entries {
		ks = append(ks, k)
	}
	return ks
}

// purgeExpiredLocked removes every entry whose deadline has passed and
// returns the number removed. Requires the write lock.
func (c *Cache[K, V]) purgeExpiredLocked() int {
	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if e.expiredAt(now) {
			delete(c.entries, k)
			removed++
			c.opt.Metrics.Evict(EvictTTL)
			if cb := c.opt.OnEvict; cb != nil {
				cb(k, e.val, EvictTTL)
			}
		}
	}
	if removed > 0 {
		c.opt.Metrics.Size(len(c.entries))
	}
	return removed
}

// Stats reports a snapshot of the cache after purging expired entries.
//
// HitRate is Size/TotalAccesses — the historical formula of the system
// this library was extracted from, not a conventional hit/miss ratio.
// Kept verbatim for compatibility with existing dashboards.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	expired := c.purgeExpiredLocked()
	var accesses int64
	for _, e := range c.entries {
		accesses += e.accessCount.Load()
	}
	st := Stats{
		Size:          len(c.entries),
		MaxSize:       c.opt.MaxSize,
		TotalAccesses: accesses,
		ExpiredCount:  expired,
	}
	if accesses > 0 {
		st.HitRate = float64(st.Size) / float64(accesses)
	}
	return st
}

// Stats is a point-in-time snapshot of a bounded TTL cache.
type Stats struct {
	// Size and MaxSize are the resident entry count (after purging) and
	// the capacity bound.
	Size    int
	MaxSize int
	// TotalAccesses sums the access counts of all resident entries.
	TotalAccesses int64
	// HitRate is Size/TotalAccesses (0 when nothing was accessed).
	HitRate float64
	// ExpiredCount is the number of entries the purge performed by this
	// snapshot removed.
	ExpiredCount int
}

// Each calls fn for every resident entry without purging or touching
// anything; iteration stops early when fn returns false. This is the
// inspection surface the maintenance helpers operate on.
func (c *Cache[K, V]) Each(fn func(k K, info EntryInfo) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for k, e := range c.entries {
		if !fn(k, e.info()) {
			return
		}
	}
}

// ---- helpers ----

func (c *Cache[K, V]) now() int64 {
	if c.opt.Clock != nil {
		return c.opt.Clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}

// deadline converts a relative TTL into an absolute UnixNano deadline.
// A non-positive ttl returns 0 (no expiration).
func (c *Cache[K, V]) deadline(ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	return c.now() + int64(ttl)
}

// isNil reports whether v is a nil value of a nil-able kind. Nil values are
// never stored: a cached nil would make a hit indistinguishable from a miss.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
