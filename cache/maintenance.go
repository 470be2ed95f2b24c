package cache

import (
	"sort"
	"time"
)

// EntryInfo is a point-in-time view of one entry's bookkeeping, exposed by
// the Each methods of both cache variants.
type EntryInfo struct {
	CreatedAt time.Time
	// ExpiresAt is the zero time when the entry never expires.
	ExpiresAt    time.Time
	LastAccessed time.Time
	AccessCount  int64
}

// Expired reports whether the entry's deadline had passed at now.
func (i EntryInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Store is the enumeration/inspection surface the maintenance helpers
// operate on. Both cache variants satisfy it; the helpers never reach into
// a cache's private storage.
type Store[K comparable, V any] interface {
	// Each enumerates resident entries without purging or touching them.
	Each(fn func(k K, info EntryInfo) bool)
	// Remove deletes k and returns the previous value, if any.
	Remove(k K) (V, bool)
}

var (
	_ Store[string, int] = (*Cache[string, int])(nil)
	_ Store[string, int] = (*LRU[string, int])(nil)
)

// CleanExpired removes every entry whose expiry had passed when the sweep
// started and returns the number removed. Expiry is computed against a
// single "now" for the whole sweep.
func CleanExpired[K comparable, V any](s Store[K, V]) int {
	now := time.Now()
	var doomed []K
	s.Each(func(k K, i EntryInfo) bool {
		if i.Expired(now) {
			doomed = append(doomed, k)
		}
		return true
	})
	removed := 0
	for _, k := range doomed {
		if _, ok := s.Remove(k); ok {
			removed++
		}
	}
	return removed
}

// EvictLRU removes up to n entries in ascending last-access order,
// regardless of any remaining TTL. Returns the number removed.
func EvictLRU[K comparable, V any](s Store[K, V], n int) int {
	if n <= 0 {
		return 0
	}
	type candidate struct {
		k  K
		at time.Time
	}
	var cands []candidate
	s.Each(func(k K, i EntryInfo) bool {
		cands = append(cands, candidate{k: k, at: i.LastAccessed})
		return true
	})
	sort.Slice(cands, func(i, j int) bool { return cands[i].at.Before(cands[j].at) })

	removed := 0
	for _, c := range cands {
		if removed == n {
			break
		}
		if _, ok := s.Remove(c.k); ok {
			removed++
		}
	}
	return removed
}

// EvictOlderThan removes every entry created before now−age and returns
// the number removed.
func EvictOlderThan[K comparable, V any](s Store[K, V], age time.Duration) int {
	cutoff := time.Now().Add(-age)
	var doomed []K
	s.Each(func(k K, i EntryInfo) bool {
		if i.CreatedAt.Before(cutoff) {
			doomed = append(doomed, k)
		}
		return true
	})
	removed := 0
	for _, k := range doomed {
		if _, ok := s.Remove(k); ok {
			removed++
		}
	}
	return removed
}
