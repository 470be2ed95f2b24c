package cache

import (
	"context"
	"log/slog"
	"time"
)

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictCapacity — removed to make room at MaxSize. The bounded cache
	// always picks the entry with the smallest creation time, independent
	// of access recency.
	EvictCapacity EvictReason = iota
	// EvictTTL — expired and purged (lazily, by the calls that purge).
	EvictTTL
)

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
}

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// LoaderFunc fetches the value for a key on cache miss. Loaders are
// expected to be idempotent: the cache may invoke one again for the same
// key if an earlier load failed to populate an entry.
type LoaderFunc[K comparable, V any] func(ctx context.Context, k K) (V, error)

// Options configures the bounded TTL cache. Zero values are safe except
// MaxSize; sane defaults are applied in New():
//   - nil Metrics => NoopMetrics
//   - nil Logger  => slog.Default()
//   - nil Clock   => time.Now()
type Options[K comparable, V any] struct {
	// MaxSize is the entry count limit. Must be > 0; New panics otherwise.
	MaxSize int

	// DefaultTTL applies to Set/Add and loaded values when no per-key TTL
	// is given (0 = entries never expire).
	DefaultTTL time.Duration

	// OnEvict is called for capacity and TTL evictions under the cache
	// lock; keep callbacks lightweight. Explicit Remove/Clear calls do not
	// trigger it.
	OnEvict func(k K, v V, reason EvictReason)

	// Metrics receives Hit/Miss/Evict/Size signals.
	Metrics Metrics

	// Logger reports warm-up loader failures; the cache itself never logs
	// on hot paths.
	Logger *slog.Logger

	// Clock allows overriding the time source (tests). Nil => time.Now().
	Clock Clock
}
