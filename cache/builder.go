package cache

import (
	"log/slog"
	"time"
)

// Builder provides fluent construction of a bounded TTL cache:
//
//	c := cache.NewBuilder[string, int]().
//		MaxSize(1024).
//		DefaultTTL(5 * time.Minute).
//		Build()
type Builder[K comparable, V any] struct {
	opt Options[K, V]
}

// NewBuilder returns an empty builder. MaxSize must be set before Build.
func NewBuilder[K comparable, V any]() *Builder[K, V] { return &Builder[K, V]{} }

// MaxSize sets the entry count limit.
func (b *Builder[K, V]) MaxSize(n int) *Builder[K, V] {
	b.opt.MaxSize = n
	return b
}

// DefaultTTL sets the TTL applied when no per-key TTL is given.
func (b *Builder[K, V]) DefaultTTL(d time.Duration) *Builder[K, V] {
	b.opt.DefaultTTL = d
	return b
}

// Metrics wires an observability backend.
func (b *Builder[K, V]) Metrics(m Metrics) *Builder[K, V] {
	b.opt.Metrics = m
	return b
}

// OnEvict registers an eviction callback.
func (b *Builder[K, V]) OnEvict(fn func(k K, v V, reason EvictReason)) *Builder[K, V] {
	b.opt.OnEvict = fn
	return b
}

// Logger sets the logger used for warm-up failure reports.
func (b *Builder[K, V]) Logger(l *slog.Logger) *Builder[K, V] {
	b.opt.Logger = l
	return b
}

// Clock overrides the time source (tests).
func (b *Builder[K, V]) Clock(clk Clock) *Builder[K, V] {
	b.opt.Clock = clk
	return b
}

// Build constructs the cache. Panics when MaxSize was not set to a
// positive value, same as New.
func (b *Builder[K, V]) Build() *Cache[K, V] { return New(b.opt) }
