package cache

import (
	"context"
	"time"
)

// Defaults for memoized functions.
const (
	memoMaxSize = 1000
	memoTTL     = time.Hour
)

// Memoize wraps f with a private bounded TTL cache keyed by argument
// (capacity 1000, results kept for 1 hour). Within the TTL window repeated
// calls with an equal argument invoke f exactly once; errors are never
// cached, so a failed call is retried on the next invocation.
func Memoize[K comparable, V any](f LoaderFunc[K, V]) func(ctx context.Context, k K) (V, error) {
	return MemoizeWith(f, memoMaxSize, memoTTL)
}

// MemoizeWith is Memoize with caller-supplied capacity and TTL.
// Panics when maxSize <= 0.
func MemoizeWith[K comparable, V any](f LoaderFunc[K, V], maxSize int, ttl time.Duration) func(ctx context.Context, k K) (V, error) {
	c := New[K, V](Options[K, V]{MaxSize: maxSize, DefaultTTL: ttl})
	return func(ctx context.Context, k K) (V, error) {
		return c.GetOrLoad(ctx, k, f)
	}
}

// MemoizeSupplier memoizes a zero-argument supplier: the result is stored
// under a fixed internal key in a capacity-1 cache and kept for 1 hour.
func MemoizeSupplier[V any](f func(ctx context.Context) (V, error)) func(ctx context.Context) (V, error) {
	return MemoizeSupplierWith(f, memoTTL)
}

// MemoizeSupplierWith is MemoizeSupplier with a caller-supplied TTL.
func MemoizeSupplierWith[V any](f func(ctx context.Context) (V, error), ttl time.Duration) func(ctx context.Context) (V, error) {
	c := New[struct{}, V](Options[struct{}, V]{MaxSize: 1, DefaultTTL: ttl})
	load := func(ctx context.Context, _ struct{}) (V, error) { return f(ctx) }
	return func(ctx context.Context) (V, error) {
		return c.GetOrLoad(ctx, struct{}{}, load)
	}
}
