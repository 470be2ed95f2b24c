package cache

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// WarmUp preloads c with the given keys, fanning loader calls out across a
// bounded set of workers (≈ GOMAXPROCS). Loads run outside the cache lock;
// each result is stored with the cache's default TTL.
//
// Per-key loader failures (and nil results) are logged through the cache's
// Logger and skipped — the rest of the batch continues. Returns the number
// of keys actually stored.
func WarmUp[K comparable, V any](ctx context.Context, c *Cache[K, V], load LoaderFunc[K, V], keys []K) int {
	if load == nil || len(keys) == 0 {
		return 0
	}

	var loaded atomic.Int64
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, k := range keys {
		k := k
		g.Go(func() error {
			v, err := load(ctx, k)
			if err != nil {
				c.opt.Logger.Warn("cache warm-up: load failed",
					slog.Any("key", k), slog.Any("error", err))
				return nil
			}
			if isNil(v) {
				c.opt.Logger.Warn("cache warm-up: loader returned nil",
					slog.Any("key", k))
				return nil
			}
			c.Set(k, v)
			loaded.Add(1)
			return nil
		})
	}
	// Workers always return nil; Wait only synchronizes completion.
	_ = g.Wait()
	return int(loaded.Load())
}

// WarmUpAsync runs the warm-up in its own goroutine and returns
// immediately. Fire-and-forget: there is no handle to await completion,
// observe progress, or cancel in-flight loads beyond cancelling ctx.
func WarmUpAsync[K comparable, V any](ctx context.Context, c *Cache[K, V], load LoaderFunc[K, V], keys []K) {
	ks := make([]K, len(keys))
	copy(ks, keys)
	go WarmUp(ctx, c, load, ks)
}
