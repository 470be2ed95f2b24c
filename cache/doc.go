// Package cache provides the in-process caching core extracted from the
// SmartCampus administration system: a capacity-bounded TTL cache with a
// load-on-miss path, an unsynchronized LRU variant, maintenance sweeps,
// function memoization, and parallel warm-up.
//
// Design
//
//   - Cache (bounded TTL): a map of key→Entry guarded by one RWMutex per
//     instance. Reads take the shared lock; writes and the miss path of
//     GetOrLoad take the exclusive lock. On overflow the entry with the
//     smallest creation time is evicted — creation order, not recency.
//
//   - Loads: GetOrLoad holds the cache-wide write lock across the loader
//     call, so all concurrent loads on one instance are serialized, across
//     every key. The only way a loader runs twice for the same key is if an
//     earlier load failed to populate the cache. There is no per-key
//     striping; a slow loader blocks the whole instance.
//
//   - Expiry: lazy. Plain Get reports expired entries as absent without
//     deleting them; Len, Keys and Stats purge all expired entries before
//     reporting, and the maintenance helpers sweep on demand.
//
//   - LRU: a map[K]*node plus an intrusive MRU↔LRU doubly linked list.
//     Every successful Get promotes the hit and first sweeps all expired
//     nodes. LRU carries no lock at all — single-threaded callers skip the
//     synchronization cost, concurrent callers must bring their own.
//     The two variants are deliberately distinct types with different
//     concurrency contracts; do not unify them.
//
//   - Maintenance: CleanExpired, EvictLRU and EvictOlderThan are free
//     functions over the Store interface (Each + Remove) that both variants
//     satisfy, so they never reach into private storage.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals.
//     NoopMetrics is the default; the metrics/prom package exports them to
//     Prometheus.
//
// Basic usage
//
//	c := cache.NewBuilder[string, string]().
//		MaxSize(1024).
//		DefaultTTL(5 * time.Minute).
//		Build()
//	c.Set("a", "1")
//	if v, ok := c.Get("a"); ok {
//	    _ = v
//	}
//
// Load on miss
//
//	v, err := c.GetOrLoad(ctx, "user:42", func(ctx context.Context, k string) (string, error) {
//	    return fetchFromDB(ctx, k)
//	})
//
// Memoization
//
//	cached := cache.Memoize(expensive) // capacity 1000, results kept 1h
//	v, err := cached(ctx, "input")
//
// Warm-up
//
//	n := cache.WarmUp(ctx, c, loader, keys) // parallel, per-key failures logged
//	cache.WarmUpAsync(ctx, c, loader, keys) // fire-and-forget
//
// Stats
//
// Stats().HitRate is Size/TotalAccesses — the formula inherited from the
// system this package was extracted from, not a conventional hit/miss
// ratio. It is preserved on purpose so existing consumers keep seeing the
// numbers they already monitor.
package cache
