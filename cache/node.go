package cache

// node is an intrusive doubly linked list element owned by an LRU cache.
// It stores the key/value alongside list links and the bookkeeping the
// maintenance helpers inspect. Fields are plain (non-atomic) because LRU
// carries no internal synchronization.
type node[K comparable, V any] struct {
	key K
	val V

	// Intrusive list links: head is MRU, tail is LRU.
	prev *node[K, V]
	next *node[K, V]

	// Absolute expiration deadline in UnixNano. Zero means "no TTL".
	exp int64

	// Access bookkeeping in UnixNano / counts.
	createdAt    int64
	lastAccessed int64
	accessCount  int64
}
