package cache

import "time"

// LRU is an access-ordered bounded cache: a map for O(1) lookups plus an
// intrusive doubly linked list ordered by recency (head=MRU, tail=LRU).
// Inserting past maxSize evicts the tail — the least-recently-used entry —
// automatically. Contrast with Cache, which evicts by creation order.
//
// LRU is NOT safe for concurrent use. It deliberately carries no lock so
// single-threaded callers avoid synchronization overhead; callers that
// share an instance across goroutines must serialize every call themselves
// (e.g. behind a sync.Mutex). Unsynchronized concurrent access can leave
// the map and the list transiently inconsistent.
type LRU[K comparable, V any] struct {
	maxSize int
	m       map[K]*node[K, V]
	head    *node[K, V] // MRU
	tail    *node[K, V] // LRU
	clock   Clock
}

// NewLRU constructs an LRU cache bounded to maxSize entries.
// Panics when maxSize <= 0.
func NewLRU[K comparable, V any](maxSize int) *LRU[K, V] {
	return NewLRUWithClock[K, V](maxSize, nil)
}

// NewLRUWithClock is NewLRU with an overridable time source (tests).
// A nil clock means wall time.
func NewLRUWithClock[K comparable, V any](maxSize int, clk Clock) *LRU[K, V] {
	if maxSize <= 0 {
		panic("cache: maxSize must be > 0")
	}
	return &LRU[K, V]{
		maxSize: maxSize,
		m:       make(map[K]*node[K, V], maxSize),
		clock:   clk,
	}
}

// Get returns the value for k and promotes the hit to MRU. Before the
// lookup it sweeps every expired entry out of the cache (the requested
// key included), so Gets alone keep the cache tidy.
func (l *LRU[K, V]) Get(k K) (V, bool) {
	now := l.now()
	l.sweepExpired(now)
	n, ok := l.m[k]
	if !ok {
		var zero V
		return zero, false
	}
	l.moveToFront(n)
	n.lastAccessed = now
	n.accessCount++
	return n.val, true
}

// Set inserts or replaces k→v with no expiry. Replacing counts as an
// access (promotes to MRU) and clears any previous per-key TTL; the LRU
// variant has no default TTL to inherit.
func (l *LRU[K, V]) Set(k K, v V) { l.set(k, v, 0) }

// SetWithTTL inserts or replaces k→v with a per-key TTL.
// A non-positive ttl disables expiration for this entry.
func (l *LRU[K, V]) SetWithTTL(k K, v V, ttl time.Duration) {
	var deadline int64
	if ttl > 0 {
		deadline = l.now() + int64(ttl)
	}
	l.set(k, v, deadline)
}

func (l *LRU[K, V]) set(k K, v V, deadline int64) {
	if n, ok := l.m[k]; ok {
		n.val = v
		n.exp = deadline
		l.moveToFront(n)
		return
	}
	now := l.now()
	n := &node[K, V]{key: k, val: v, exp: deadline, createdAt: now, lastAccessed: now}
	l.m[k] = n
	l.pushFront(n)
	for len(l.m) > l.maxSize {
		tail := l.tail
		l.unlink(tail)
		delete(l.m, tail.key)
	}
}

// Remove deletes k and returns the previous value, if any.
func (l *LRU[K, V]) Remove(k K) (V, bool) {
	n, ok := l.m[k]
	if !ok {
		var zero V
		return zero, false
	}
	l.unlink(n)
	delete(l.m, k)
	return n.val, true
}

// Contains reports whether k is present and not expired, without promoting.
func (l *LRU[K, V]) Contains(k K) bool {
	n, ok := l.m[k]
	return ok && !(n.exp != 0 && l.now() > n.exp)
}

// Clear removes every entry.
func (l *LRU[K, V]) Clear() {
	l.m = make(map[K]*node[K, V], l.maxSize)
	l.head, l.tail = nil, nil
}

// Len returns the number of resident entries (expired ones included until
// a Get sweeps them).
func (l *LRU[K, V]) Len() int { return len(l.m) }

// Keys returns the keys ordered least- to most-recently used.
func (l *LRU[K, V]) Keys() []K {
	ks := make([]K, 0, len(l.m))
	for n := l.tail; n != nil; n = n.prev {
		ks = append(ks, n.key)
	}
	return ks
}

// Each calls fn for every resident entry, least-recently used first,
// without promoting anything; iteration stops early when fn returns false.
func (l *LRU[K, V]) Each(fn func(k K, info EntryInfo) bool) {
	for n := l.tail; n != nil; n = n.prev {
		i := EntryInfo{
			CreatedAt:    time.Unix(0, n.createdAt),
			LastAccessed: time.Unix(0, n.lastAccessed),
			AccessCount:  n.accessCount,
		}
		if n.exp != 0 {
			i.ExpiresAt = time.Unix(0, n.exp)
		}
		if !fn(n.key, i) {
			return
		}
	}
}

// -------------------- internals --------------------

// sweepExpired walks the list and unlinks every node whose deadline has
// passed. Returns the number removed.
func (l *LRU[K, V]) sweepExpired(now int64) int {
	removed := 0
	for n := l.head; n != nil; {
		next := n.next
		if n.exp != 0 && now > n.exp {
			l.unlink(n)
			delete(l.m, n.key)
			removed++
		}
		n = next
	}
	return removed
}

// pushFront inserts n at MRU in O(1).
func (l *LRU[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
}

// moveToFront promotes n to MRU in O(1).
func (l *LRU[K, V]) moveToFront(n *node[K, V]) {
	if n == l.head {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if l.tail == n {
		l.tail = n.prev
	}
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
}

// unlink detaches n from the list in O(1).
func (l *LRU[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if l.head == n {
		l.head = n.next
	}
	if l.tail == n {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

func (l *LRU[K, V]) now() int64 {
	if l.clock != nil {
		return l.clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}
