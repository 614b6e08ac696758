package cache

// Iterator walks entries in eviction order: next victim first, most recent
// last. It captures the cache version at creation; any structural mutation
// (insert, remove, clear, resize, or an order-changing touch) invalidates
// it and the next step reports ErrConcurrentModification.
type Iterator[K comparable, V any] struct {
	c       *Cache[K, V]
	version uint64
	next    int32
	cur     int32
	err     error
}

// Iterate returns an iterator positioned before the first entry.
func (c *Cache[K, V]) Iterate() *Iterator[K, V] {
	return &Iterator[K, V]{c: c, version: c.version, next: c.store.first, cur: noIndex}
}

// Next advances to the next entry. It returns false at the end of the
// sequence or when the cache was mutated; check Err to tell the two apart.
func (it *Iterator[K, V]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.version != it.c.version {
		it.err = ErrConcurrentModification
		it.cur = noIndex
		return false
	}
	if it.next == noIndex {
		it.cur = noIndex
		return false
	}
	it.cur = it.next
	it.next = it.c.store.items[it.cur].nextInOrder
	return true
}

// Key returns the current entry's key. Valid only after Next returned true.
func (it *Iterator[K, V]) Key() K { return it.c.store.items[it.cur].key }

// Value returns the current entry's value. Valid only after Next returned true.
func (it *Iterator[K, V]) Value() V { return it.c.store.items[it.cur].value }

// Err returns ErrConcurrentModification if iteration was invalidated.
func (it *Iterator[K, V]) Err() error { return it.err }

// Keys returns all keys in eviction order.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, c.store.count())
	for i := c.store.first; i != noIndex; i = c.store.items[i].nextInOrder {
		keys = append(keys, c.store.items[i].key)
	}
	return keys
}

// Values returns all values in eviction order.
func (c *Cache[K, V]) Values() []V {
	values := make([]V, 0, c.store.count())
	for i := c.store.first; i != noIndex; i = c.store.items[i].nextInOrder {
		values = append(values, c.store.items[i].value)
	}
	return values
}

// Pair is one key/value association of a snapshot.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Snapshot captures everything an external serializer needs to reconstruct
// an equivalent cache: the scalar configuration, the statistics counters,
// and the entries in eviction order. Replaying Items with Set into a fresh
// cache built from the same configuration reproduces contents and order.
type Snapshot[K comparable, V any] struct {
	Capacity             int
	Behavior             Behavior
	DisposeDroppedValues bool
	EnsureCapacity       bool

	Items []Pair[K, V]

	Reads, Writes, Hits, Deletes uint64
}

// Snapshot returns a point-in-time copy of the cache state. Unlike Stats,
// the returned value does not track the live engine.
func (c *Cache[K, V]) Snapshot() Snapshot[K, V] {
	snap := Snapshot[K, V]{
		Capacity:             c.store.capacity,
		Behavior:             c.opt.Behavior,
		DisposeDroppedValues: c.opt.DisposeDroppedValues,
		EnsureCapacity:       c.opt.EnsureCapacity,
		Items:                make([]Pair[K, V], 0, c.store.count()),
		Reads:                c.stat.reads.Load(),
		Writes:               c.stat.writes.Load(),
		Hits:                 c.stat.hits.Load(),
		Deletes:              c.stat.deletes.Load(),
	}
	for i := c.store.first; i != noIndex; i = c.store.items[i].nextInOrder {
		snap.Items = append(snap.Items, Pair[K, V]{c.store.items[i].key, c.store.items[i].value})
	}
	return snap
}
