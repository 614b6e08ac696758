package cache

import (
	"fmt"
	"io"

	"github.com/wellplayedldl/loadcache/policy"
	"github.com/wellplayedldl/loadcache/policy/fifo"
	"github.com/wellplayedldl/loadcache/policy/lru"
)

// Cache is a bounded associative cache with transparent load-on-miss.
// It holds at most Capacity entries; inserting into a full cache first
// evicts exactly one entry chosen by the configured Behavior, so capacity
// is never transiently exceeded.
//
// The bare engine performs no synchronization. For concurrent use wrap it
// in a SyncCache; a Cache instance must otherwise be confined to one
// goroutine at a time.
type Cache[K comparable, V any] struct {
	store store[K, V]
	pol   policy.Policy
	opt   Options[K, V]

	// version stamps structural mutations and invalidates iterators.
	version uint64

	stat counters
}

// engineHooks adapts the engine's order list to policy.Hooks, stamping the
// version whenever the list actually changes shape.
type engineHooks[K comparable, V any] struct {
	c *Cache[K, V]
}

func (h engineHooks[K, V]) PushBack(slot int32) { h.c.store.pushBack(slot) }
func (h engineHooks[K, V]) MoveToBack(slot int32) {
	if h.c.store.moveToBack(slot) {
		h.c.version++
	}
}
func (h engineHooks[K, V]) Front() int32 { return h.c.store.first }

var _ policy.Hooks = engineHooks[string, int]{}

// New constructs a Cache from opt. Zero-value fields get defaults
// (capacity DefaultCapacity, behavior EvictLeastRecentlyUsed, FNV-1a
// comparer, NoopMetrics); a negative Capacity is rejected with
// ErrInvalidCapacity.
func New[K comparable, V any](opt Options[K, V]) (*Cache[K, V], error) {
	if opt.Capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, opt.Capacity)
	}
	if opt.Capacity == 0 {
		opt.Capacity = DefaultCapacity
	}
	if opt.Comparer == nil {
		opt.Comparer = defaultComparer[K]{}
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}

	c := &Cache[K, V]{opt: opt}
	c.store = store[K, V]{
		comparer:    opt.Comparer,
		capacity:    opt.Capacity,
		preallocate: opt.EnsureCapacity,
		deletedHead: noIndex,
		first:       noIndex,
		last:        noIndex,
	}
	if opt.EnsureCapacity {
		c.store.allocate(opt.Capacity)
	}

	switch opt.Behavior {
	case EvictLeastRecentlyUsed:
		c.pol = lru.New().New(engineHooks[K, V]{c})
	case EvictOldest:
		c.pol = fifo.New().New(engineHooks[K, V]{c})
	default:
		return nil, fmt.Errorf("loadcache: unknown behavior %d", opt.Behavior)
	}
	return c, nil
}

// Get returns the value for key. On a hit the entry is promoted according
// to the Behavior. On a miss the Loader, when configured, materializes the
// value synchronously, the result is stored (evicting first if the cache
// is full), and the loaded value is returned. Without a Loader a miss
// yields ErrKeyNotFound. Loader errors propagate unmodified and leave the
// key absent.
func (c *Cache[K, V]) Get(key K) (V, error) {
	v, ok, err := c.lookup(key)
	if ok || err != nil {
		return v, err
	}
	loaded, err := c.opt.Loader(key)
	if err != nil {
		var zero V
		return zero, err
	}
	c.insertNew(key, loaded)
	return loaded, nil
}

// lookup is the read path without the loader: it counts the read and
// promotes on hit. err is non-nil only when no loader could ever satisfy
// the miss.
func (c *Cache[K, V]) lookup(key K) (v V, ok bool, err error) {
	c.stat.reads.Add(1)
	if idx := c.store.findIndex(key); idx != noIndex {
		c.stat.hits.Add(1)
		c.opt.Metrics.Hit()
		c.pol.OnHit(idx)
		return c.store.items[idx].value, true, nil
	}
	c.opt.Metrics.Miss()
	if c.opt.Loader == nil {
		err = fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return v, false, err
}

// Set inserts or overwrites key regardless of Loader presence.
// An overwrite replaces the value in place (a touch under LRU, no order
// change under FIFO) and never evicts; a new key follows the
// evict-then-insert path.
func (c *Cache[K, V]) Set(key K, value V) {
	if idx := c.store.findIndex(key); idx != noIndex {
		old := c.store.items[idx].value
		c.store.items[idx].value = value
		c.pol.OnUpdate(idx)
		c.stat.writes.Add(1)
		c.dropValue(key, old, DropReplaced)
		return
	}
	c.insertNew(key, value)
}

// Add inserts key only if absent, returning ErrDuplicateKey otherwise.
func (c *Cache[K, V]) Add(key K, value V) error {
	if c.store.findIndex(key) != noIndex {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}
	c.insertNew(key, value)
	return nil
}

// Remove deletes key if present. The slot is tombstoned for reuse and the
// dropped value is handed to OnEvict/disposal.
func (c *Cache[K, V]) Remove(key K) bool {
	idx := c.store.findIndex(key)
	if idx == noIndex {
		return false
	}
	k, v := c.store.items[idx].key, c.store.items[idx].value
	c.store.removeAt(idx)
	c.stat.deletes.Add(1)
	c.version++
	c.opt.Metrics.Size(c.store.count())
	c.dropValue(k, v, DropRemoved)
	return true
}

// Contains reports key presence without touching order or statistics.
func (c *Cache[K, V]) Contains(key K) bool {
	return c.store.findIndex(key) != noIndex
}

// Touch promotes key to the most-recent end of the eviction order
// regardless of Behavior. Returns ErrKeyNotFound if absent.
func (c *Cache[K, V]) Touch(key K) error {
	idx := c.store.findIndex(key)
	if idx == noIndex {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	if c.store.moveToBack(idx) {
		c.version++
	}
	return nil
}

// GetUncached invokes the Loader for key even if the key is resident,
// stores the fresh value (overwriting any stored one) and returns it.
// Returns ErrNoLoader on a cache constructed without a Loader.
func (c *Cache[K, V]) GetUncached(key K) (V, error) {
	var zero V
	if c.opt.Loader == nil {
		return zero, ErrNoLoader
	}
	value, err := c.opt.Loader(key)
	if err != nil {
		return zero, err
	}
	c.Set(key, value)
	return value, nil
}

// Refresh re-loads key via the Loader, discarding the returned value.
func (c *Cache[K, V]) Refresh(key K) error {
	_, err := c.GetUncached(key)
	return err
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int { return c.store.count() }

// Capacity returns the current entry limit.
func (c *Cache[K, V]) Capacity() int { return c.store.capacity }

// Behavior returns the configured eviction behavior.
func (c *Cache[K, V]) Behavior() Behavior { return c.opt.Behavior }

// SetCapacity changes the entry limit. Shrinking below the current Len
// synchronously evicts the overflow in eviction order before the new
// bound takes effect, then compacts the backing storage; growing never
// evicts. A capacity <= 0 is rejected with ErrInvalidCapacity.
func (c *Cache[K, V]) SetCapacity(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	for c.store.count() > capacity {
		c.evictOne()
	}
	shrinking := capacity < c.store.capacity
	c.store.capacity = capacity
	if shrinking && c.store.items != nil && len(c.store.items) > capacity {
		c.store.compact(capacity)
		c.version++
	}
	if !shrinking && c.opt.EnsureCapacity {
		c.store.growTo(capacity)
	}
	return nil
}

// Clear removes all entries in O(1) by dropping the backing arrays.
// When disposal or an OnEvict callback is configured the entries are first
// walked in eviction order, which makes that case O(n).
func (c *Cache[K, V]) Clear() {
	if c.opt.OnEvict != nil || c.opt.DisposeDroppedValues {
		for i := c.store.first; i != noIndex; i = c.store.items[i].nextInOrder {
			c.dropValue(c.store.items[i].key, c.store.items[i].value, DropCleared)
		}
	}
	c.store.clearAll()
	c.version++
	c.opt.Metrics.Size(0)
}

// Reset clears the cache and zeroes all statistics counters.
func (c *Cache[K, V]) Reset() {
	c.Clear()
	c.stat.reset()
}

// Stats returns the live statistics view for this engine.
func (c *Cache[K, V]) Stats() Statistics { return Statistics{&c.stat} }

// insertNew runs the evict-then-insert path for a key verified absent:
// when the cache is full exactly one victim is evicted first, so the
// capacity bound holds at every point.
func (c *Cache[K, V]) insertNew(key K, value V) int32 {
	if c.store.count() == c.store.capacity {
		c.evictOne()
	}
	idx := c.store.insertNew(key, value)
	c.pol.OnInsert(idx)
	c.version++
	c.stat.writes.Add(1)
	c.opt.Metrics.Size(c.store.count())
	return idx
}

// evictOne removes the policy's victim. An empty order list here means the
// engine's bookkeeping is corrupted, so fail loudly.
func (c *Cache[K, V]) evictOne() {
	victim := c.pol.Victim()
	if victim == noIndex {
		panic("loadcache: eviction requested but order list is empty")
	}
	k, v := c.store.items[victim].key, c.store.items[victim].value
	c.store.removeAt(victim)
	c.stat.deletes.Add(1)
	c.version++
	c.opt.Metrics.Evict(DropEvicted)
	c.dropValue(k, v, DropEvicted)
}

// completeLoad stores a value that was produced outside any lock. If
// another goroutine inserted the key meanwhile, the fresh value is dropped
// and the resident one wins, so at most one value per key is retained.
func (c *Cache[K, V]) completeLoad(key K, value V) V {
	if idx := c.store.findIndex(key); idx != noIndex {
		existing := c.store.items[idx].value
		c.dropValue(key, value, DropDiscarded)
		return existing
	}
	c.insertNew(key, value)
	return value
}

// dropValue routes a value leaving the cache through the OnEvict callback
// and, when enabled, closes values implementing io.Closer.
func (c *Cache[K, V]) dropValue(k K, v V, reason DropReason) {
	if cb := c.opt.OnEvict; cb != nil {
		cb(k, v, reason)
	}
	if c.opt.DisposeDroppedValues {
		if closer, ok := any(v).(io.Closer); ok {
			_ = closer.Close()
		}
	}
}
