package cache

import "sync"

// LockingStrategy selects how SyncCache treats the loader call on the
// get-or-load path.
type LockingStrategy int

const (
	// UnprotectedLoader releases the lock around the loader call, so a
	// slow load never stalls other cache access. The loader may therefore
	// run more than once concurrently for the same key; at most one result
	// is retained — the rest are dropped with DropDiscarded and every
	// caller observes the retained value. Default.
	UnprotectedLoader LockingStrategy = iota

	// ProtectLoader keeps the lock held for the entire get-or-load
	// sequence. The loader never runs concurrently, at the cost of
	// blocking all other access while a load is in flight. Existence is
	// re-checked only after the loader returns; a slow loader holding the
	// lock for its full duration is the documented trade-off of this mode.
	ProtectLoader
)

// SyncCache makes one engine safe for concurrent use by serializing every
// operation behind a single mutex scoped to that engine. The wrapped
// engine must not be used directly while the wrapper is in service.
type SyncCache[K comparable, V any] struct {
	mu       sync.Mutex
	c        *Cache[K, V]
	strategy LockingStrategy
}

// NewSync wraps an engine with the given locking strategy.
func NewSync[K comparable, V any](c *Cache[K, V], strategy LockingStrategy) *SyncCache[K, V] {
	return &SyncCache[K, V]{c: c, strategy: strategy}
}

// Get is the concurrent get-or-load path. Under ProtectLoader the whole
// sequence runs locked. Under UnprotectedLoader the lookup runs locked,
// the loader runs unlocked, and the insert re-checks for a racing insert
// of the same key, discarding the duplicate value if one happened.
func (sc *SyncCache[K, V]) Get(key K) (V, error) {
	if sc.strategy == ProtectLoader {
		sc.mu.Lock()
		defer sc.mu.Unlock()
		return sc.c.Get(key)
	}

	sc.mu.Lock()
	v, ok, err := sc.c.lookup(key)
	sc.mu.Unlock()
	if ok || err != nil {
		return v, err
	}

	// Miss with a loader configured: load outside the lock.
	loaded, err := sc.c.opt.Loader(key)
	if err != nil {
		var zero V
		return zero, err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.c.completeLoad(key, loaded), nil
}

// GetUncached forces a load. The loader call follows the configured
// strategy; the store of the result is always locked.
func (sc *SyncCache[K, V]) GetUncached(key K) (V, error) {
	if sc.strategy == ProtectLoader {
		sc.mu.Lock()
		defer sc.mu.Unlock()
		return sc.c.GetUncached(key)
	}

	if sc.c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}
	value, err := sc.c.opt.Loader(key)
	if err != nil {
		var zero V
		return zero, err
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.c.Set(key, value)
	return value, nil
}

// Refresh re-loads key, discarding the returned value.
func (sc *SyncCache[K, V]) Refresh(key K) error {
	_, err := sc.GetUncached(key)
	return err
}

// Set inserts or overwrites key under the lock.
func (sc *SyncCache[K, V]) Set(key K, value V) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.c.Set(key, value)
}

// Add inserts key only if absent.
func (sc *SyncCache[K, V]) Add(key K, value V) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.c.Add(key, value)
}

// Remove deletes key if present.
func (sc *SyncCache[K, V]) Remove(key K) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.c.Remove(key)
}

// Contains reports key presence.
func (sc *SyncCache[K, V]) Contains(key K) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.c.Contains(key)
}

// Touch promotes key in the eviction order.
func (sc *SyncCache[K, V]) Touch(key K) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.c.Touch(key)
}

// Len returns the number of resident entries.
func (sc *SyncCache[K, V]) Len() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.c.Len()
}

// Capacity returns the current entry limit.
func (sc *SyncCache[K, V]) Capacity() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.c.Capacity()
}

// Behavior returns the configured eviction behavior.
func (sc *SyncCache[K, V]) Behavior() Behavior { return sc.c.Behavior() }

// SetCapacity changes the entry limit, evicting overflow synchronously.
func (sc *SyncCache[K, V]) SetCapacity(capacity int) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.c.SetCapacity(capacity)
}

// Clear removes all entries.
func (sc *SyncCache[K, V]) Clear() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.c.Clear()
}

// Reset clears the cache and zeroes statistics.
func (sc *SyncCache[K, V]) Reset() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.c.Reset()
}

// Stats returns the engine's live statistics view. The counters are
// atomic, so reading them needs no lock.
func (sc *SyncCache[K, V]) Stats() Statistics { return sc.c.Stats() }

// Snapshot returns a consistent point-in-time copy.
func (sc *SyncCache[K, V]) Snapshot() Snapshot[K, V] {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.c.Snapshot()
}

// Keys returns all keys in eviction order, captured under the lock.
func (sc *SyncCache[K, V]) Keys() []K {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.c.Keys()
}

// Values returns all values in eviction order, captured under the lock.
func (sc *SyncCache[K, V]) Values() []V {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.c.Values()
}
