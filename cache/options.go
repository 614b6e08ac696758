package cache

import "github.com/wellplayedldl/loadcache/internal/util"

// DefaultCapacity is used when Options.Capacity is left zero.
const DefaultCapacity = 128

// Behavior selects which entry is evicted when inserting into a full cache.
type Behavior int

const (
	// EvictLeastRecentlyUsed removes the least recently accessed entry.
	// Reads promote entries, overwrites count as a touch. Default.
	EvictLeastRecentlyUsed Behavior = iota
	// EvictOldest removes the oldest-inserted entry regardless of access
	// pattern (pure FIFO over insertion time).
	EvictOldest
)

// String returns a stable label for the behavior.
func (b Behavior) String() string {
	switch b {
	case EvictOldest:
		return "oldest"
	default:
		return "lru"
	}
}

// Loader fetches the value for a missing key. Loaders are synchronous and
// carry no cancellation; a caller wanting timeouts wraps the function.
type Loader[K comparable, V any] func(k K) (V, error)

// KeyComparer abstracts key hashing and equality so that the slot store
// can be driven by a custom strategy (e.g. case-insensitive strings).
type KeyComparer[K comparable] interface {
	Hash(k K) uint64
	Equal(a, b K) bool
}

// defaultComparer hashes with FNV-1a and compares with ==.
type defaultComparer[K comparable] struct{}

func (defaultComparer[K]) Hash(k K) uint64   { return util.Fnv64a(k) }
func (defaultComparer[K]) Equal(a, b K) bool { return a == b }

// DropReason explains why a value left the cache.
type DropReason int

const (
	// DropEvicted — removed by the eviction policy at capacity.
	DropEvicted DropReason = iota
	// DropRemoved — removed explicitly via Remove.
	DropRemoved
	// DropReplaced — overwritten by Set, Refresh or GetUncached.
	DropReplaced
	// DropCleared — released in bulk by Clear or Reset.
	DropCleared
	// DropDiscarded — a concurrently loaded duplicate discarded by SyncCache.
	DropDiscarded
)

// String returns a stable label for the reason (used as a metric label).
func (r DropReason) String() string {
	switch r {
	case DropRemoved:
		return "removed"
	case DropReplaced:
		return "replaced"
	case DropCleared:
		return "cleared"
	case DropDiscarded:
		return "discarded"
	default:
		return "evicted"
	}
}

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason DropReason)
	Size(entries int)
}

// Options configures a Cache. Zero values are safe; defaults are applied
// in New:
//   - Capacity == 0 => DefaultCapacity
//   - nil Comparer  => FNV-1a hashing with == equality
//   - nil Metrics   => NoopMetrics
type Options[K comparable, V any] struct {
	// Capacity is the entry count limit (> 0). Zero means DefaultCapacity;
	// negative values are rejected with ErrInvalidCapacity.
	Capacity int

	// Behavior selects the eviction policy. Default EvictLeastRecentlyUsed.
	Behavior Behavior

	// Loader fetches values on miss. When nil the cache behaves like a
	// plain bounded map: Get on an absent key returns ErrKeyNotFound.
	Loader Loader[K, V]

	// Comparer overrides key hashing/equality. Nil uses the default.
	Comparer KeyComparer[K]

	// DisposeDroppedValues closes dropped values implementing io.Closer.
	// Applies to evictions, removals, overwrites, Clear, and values
	// discarded by the accessor's unprotected-loader path.
	DisposeDroppedValues bool

	// EnsureCapacity preallocates backing storage for exactly Capacity
	// entries up front instead of growing geometrically.
	EnsureCapacity bool

	// OnEvict is called for every dropped value with the reason.
	// Invoked synchronously on the mutating path; keep it lightweight.
	OnEvict func(k K, v V, reason DropReason)

	// Metrics receives Hit/Miss/Evict/Size signals. Nil => NoopMetrics.
	Metrics Metrics
}
