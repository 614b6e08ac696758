package cache

// Interface is the operation surface shared by the bare engine (Cache) and
// the synchronized accessor (SyncCache). Code that does not care which one
// it holds can accept this interface; code that needs iteration over the
// bare engine uses *Cache directly.
//
// Engine methods are single-goroutine only; SyncCache methods are safe for
// concurrent use.
type Interface[K comparable, V any] interface {
	// Get returns the value for k, loading it on miss when a Loader is
	// configured; without one a miss yields ErrKeyNotFound.
	Get(k K) (V, error)

	// Set inserts or overwrites k→v, evicting one entry first when the
	// cache is full and k is new.
	Set(k K, v V)

	// Add inserts k→v only if absent; ErrDuplicateKey otherwise.
	Add(k K, v V) error

	// Remove deletes k if present and reports whether it was resident.
	Remove(k K) bool

	// Contains reports presence without promoting or counting a read.
	Contains(k K) bool

	// Touch promotes k to the most-recent end of the eviction order
	// regardless of the configured behavior.
	Touch(k K) error

	// GetUncached forces a loader invocation for k, storing and returning
	// the fresh value; ErrNoLoader without a configured loader.
	GetUncached(k K) (V, error)

	// Refresh is GetUncached with the value discarded.
	Refresh(k K) error

	// Len returns the number of resident entries.
	Len() int

	// Capacity returns the current entry limit.
	Capacity() int

	// Behavior returns the configured eviction behavior.
	Behavior() Behavior

	// SetCapacity changes the entry limit, synchronously evicting overflow
	// when shrinking below Len; ErrInvalidCapacity for values <= 0.
	SetCapacity(capacity int) error

	// Clear removes all entries.
	Clear()

	// Reset clears the cache and zeroes the statistics counters.
	Reset()

	// Stats returns the live statistics view.
	Stats() Statistics

	// Snapshot returns a point-in-time copy of configuration, statistics
	// and entries in eviction order.
	Snapshot() Snapshot[K, V]

	// Keys returns all keys in eviction order (next victim first).
	Keys() []K

	// Values returns all values in eviction order.
	Values() []V
}

var (
	_ Interface[string, int] = (*Cache[string, int])(nil)
	_ Interface[string, int] = (*SyncCache[string, int])(nil)
)
