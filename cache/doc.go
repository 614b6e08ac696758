// Package cache provides a bounded, capacity-managed associative cache
// with transparent load-on-miss and a pluggable eviction policy
// (least-recently-used by default, remove-oldest as the alternative).
//
// # Design
//
//   - Storage: entries live in a flat arena ([]entry) indexed by a
//     separate-chaining hash table whose bucket count is a prime. Deleted
//     slots are tombstoned onto a LIFO free-list threaded through the
//     bucket-link field and reused before the arena grows, so a stable
//     working set churns no memory.
//
//   - Ordering: an intrusive doubly linked list runs through the same
//     arena via index links and determines the eviction victim. Under LRU
//     every hit splices the entry to the back in O(1); under remove-oldest
//     the list is pure insertion order.
//
//   - Loading: Get on a missing key synchronously invokes the configured
//     Loader, stores the result (evicting exactly one entry first if the
//     cache is full) and returns it. Capacity is never exceeded, not even
//     transiently. Loader errors propagate and leave the key absent.
//
//   - Concurrency: the engine itself is not synchronized. SyncCache wraps
//     one engine behind a single mutex with two strategies for the loader
//     call: ProtectLoader serializes loads under the lock, while
//     UnprotectedLoader (default) releases the lock around the loader and
//     discards duplicate results on re-acquire.
//
//   - Observability: cumulative reads/writes/hits/deletes are exposed as a
//     live Statistics view, and an optional Metrics hook interface
//     receives Hit/Miss/Evict/Size signals (see metrics/prom for a
//     Prometheus adapter).
//
//   - Iteration: iterators and Snapshot walk entries in eviction order.
//     Iterators are invalidated by structural mutation via a version stamp
//     and then report ErrConcurrentModification.
//
// # Basic usage
//
//	c, err := cache.New[string, []byte](cache.Options[string, []byte]{Capacity: 1024})
//	if err != nil { ... }
//	c.Set("a", []byte("1"))
//	v, err := c.Get("a")
//	c.Remove("a")
//
// # Load-on-miss
//
//	c, _ := cache.New[int, string](cache.Options[int, string]{
//	    Capacity: 1024,
//	    Loader:   func(k int) (string, error) { return strconv.Itoa(k), nil },
//	})
//	v, err := c.Get(42) // miss: loads "42", stores it, returns it
//
// # Concurrent use
//
//	engine, _ := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 4096,
//	    Loader:   fetchFromDB,
//	})
//	c := cache.NewSync(engine, cache.UnprotectedLoader)
//	v, err := c.Get("key") // safe from any goroutine
//
// # Statistics
//
//	stats := c.Stats()          // live view, not a copy
//	fmt.Println(stats.HitRate())
package cache
