package cache

import (
	"fmt"
	"sync/atomic"
)

// counters holds the cumulative usage statistics of one engine. Atomic so
// that the live Statistics view stays readable while a SyncCache mutates
// the engine under its lock.
type counters struct {
	reads   atomic.Uint64
	writes  atomic.Uint64
	hits    atomic.Uint64
	deletes atomic.Uint64
}

func (c *counters) reset() {
	c.reads.Store(0)
	c.writes.Store(0)
	c.hits.Store(0)
	c.deletes.Store(0)
}

// Statistics is a live view of a cache's counters: it references the
// engine rather than copying, so successive reads observe progress.
// Counters are monotonic and only reset by Reset.
type Statistics struct {
	c *counters
}

// Reads is the total number of read attempts (hits and misses).
func (s Statistics) Reads() uint64 { return s.c.reads.Load() }

// Writes is the total number of successful inserts and overwrites,
// including loader-driven inserts.
func (s Statistics) Writes() uint64 { return s.c.writes.Load() }

// Hits is the number of reads satisfied by a resident entry.
func (s Statistics) Hits() uint64 { return s.c.hits.Load() }

// Deletes is the number of explicit removals plus evictions.
func (s Statistics) Deletes() uint64 { return s.c.deletes.Load() }

// HitRate is Hits/Reads, or 0 when nothing has been read yet.
func (s Statistics) HitRate() float64 {
	reads := s.c.reads.Load()
	if reads == 0 {
		return 0
	}
	return float64(s.c.hits.Load()) / float64(reads)
}

// Reset zeroes all counters.
func (s Statistics) Reset() { s.c.reset() }

// String formats the counters for logs and monitoring output.
func (s Statistics) String() string {
	return fmt.Sprintf("reads=%d writes=%d hits=%d deletes=%d hit-rate=%.2f%%",
		s.Reads(), s.Writes(), s.Hits(), s.Deletes(), s.HitRate()*100)
}
