package cache

import (
	"github.com/wellplayedldl/loadcache/internal/util"
)

// minimumSize is the initial arena allocation when EnsureCapacity is off.
const minimumSize = 4

// store is the slot store: a flat arena of entries plus a separate-chaining
// hash index, with tombstone recycling. It owns slot identity and the hash
// index; the eviction-order list threaded through the same arena lives in
// order.go. The store performs no eviction itself — the engine always
// makes room before asking for a new slot.
type store[K comparable, V any] struct {
	comparer KeyComparer[K]

	items   []entry[K, V]
	buckets []int32 // bucket chain heads; noIndex = empty bucket

	usedCount    int   // slots ever handed out, including tombstones
	deletedCount int   // tombstoned slots awaiting reuse
	deletedHead  int32 // LIFO free-list of tombstones

	first, last int32 // eviction-order list endpoints

	capacity    int
	preallocate bool // allocate the full arena up front
}

// count is the number of resident entries.
func (s *store[K, V]) count() int { return s.usedCount - s.deletedCount }

// hashOf computes the stored 31-bit hash of a key. The top bit is cleared
// so that freeHash stays distinguishable from every live hash.
func (s *store[K, V]) hashOf(key K) int32 {
	return int32(s.comparer.Hash(key) & 0x7FFFFFFF)
}

// findIndex locates a key's slot, or noIndex when absent. Amortized O(1):
// one bucket probe plus the chain walk.
func (s *store[K, V]) findIndex(key K) int32 {
	if len(s.buckets) == 0 {
		return noIndex
	}
	h := s.hashOf(key)
	for i := s.buckets[int(h)%len(s.buckets)]; i != noIndex; i = s.items[i].nextInBucket {
		if s.items[i].hash == h && s.comparer.Equal(s.items[i].key, key) {
			return i
		}
	}
	return noIndex
}

// insertNew claims a slot for a key the caller has verified to be absent,
// preferring a tombstone (LIFO) over fresh arena space. The arena grows
// geometrically toward capacity and only when no tombstone remains.
// The slot is handed back unlinked from the order list.
func (s *store[K, V]) insertNew(key K, value V) int32 {
	if s.items == nil {
		s.allocate(s.initialSize())
	}

	var idx int32
	if s.deletedHead != noIndex {
		idx = s.deletedHead
		s.deletedHead = s.items[idx].nextInBucket
		s.deletedCount--
	} else {
		if s.usedCount == len(s.items) {
			s.grow()
		}
		idx = int32(s.usedCount)
		s.usedCount++
	}

	e := &s.items[idx]
	h := s.hashOf(key)
	b := int(h) % len(s.buckets)
	e.key, e.value, e.hash = key, value, h
	e.nextInBucket = s.buckets[b]
	e.prevInOrder, e.nextInOrder = noIndex, noIndex
	s.buckets[b] = idx
	return idx
}

// removeAt tombstones a resident slot: unlinks it from its bucket chain
// (tracking the predecessor, since chains are singly linked), detaches it
// from the order list, clears key and value to release references, and
// pushes it onto the free-list.
func (s *store[K, V]) removeAt(idx int32) {
	e := &s.items[idx]
	b := int(e.hash) % len(s.buckets)
	if s.buckets[b] == idx {
		s.buckets[b] = e.nextInBucket
	} else {
		p := s.buckets[b]
		for s.items[p].nextInBucket != idx {
			p = s.items[p].nextInBucket
		}
		s.items[p].nextInBucket = e.nextInBucket
	}

	s.unlink(idx)

	var zeroK K
	var zeroV V
	e.key, e.value = zeroK, zeroV
	e.hash = freeHash
	e.nextInBucket = s.deletedHead
	s.deletedHead = idx
	s.deletedCount++
}

// initialSize picks the first arena allocation.
func (s *store[K, V]) initialSize() int {
	if s.preallocate || s.capacity < minimumSize {
		return s.capacity
	}
	return minimumSize
}

// allocate builds a fresh, empty arena of n slots with a matching
// prime-sized bucket table.
func (s *store[K, V]) allocate(n int) {
	s.items = make([]entry[K, V], n)
	s.usedCount, s.deletedCount = 0, 0
	s.deletedHead, s.first, s.last = noIndex, noIndex, noIndex
	s.rehash(n)
}

// grow doubles the arena toward capacity, preserving slot indices so that
// every index-based link (buckets, free-list, order) stays valid.
func (s *store[K, V]) grow() {
	newSize := len(s.items) * 2
	if newSize > s.capacity {
		newSize = s.capacity
	}
	if newSize <= len(s.items) {
		panic("loadcache: slot store full with no tombstones to reuse")
	}
	items := make([]entry[K, V], newSize)
	copy(items, s.items)
	s.items = items
	s.rehash(newSize)
}

// growTo enlarges the arena to exactly n slots (used when EnsureCapacity
// preallocates after a capacity increase). Indices are preserved.
func (s *store[K, V]) growTo(n int) {
	if s.items == nil {
		s.allocate(n)
		return
	}
	if n <= len(s.items) {
		return
	}
	items := make([]entry[K, V], n)
	copy(items, s.items)
	s.items = items
	s.rehash(n)
}

// rehash rebuilds the bucket table at a prime size >= sizeHint and relinks
// every resident slot. Tombstones are skipped, which leaves their
// free-list links (stored in nextInBucket) untouched.
func (s *store[K, V]) rehash(sizeHint int) {
	if sizeHint < 1 {
		sizeHint = 1
	}
	s.buckets = make([]int32, util.PrimeAtLeast(sizeHint))
	for i := range s.buckets {
		s.buckets[i] = noIndex
	}
	for i := 0; i < s.usedCount; i++ {
		if s.items[i].hash == freeHash {
			continue
		}
		b := int(s.items[i].hash) % len(s.buckets)
		s.items[i].nextInBucket = s.buckets[b]
		s.buckets[b] = int32(i)
	}
}

// compact rebuilds the arena at the given size with resident entries
// renumbered contiguously. Shrinking cannot preserve indices the way grow
// does — tombstones have no identity worth keeping — so the walk follows
// the order list, which also keeps the eviction order intact.
func (s *store[K, V]) compact(size int) {
	items := make([]entry[K, V], size)
	n := int32(0)
	for i := s.first; i != noIndex; i = s.items[i].nextInOrder {
		items[n] = s.items[i]
		items[n].prevInOrder = n - 1
		items[n].nextInOrder = n + 1
		n++
	}
	if n > 0 {
		items[n-1].nextInOrder = noIndex
		s.first, s.last = 0, n-1
	} else {
		s.first, s.last = noIndex, noIndex
	}
	s.items = items
	s.usedCount = int(n)
	s.deletedCount = 0
	s.deletedHead = noIndex
	s.rehash(size)
}

// clearAll drops the backing arrays in O(1); the next insertion
// reallocates lazily.
func (s *store[K, V]) clearAll() {
	s.items, s.buckets = nil, nil
	s.usedCount, s.deletedCount = 0, 0
	s.deletedHead, s.first, s.last = noIndex, noIndex, noIndex
}
