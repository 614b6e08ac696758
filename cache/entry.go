package cache

// noIndex marks the absence of a slot reference in any of the intrusive
// chains (bucket, free-list, eviction order).
const noIndex int32 = -1

// freeHash marks a tombstoned slot. Resident slots store a 31-bit hash,
// so a negative value never collides with a live entry.
const freeHash int32 = -1

// entry is one slot of the backing arena. The bucket chains, the tombstone
// free-list and the eviction-order list are all threaded through slot
// indices rather than pointers, so growing the arena never invalidates
// links and a "touch" is a constant-time index splice.
type entry[K comparable, V any] struct {
	key   K
	value V

	// 31-bit key hash, or freeHash while the slot is tombstoned.
	hash int32

	// Next slot in this slot's bucket chain. While the slot is tombstoned
	// the same field threads the free-list instead; the two uses never
	// overlap because a slot is in exactly one state at a time.
	nextInBucket int32

	// Eviction-order links: the list front is the next eviction victim,
	// the back is the most recently inserted (or, under LRU, used) entry.
	prevInOrder int32
	nextInOrder int32
}
