package cache

import (
	"strconv"
	"testing"
)

// collidingComparer forces every key into one bucket so chain handling is
// exercised deterministically.
type collidingComparer struct{}

func (collidingComparer) Hash(string) uint64     { return 42 }
func (collidingComparer) Equal(a, b string) bool { return a == b }

func TestStore_TombstoneReuse(t *testing.T) {
	t.Parallel()

	c := mustNew(t, Options[string, int]{Capacity: 8})
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	used := c.store.usedCount
	if !c.Remove("b") {
		t.Fatal("Remove b")
	}
	if c.store.deletedCount != 1 || c.store.deletedHead == noIndex {
		t.Fatalf("tombstone bookkeeping: deletedCount=%d head=%d",
			c.store.deletedCount, c.store.deletedHead)
	}

	// The next insert must take the tombstone, not fresh arena space.
	freed := c.store.deletedHead
	c.Set("d", 4)
	if c.store.usedCount != used {
		t.Fatalf("insert must reuse the tombstone: usedCount %d -> %d",
			used, c.store.usedCount)
	}
	if c.store.deletedCount != 0 || c.store.deletedHead != noIndex {
		t.Fatal("free-list must be empty after reuse")
	}
	if got := c.store.findIndex("d"); got != freed {
		t.Fatalf("d must occupy the freed slot %d, got %d", freed, got)
	}
}

// Tombstones are recycled LIFO.
func TestStore_TombstoneLIFO(t *testing.T) {
	t.Parallel()

	c := mustNew(t, Options[string, int]{Capacity: 8})
	for _, k := range []string{"a", "b", "c", "d"} {
		c.Set(k, 0)
	}
	idxB := c.store.findIndex("b")
	idxC := c.store.findIndex("c")
	c.Remove("b")
	c.Remove("c")

	c.Set("x", 1)
	if got := c.store.findIndex("x"); got != idxC {
		t.Fatalf("x must take the most recently freed slot %d, got %d", idxC, got)
	}
	c.Set("y", 2)
	if got := c.store.findIndex("y"); got != idxB {
		t.Fatalf("y must take the earlier freed slot %d, got %d", idxB, got)
	}
}

// Growth doubles toward capacity and preserves every resident entry and
// slot index.
func TestStore_GrowthPreservesEntries(t *testing.T) {
	t.Parallel()

	const capacity = 100
	c := mustNew(t, Options[int, string]{Capacity: capacity})
	if len(c.store.items) != 0 {
		t.Fatal("arena must be allocated lazily")
	}

	idx := make(map[int]int32)
	for i := 0; i < capacity; i++ {
		c.Set(i, strconv.Itoa(i))
		idx[i] = c.store.findIndex(i)
	}
	if len(c.store.items) != capacity {
		t.Fatalf("arena must be capped at capacity, got %d", len(c.store.items))
	}
	for i := 0; i < capacity; i++ {
		if got := c.store.findIndex(i); got != idx[i] {
			t.Fatalf("growth moved slot of %d: %d -> %d", i, idx[i], got)
		}
		if v, err := c.Get(i); err != nil || v != strconv.Itoa(i) {
			t.Fatalf("entry %d lost across growth: %q err=%v", i, v, err)
		}
	}
}

func TestStore_EnsureCapacityPreallocates(t *testing.T) {
	t.Parallel()

	c := mustNew(t, Options[int, int]{Capacity: 64, EnsureCapacity: true})
	if len(c.store.items) != 64 {
		t.Fatalf("EnsureCapacity must preallocate the arena, got %d slots", len(c.store.items))
	}
	if len(c.store.buckets) < 64 {
		t.Fatalf("bucket table too small: %d", len(c.store.buckets))
	}
}

// All keys hash to one bucket: find, insert and remove must still work by
// walking and splicing the chain.
func TestStore_CollisionChains(t *testing.T) {
	t.Parallel()

	c := mustNew(t, Options[string, int]{Capacity: 16, Comparer: collidingComparer{}})
	keys := []string{"a", "b", "c", "d", "e"}
	for i, k := range keys {
		c.Set(k, i)
	}
	for i, k := range keys {
		if v, err := c.Get(k); err != nil || v != i {
			t.Fatalf("Get(%q): got %v err=%v", k, v, err)
		}
	}

	// Remove the middle, the head and the tail of the chain.
	for _, k := range []string{"c", "e", "a"} {
		if !c.Remove(k) {
			t.Fatalf("Remove(%q)", k)
		}
	}
	for _, k := range []string{"b", "d"} {
		if v, err := c.Get(k); err != nil {
			t.Fatalf("survivor %q lost: %v err=%v", k, v, err)
		}
	}
	for _, k := range []string{"a", "c", "e"} {
		if c.Contains(k) {
			t.Fatalf("%q must be gone", k)
		}
	}
}

// Shrinking compacts: tombstones are dropped, survivors renumbered
// contiguously, eviction order preserved.
func TestStore_ShrinkCompacts(t *testing.T) {
	t.Parallel()

	c := mustNew(t, Options[int, int]{Capacity: 32, Behavior: EvictOldest})
	for i := 0; i < 20; i++ {
		c.Set(i, i)
	}
	for i := 0; i < 20; i += 2 {
		c.Remove(i) // leave 10 odd keys and 10 tombstones
	}

	if err := c.SetCapacity(10); err != nil {
		t.Fatalf("SetCapacity: %v", err)
	}
	if len(c.store.items) != 10 {
		t.Fatalf("compaction must shrink the arena to 10, got %d", len(c.store.items))
	}
	if c.store.deletedCount != 0 || c.store.deletedHead != noIndex {
		t.Fatal("compaction must drop all tombstones")
	}
	if c.store.usedCount != 10 {
		t.Fatalf("survivors must be renumbered contiguously, usedCount=%d", c.store.usedCount)
	}

	keys := c.Keys()
	for i, want := 0, 1; i < len(keys); i, want = i+1, want+2 {
		if keys[i] != want {
			t.Fatalf("order after compaction: want odd sequence, got %v", keys)
		}
	}
	for i := 1; i < 20; i += 2 {
		if v, err := c.Get(i); err != nil || v != i {
			t.Fatalf("survivor %d lost after compaction: %v err=%v", i, v, err)
		}
	}
}
