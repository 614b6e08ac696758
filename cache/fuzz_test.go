package cache

import (
	"errors"
	"strings"
	"testing"
)

// Fuzz basic Set/Get/Add/Remove semantics under arbitrary string inputs.
// Guards against panics and ensures core invariants hold.
// NOTE: key/value lengths are capped to avoid pathological memory usage
// during fuzzing (this does not weaken the invariants we check).
func FuzzCache_SetGetRemove(f *testing.F) {
	// Seed corpus: empty, ASCII, Unicode, long strings.
	f.Add("", "")
	f.Add("a", "1")
	f.Add("b", "2")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		const limit = 1 << 12 // 4096
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		c, err := New(Options[string, string]{Capacity: 16})
		if err != nil {
			t.Fatal(err)
		}

		// Set -> Get must return the same value.
		c.Set(k, v)
		got, err := c.Get(k)
		if err != nil || got != v {
			t.Fatalf("after Set/Get: want %q, got %q err=%v", v, got, err)
		}

		// Add on a resident key must fail and must not overwrite.
		if err := c.Add(k, "other"); !errors.Is(err, ErrDuplicateKey) {
			t.Fatalf("duplicate Add: want ErrDuplicateKey, got %v", err)
		}
		if got2, err := c.Get(k); err != nil || got2 != v {
			t.Fatalf("after duplicate Add: want %q, got %q err=%v", v, got2, err)
		}

		// Remove must delete and report true exactly once.
		if !c.Remove(k) {
			t.Fatalf("Remove must return true")
		}
		if c.Remove(k) {
			t.Fatalf("second Remove must return false")
		}
		if c.Contains(k) {
			t.Fatalf("key must be absent after Remove")
		}

		// The tombstoned slot must be reusable.
		if err := c.Add(k, v); err != nil {
			t.Fatalf("Add after Remove: %v", err)
		}
		if c.Len() != 1 {
			t.Fatalf("Len after reinsert: want 1, got %d", c.Len())
		}
	})
}
