// Package policy defines the contract between the cache engine and its
// pluggable eviction policies. A policy never owns entries; it only
// decides how the engine's eviction-order list reacts to cache events.
package policy

// NoSlot marks the absence of a slot reference.
const NoSlot int32 = -1

// Hooks expose O(1) operations on the engine's eviction-order list.
// Slots are addressed by arena index, not by pointer: the engine stores
// entries in a flat array and threads the list through index fields, so
// links survive array growth.
//
// Concurrency: all hook calls happen on the engine's goroutine (or under
// the accessor lock). Hooks manage only the order list; the engine owns
// the hash index and slot lifetime.
type Hooks interface {
	// PushBack appends the slot at the most-recent end (used on admission).
	PushBack(slot int32)
	// MoveToBack promotes the slot to the most-recent end.
	MoveToBack(slot int32)
	// Front returns the next eviction victim, or NoSlot if the list is empty.
	Front() int32
}

// Policy is a per-engine policy instance bound to that engine's hooks.
//
// Semantics:
//   - OnInsert is called once for every newly admitted slot.
//   - OnHit is called for every successful read of a resident slot.
//   - OnUpdate is called when an existing key's value is overwritten.
//   - Victim returns the slot the engine should evict when over capacity.
type Policy interface {
	OnInsert(slot int32)
	OnHit(slot int32)
	OnUpdate(slot int32)
	Victim() int32
}

// Factory creates policy instances bound to a particular engine's hooks.
type Factory interface {
	New(Hooks) Policy
}
