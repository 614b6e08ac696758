// Package fifo implements the remove-oldest eviction policy.
package fifo

import "github.com/wellplayedldl/loadcache/policy"

// fifo orders slots strictly by insertion time. Reads and overwrites never
// reorder the list, so the front is always the oldest-inserted entry.
type fifo struct {
	h policy.Hooks
}

type factory struct{}

// New returns a Factory that constructs per-engine FIFO instances.
func New() policy.Factory { return factory{} }

// New implements policy.Factory by binding engine hooks.
func (factory) New(h policy.Hooks) policy.Policy { return &fifo{h: h} }

// OnInsert appends the new slot; insertion order is the only order.
func (p *fifo) OnInsert(slot int32) { p.h.PushBack(slot) }

// OnHit is a no-op: access does not affect insertion order.
func (p *fifo) OnHit(int32) {}

// OnUpdate is a no-op: overwriting a value keeps the original position.
func (p *fifo) OnUpdate(int32) {}

// Victim is the oldest-inserted slot, i.e. the list front.
func (p *fifo) Victim() int32 { return p.h.Front() }
