// Package lru implements the least-recently-used eviction policy.
package lru

import "github.com/wellplayedldl/loadcache/policy"

// lru is a classic "move-to-back" policy: every access promotes the slot,
// so the front of the order list is always the least recently used entry.
type lru struct {
	h policy.Hooks
}

type factory struct{}

// New returns a Factory that constructs per-engine LRU instances.
func New() policy.Factory { return factory{} }

// New implements policy.Factory by binding engine hooks.
func (factory) New(h policy.Hooks) policy.Policy { return &lru{h: h} }

// OnInsert places the new slot at the most-recent end.
func (p *lru) OnInsert(slot int32) { p.h.PushBack(slot) }

// OnHit promotes the slot: a read counts as recent use.
func (p *lru) OnHit(slot int32) { p.h.MoveToBack(slot) }

// OnUpdate promotes the slot: an overwrite counts as a touch,
// never as a fresh append.
func (p *lru) OnUpdate(slot int32) { p.h.MoveToBack(slot) }

// Victim is the least recently used slot, i.e. the list front.
func (p *lru) Victim() int32 { return p.h.Front() }
