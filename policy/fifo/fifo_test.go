package fifo

import (
	"testing"

	"github.com/wellplayedldl/loadcache/policy"
)

type mockHooks struct {
	pushBackCnt   int
	moveToBackCnt int

	lastPush int32
	frontVal int32
}

func (h *mockHooks) PushBack(slot int32) { h.pushBackCnt++; h.lastPush = slot }
func (h *mockHooks) MoveToBack(int32)    { h.moveToBackCnt++ }
func (h *mockHooks) Front() int32        { return h.frontVal }

// OnInsert must append the slot; insertion order is the only order.
func TestFIFO_OnInsert_PushBack(t *testing.T) {
	t.Parallel()

	h := &mockHooks{}
	p := New().New(h)

	p.OnInsert(4)
	if h.pushBackCnt != 1 || h.lastPush != 4 {
		t.Fatalf("OnInsert must call PushBack exactly once with the slot")
	}
}

// Reads and overwrites must never reorder the list.
func TestFIFO_HitAndUpdate_NoOp(t *testing.T) {
	t.Parallel()

	h := &mockHooks{}
	p := New().New(h)

	p.OnHit(1)
	p.OnUpdate(2)
	if h.pushBackCnt != 0 || h.moveToBackCnt != 0 {
		t.Fatalf("OnHit/OnUpdate must not touch the list")
	}
}

// Victim is the oldest-inserted slot, the list front.
func TestFIFO_Victim_IsFront(t *testing.T) {
	t.Parallel()

	h := &mockHooks{frontVal: 9}
	p := New().New(h)

	if got := p.Victim(); got != 9 {
		t.Fatalf("Victim: want 9, got %d", got)
	}

	h.frontVal = policy.NoSlot
	if got := p.Victim(); got != policy.NoSlot {
		t.Fatalf("Victim on empty list: want NoSlot, got %d", got)
	}
}
