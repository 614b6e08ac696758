package cache

// Eviction-order list: an intrusive doubly linked list threaded through
// the slot arena via prevInOrder/nextInOrder indices. The front of the
// list is the next eviction victim; the back is the most recent entry.
// The list does not own slot lifetime — removeAt and the engine do.

// pushBack appends a detached slot at the most-recent end.
func (s *store[K, V]) pushBack(idx int32) {
	e := &s.items[idx]
	e.prevInOrder, e.nextInOrder = s.last, noIndex
	if s.last != noIndex {
		s.items[s.last].nextInOrder = idx
	} else {
		s.first = idx
	}
	s.last = idx
}

// moveToBack splices the slot out and re-appends it at the most-recent
// end. Reports whether the slot actually moved (a no-op when it is
// already last). O(1).
func (s *store[K, V]) moveToBack(idx int32) bool {
	if s.last == idx {
		return false
	}
	s.unlink(idx)
	s.pushBack(idx)
	return true
}

// unlink splices the slot out of the order list, bridging its neighbors
// and fixing up the endpoints.
func (s *store[K, V]) unlink(idx int32) {
	e := &s.items[idx]
	if e.prevInOrder != noIndex {
		s.items[e.prevInOrder].nextInOrder = e.nextInOrder
	} else if s.first == idx {
		s.first = e.nextInOrder
	}
	if e.nextInOrder != noIndex {
		s.items[e.nextInOrder].prevInOrder = e.prevInOrder
	} else if s.last == idx {
		s.last = e.prevInOrder
	}
	e.prevInOrder, e.nextInOrder = noIndex, noIndex
}
