package ring

// Cursor is a stable position handle into a ring, pairing the owning
// ring with one node. The zero Cursor belongs to no ring. Cursors
// survive unrelated mutation, a cursor whose own element is erased
// must not be used again.
type Cursor[V any] struct {
	ring *Ring[V]
	node *node[V]
}

// Value read the element under the cursor. Panics at End().
func (c Cursor[V]) Value() V {
	if c.node == nil || c.node == c.ring.sentinel {
		panic("Value(): cursor at end")
	}
	return c.node.value
}

// SetValue overwrite the element under the cursor. Panics at End().
func (c Cursor[V]) SetValue(value V) {
	if c.node == nil || c.node == c.ring.sentinel {
		panic("SetValue(): cursor at end")
	}
	c.node.value = value
}

// Next return cursor to the following position, leaving the receiver
// alone. The chain is circular, next of End() is Begin().
func (c Cursor[V]) Next() Cursor[V] {
	if c.ring == nil {
		return c
	}
	return Cursor[V]{ring: c.ring, node: c.node.next}
}

// Prev return cursor to the preceding position, leaving the receiver
// alone. The chain is circular, prev of Begin() is End().
func (c Cursor[V]) Prev() Cursor[V] {
	if c.ring == nil {
		return c
	}
	return Cursor[V]{ring: c.ring, node: c.node.prev}
}

// Advance step n positions forward, or backward when n is negative,
// clamping at End() if the walk runs off either side of the range.
func (c Cursor[V]) Advance(n int) Cursor[V] {
	if c.ring == nil {
		return c
	}
	for ; n > 0; n-- {
		if c.node == c.ring.sentinel {
			return c
		}
		c.node = c.node.next
	}
	for ; n < 0; n++ {
		if c.node == c.ring.sentinel {
			return c
		}
		c.node = c.node.prev
	}
	return c
}

// Equal report whether both cursors address the same position of the
// same ring.
func (c Cursor[V]) Equal(other Cursor[V]) bool {
	return c.ring == other.ring && c.node == other.node
}

// IsEnd report whether the cursor sits on the sentinel, or belongs to
// no ring.
func (c Cursor[V]) IsEnd() bool {
	return c.ring == nil || c.node == c.ring.sentinel
}
