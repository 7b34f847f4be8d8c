package ring

import "golang.org/x/exp/slices"

import "github.com/bnclabs/goring/api"

// Splice move the range [from, till) of other into this ring, in
// front of at. Nodes are relinked, values are never copied or
// reconstructed, and both counts adjust by the number of nodes moved.
// Fails with api.ErrorInvalidOperand, before any change, when a
// cursor is foreign to its ring or when at lies inside the moved
// range. Cursors into the moved range must be re-obtained from this
// ring. Splicing a range of the same ring relocates it, and splicing
// it onto its own position is a no-op.
func (r *Ring[V]) Splice(at Cursor[V], other *Ring[V], from, till Cursor[V]) error {
	if at.ring != r || other == nil || from.ring != other || till.ring != other {
		return api.ErrorInvalidOperand
	}
	if r == other && (at.node == from.node || at.node == till.node) {
		return nil
	}
	moved := int64(0)
	for nd := from.node; nd != till.node; nd = nd.next {
		if nd == other.sentinel {
			return api.ErrorInvalidOperand
		} else if r == other && nd == at.node {
			return api.ErrorInvalidOperand
		}
		moved++
	}
	if moved == 0 {
		return nil
	}
	r.moverun(at.node, other, from.node, till.node.prev, moved)
	return nil
}

// Merge interleave other's elements into this ring, emptying other.
// Both rings must already be sorted under cmpf. That precondition is
// not checked, unsorted input yields an unspecified ordering though
// the chain stays intact. Equal elements keep their relative order,
// resident elements first. Merging a ring with itself is a no-op.
func (r *Ring[V]) Merge(other *Ring[V], cmpf api.Compare[V]) error {
	if other == nil || cmpf == nil {
		return api.ErrorInvalidOperand
	} else if other == r {
		return nil
	}
	nd := r.sentinel.next
	for other.count > 0 {
		first := other.sentinel.next
		last, moved := first, int64(1)
		if nd == r.sentinel {
			last, moved = other.sentinel.prev, other.count
		} else if cmpf(first.value, nd.value) < 0 {
			for last.next != other.sentinel && cmpf(last.next.value, nd.value) < 0 {
				last, moved = last.next, moved+1
			}
		} else {
			nd = nd.next
			continue
		}
		r.moverun(nd, other, first, last, moved)
	}
	return nil
}

// Sort order elements under cmpf, stable. Values are collected into
// an auxiliary buffer, sorted, and laid back over the existing node
// sequence front to back.
func (r *Ring[V]) Sort(cmpf api.Compare[V]) {
	if r.count < 2 {
		return
	}
	values := make([]V, 0, r.count)
	for nd := r.sentinel.next; nd != r.sentinel; nd = nd.next {
		values = append(values, nd.value)
	}
	slices.SortStableFunc(values, cmpf)
	nd := r.sentinel.next
	for _, value := range values {
		nd.value = value
		nd = nd.next
	}
}

// Unique erase every element equivalent under eqf to its immediate
// predecessor, returning the number erased. Only adjacent pairs are
// compared, full deduplication needs a sorted ring.
func (r *Ring[V]) Unique(eqf api.Equal[V]) int64 {
	erased := int64(0)
	for nd := r.sentinel.next; nd != r.sentinel && nd.next != r.sentinel; {
		if eqf(nd.next.value, nd.value) {
			gone := nd.next
			r.unlink(gone)
			r.putnode(gone)
			erased++
		} else {
			nd = nd.next
		}
	}
	r.n_deletes += erased
	return erased
}

// RemoveIf erase every element satisfying pred, single pass,
// returning the number erased.
func (r *Ring[V]) RemoveIf(pred func(value V) bool) int64 {
	erased := int64(0)
	for nd := r.sentinel.next; nd != r.sentinel; {
		next := nd.next
		if pred(nd.value) {
			r.unlink(nd)
			r.putnode(nd)
			erased++
		}
		nd = next
	}
	r.n_deletes += erased
	return erased
}

// Remove erase every element equivalent to value under eqf, returning
// the number erased.
func (r *Ring[V]) Remove(value V, eqf api.Equal[V]) int64 {
	return r.RemoveIf(func(v V) bool { return eqf(v, value) })
}

// moverun detach the chain segment [first, last] from other and link
// it in front of at, adjusting both counts by moved.
func (r *Ring[V]) moverun(at *node[V], other *Ring[V], first, last *node[V], moved int64) {
	first.prev.next = last.next
	last.next.prev = first.prev
	other.count -= moved
	other.n_spliceout += moved
	first.prev = at.prev
	last.next = at
	at.prev.next = first
	at.prev = last
	r.count += moved
	r.n_splicein += moved
}
