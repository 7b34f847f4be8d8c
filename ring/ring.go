// Package ring implement a circular doubly-linked sequence around a
// sentinel node, the element store underneath goring containers.
// Cursors into the ring stay valid across every mutation except the
// removal of their own element, relinking algorithms like Splice and
// Merge move elements without touching them.
package ring

import "fmt"

import "github.com/bnclabs/golog"
import s "github.com/bnclabs/gosettings"
import humanize "github.com/dustin/go-humanize"

import "github.com/bnclabs/goring/api"

// node is one element in the ring. The sentinel node carries no value
// and closes the cycle on both sides.
type node[V any] struct {
	prev  *node[V]
	next  *node[V]
	value V
}

// Ring manage a circular doubly-linked sequence of value nodes around
// one sentinel. The ring owns the lifetime and order of every
// element, indexes built over it only hold cursors.
type Ring[V any] struct {
	name      string
	sentinel  *node[V]
	count     int64
	freepool  []*node[V]
	setts     s.Settings
	logprefix string
	// statistics
	n_inserts   int64
	n_deletes   int64
	n_splicein  int64
	n_spliceout int64
	n_recycles  int64
}

// NewRing create an empty ring. Settings: "nodepool.size", see
// Defaultsettings.
func NewRing[V any](name string, setts s.Settings) *Ring[V] {
	r := &Ring[V]{name: name}
	r.logprefix = fmt.Sprintf("RING [%v]", name)
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	r.setts = setts
	if poolsize := setts.Int64("nodepool.size"); poolsize > 0 {
		r.freepool = make([]*node[V], 0, poolsize)
	}
	r.sentinel = &node[V]{}
	r.sentinel.prev, r.sentinel.next = r.sentinel, r.sentinel
	log.Debugf("%v started ...\n", r.logprefix)
	return r
}

// ID return name supplied while creating this instance.
func (r *Ring[V]) ID() string {
	return r.name
}

// Count return number of elements in the ring, O(1).
func (r *Ring[V]) Count() int64 {
	return r.count
}

// IsEmpty return whether the ring has no elements.
func (r *Ring[V]) IsEmpty() bool {
	return r.count == 0
}

// Begin return cursor to the first element, same as End() when empty.
func (r *Ring[V]) Begin() Cursor[V] {
	return Cursor[V]{ring: r, node: r.sentinel.next}
}

// End return cursor to the sentinel.
func (r *Ring[V]) End() Cursor[V] {
	return Cursor[V]{ring: r, node: r.sentinel}
}

// Owns report whether the cursor was issued by this ring.
func (r *Ring[V]) Owns(c Cursor[V]) bool {
	return c.ring == r
}

// PushFront prepend value, returning its cursor.
func (r *Ring[V]) PushFront(value V) Cursor[V] {
	nd := r.getnode(value)
	r.linkbefore(r.sentinel.next, nd)
	r.n_inserts++
	return Cursor[V]{ring: r, node: nd}
}

// PushBack append value, returning its cursor.
func (r *Ring[V]) PushBack(value V) Cursor[V] {
	nd := r.getnode(value)
	r.linkbefore(r.sentinel, nd)
	r.n_inserts++
	return Cursor[V]{ring: r, node: nd}
}

// InsertBefore splice values, in order, immediately before at,
// returning cursor to the first inserted element, at itself when
// values is empty. Fails with api.ErrorInvalidOperand, before
// touching the chain, if at does not belong to this ring.
func (r *Ring[V]) InsertBefore(at Cursor[V], values ...V) (Cursor[V], error) {
	if at.ring != r {
		return r.End(), api.ErrorInvalidOperand
	}
	first := at.node
	for i := len(values) - 1; i >= 0; i-- {
		nd := r.getnode(values[i])
		r.linkbefore(first, nd)
		first = nd
		r.n_inserts++
	}
	return Cursor[V]{ring: r, node: first}, nil
}

// Erase remove the element at the cursor, returning cursor to its
// successor. Erasing End() or a foreign cursor fails with
// api.ErrorInvalidOperand before any change.
func (r *Ring[V]) Erase(at Cursor[V]) (Cursor[V], error) {
	if at.ring != r || at.node == r.sentinel {
		return r.End(), api.ErrorInvalidOperand
	}
	next := r.unlink(at.node)
	r.putnode(at.node)
	r.n_deletes++
	return Cursor[V]{ring: r, node: next}, nil
}

// EraseRange remove elements in [from, till), returning cursor to the
// element after the removed range. Fails with api.ErrorInvalidOperand
// before any change when either cursor is foreign. A till cursor not
// ahead of from erases through the end of the ring.
func (r *Ring[V]) EraseRange(from, till Cursor[V]) (Cursor[V], error) {
	if from.ring != r || till.ring != r {
		return r.End(), api.ErrorInvalidOperand
	}
	for nd := from.node; nd != till.node && nd != r.sentinel; {
		next := r.unlink(nd)
		r.putnode(nd)
		r.n_deletes++
		nd = next
	}
	return till, nil
}

// Clear unlink every element. Cursors into the old chain become
// invalid.
func (r *Ring[V]) Clear() {
	r.n_deletes += r.count
	for nd := r.sentinel.next; nd != r.sentinel; {
		next := nd.next
		r.putnode(nd)
		nd = next
	}
	r.sentinel.prev, r.sentinel.next = r.sentinel, r.sentinel
	r.count = 0
}

// Assign replace the entire contents with values, in order.
func (r *Ring[V]) Assign(values []V) {
	r.Clear()
	for _, value := range values {
		r.linkbefore(r.sentinel, r.getnode(value))
		r.n_inserts++
	}
}

// Each walk elements front to back applying callb, stop when callb
// returns false.
func (r *Ring[V]) Each(callb func(value V) bool) {
	for nd := r.sentinel.next; nd != r.sentinel; nd = nd.next {
		if callb(nd.value) == false {
			return
		}
	}
}

// Clone create a fresh ring copying every value, under a new name.
func (r *Ring[V]) Clone(name string) *Ring[V] {
	newr := NewRing[V](name, r.setts)
	for nd := r.sentinel.next; nd != r.sentinel; nd = nd.next {
		newr.linkbefore(newr.sentinel, newr.getnode(nd.value))
		newr.n_inserts++
	}
	return newr
}

// Destroy release the ring. Instance shall not be used after this
// call.
func (r *Ring[V]) Destroy() {
	r.Clear()
	r.freepool = nil
	log.Debugf("%v destroyed\n", r.logprefix)
}

// Stats return ring counters.
func (r *Ring[V]) Stats() map[string]interface{} {
	return map[string]interface{}{
		"n_count":     r.count,
		"n_inserts":   r.n_inserts,
		"n_deletes":   r.n_deletes,
		"n_splicein":  r.n_splicein,
		"n_spliceout": r.n_spliceout,
		"n_recycles":  r.n_recycles,
		"freepool":    int64(len(r.freepool)),
	}
}

// Log vital statistics.
func (r *Ring[V]) Log(what string, humanfmt bool) {
	stats := r.Stats()
	if humanfmt {
		fmsg := "%v count %v, inserts %v deletes %v recycles %v\n"
		log.Infof(fmsg, r.logprefix,
			humanize.Comma(r.count),
			humanize.Comma(r.n_inserts), humanize.Comma(r.n_deletes),
			humanize.Comma(r.n_recycles))
		return
	}
	log.Infof("%v stats %v\n", r.logprefix, stats)
}

// Validate walk the chain both ways crosschecking against Count,
// panic on any inconsistency.
func (r *Ring[V]) Validate() {
	fwd, bwd := int64(0), int64(0)
	for nd := r.sentinel.next; nd != r.sentinel; nd = nd.next {
		if nd.next.prev != nd || nd.prev.next != nd {
			panic(fmt.Errorf("%v validate(): broken links at %v", r.logprefix, fwd))
		}
		fwd++
	}
	for nd := r.sentinel.prev; nd != r.sentinel; nd = nd.prev {
		bwd++
	}
	if fwd != r.count {
		panic(fmt.Errorf("%v validate(): forward walk %v, count %v", r.logprefix, fwd, r.count))
	} else if bwd != r.count {
		panic(fmt.Errorf("%v validate(): backward walk %v, count %v", r.logprefix, bwd, r.count))
	}
	r.validatestats()
}

func (r *Ring[V]) validatestats() {
	n := r.n_inserts - r.n_deletes + r.n_splicein - r.n_spliceout
	if r.count != n {
		fmsg := "%v validate(): count %v, inserts-deletes+splices %v"
		panic(fmt.Errorf(fmsg, r.logprefix, r.count, n))
	}
}

// getnode recycle a node from the freepool, else allocate fresh.
func (r *Ring[V]) getnode(value V) *node[V] {
	if n := len(r.freepool); n > 0 {
		nd := r.freepool[n-1]
		r.freepool = r.freepool[:n-1]
		nd.value = value
		r.n_recycles++
		return nd
	}
	return &node[V]{value: value}
}

// putnode clear the node and keep it aside for recycling, within the
// configured pool size.
func (r *Ring[V]) putnode(nd *node[V]) {
	var zero V
	nd.prev, nd.next, nd.value = nil, nil, zero
	if len(r.freepool) < cap(r.freepool) {
		r.freepool = append(r.freepool, nd)
	}
}

// linkbefore wire nd into the chain immediately before at.
func (r *Ring[V]) linkbefore(at, nd *node[V]) {
	nd.prev, nd.next = at.prev, at
	at.prev.next = nd
	at.prev = nd
	r.count++
}

// unlink remove nd from the chain, returning its successor.
func (r *Ring[V]) unlink(nd *node[V]) *node[V] {
	next := nd.next
	nd.prev.next = nd.next
	nd.next.prev = nd.prev
	r.count--
	return next
}
