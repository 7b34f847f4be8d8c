// Package llrb implement an ordered, indexed collection built from
// two halves. Entries live as {key, value} pairs on a circular
// doubly-linked store, kept in key order, while a left-leaning
// red-black tree over arena-backed nodes indexes store positions by
// key. Lookups descend the tree and land on store cursors, iteration
// never touches the tree. The store and the index stay consistent
// across every mutation, cursors survive tree rebalancing.
//
// Trees are single-threaded, access from concurrent goroutines needs
// external coordination.
package llrb

import "fmt"

import "github.com/bnclabs/golog"
import s "github.com/bnclabs/gosettings"
import humanize "github.com/dustin/go-humanize"
import "golang.org/x/exp/constraints"

import "github.com/bnclabs/goring/api"
import "github.com/bnclabs/goring/lib"
import "github.com/bnclabs/goring/malloc"
import "github.com/bnclabs/goring/ring"

// Tree is an ordered collection of {key, value} entries under a
// caller-supplied comparator. With the "multikey" setting equivalent
// keys may repeat, a new entry always lands after its equals.
type Tree[K, V any] struct {
	name      string
	cmpf      api.Compare[K]
	store     *ring.Ring[api.Pair[K, V]]
	nodes     *malloc.Arena[treenode[K, V]]
	root      malloc.Ref
	multikey  bool
	setts     s.Settings
	logprefix string
	// statistics
	n_inserts     int64
	n_updates     int64
	n_deletes     int64
	n_clones      int64
	h_upsertdepth *lib.HistogramInt64
}

// NewTree create an empty tree ordered under cmpf.
// Settings: "multikey", "arena.*", "ring.*", see Defaultsettings.
func NewTree[K, V any](name string, cmpf api.Compare[K], setts s.Settings) *Tree[K, V] {
	t := &Tree[K, V]{name: name, cmpf: cmpf, root: malloc.Nilref}
	t.logprefix = fmt.Sprintf("LLRB [%v]", name)
	if cmpf == nil {
		panic(fmt.Errorf("%v missing comparator", t.logprefix))
	}
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	t.setts = setts
	t.multikey = setts.Bool("multikey")
	t.store = ring.NewRing[api.Pair[K, V]](name, setts.Section("ring.").Trim("ring."))
	t.nodes = malloc.NewArena[treenode[K, V]](name, setts.Section("arena.").Trim("arena."))
	t.h_upsertdepth = lib.NewhistorgramInt64(1, 256, 1)
	log.Infof("%v started ...\n", t.logprefix)
	t.logarenasettings()
	return t
}

// NewTreeOrdered create an empty tree for keys already ordered by
// the language, strings and numbers.
func NewTreeOrdered[K constraints.Ordered, V any](name string, setts s.Settings) *Tree[K, V] {
	return NewTree[K, V](name, api.Cmpordered[K], setts)
}

// NewTreeFrom create a tree holding pairs, inserted in order.
func NewTreeFrom[K, V any](
	name string, cmpf api.Compare[K], setts s.Settings,
	pairs ...api.Pair[K, V]) *Tree[K, V] {

	t := NewTree[K, V](name, cmpf, setts)
	t.InsertMany(pairs...)
	return t
}

// ID return name supplied while creating this instance.
func (t *Tree[K, V]) ID() string {
	return t.name
}

// Count return number of entries, O(1), the store keeps it.
func (t *Tree[K, V]) Count() int64 {
	return t.store.Count()
}

// IsEmpty return whether the tree has no entries.
func (t *Tree[K, V]) IsEmpty() bool {
	return t.store.IsEmpty()
}

// Begin return cursor to the least entry, same as End() when empty.
func (t *Tree[K, V]) Begin() Cursor[K, V] {
	return Cursor[K, V]{tree: t, cur: t.store.Begin()}
}

// End return cursor one past the greatest entry.
func (t *Tree[K, V]) End() Cursor[K, V] {
	return Cursor[K, V]{tree: t, cur: t.store.End()}
}

// Insert add one {key, value} entry, returning its cursor. On a
// unique tree a present key is left alone and its cursor returns
// with false.
func (t *Tree[K, V]) Insert(key K, value V) (Cursor[K, V], bool) {
	if t.multikey == false {
		if ref := t.findref(key); ref != malloc.Nilref {
			return t.cursorat(ref), false
		}
	}
	return t.insertentry(key, value), true
}

// InsertMany add pairs in order, returning the number inserted.
func (t *Tree[K, V]) InsertMany(pairs ...api.Pair[K, V]) int64 {
	inserted := int64(0)
	for _, pair := range pairs {
		if _, ok := t.Insert(pair.Key, pair.Value); ok {
			inserted++
		}
	}
	return inserted
}

// Set upsert value for key, returning the previous value when the
// key was already present. The stored key is kept on update. Panics
// on a multikey tree where one winner is not defined, use Insert.
func (t *Tree[K, V]) Set(key K, value V) (old V, updated bool) {
	if t.multikey {
		panic(fmt.Errorf("%v Set(): multikey tree, use Insert", t.logprefix))
	}
	if ref := t.findref(key); ref != malloc.Nilref {
		ndp := t.nodes.Ptr(ref)
		pair := ndp.cur.Value()
		old, updated = pair.Value, true
		ndp.cur.SetValue(api.Pair[K, V]{Key: pair.Key, Value: value})
		t.n_updates++
		return old, updated
	}
	t.insertentry(key, value)
	return old, false
}

// Get return the value mapped to key, the first among equals on a
// multikey tree.
func (t *Tree[K, V]) Get(key K) (value V, ok bool) {
	if ref := t.findref(key); ref != malloc.Nilref {
		return t.nodes.Ptr(ref).cur.Value().Value, true
	}
	return value, false
}

// Has return whether key is present.
func (t *Tree[K, V]) Has(key K) bool {
	return t.findref(key) != malloc.Nilref
}

// Find return cursor to the first entry equivalent to key, End()
// when absent.
func (t *Tree[K, V]) Find(key K) Cursor[K, V] {
	if ref := t.findref(key); ref != malloc.Nilref {
		return t.cursorat(ref)
	}
	return t.End()
}

// LowerBound return cursor to the first entry whose key does not
// order before key, End() when every entry does.
func (t *Tree[K, V]) LowerBound(key K) Cursor[K, V] {
	if ref := t.lowerboundref(key); ref != malloc.Nilref {
		return t.cursorat(ref)
	}
	return t.End()
}

// UpperBound return cursor to the first entry whose key orders
// strictly after key, End() when none does.
func (t *Tree[K, V]) UpperBound(key K) Cursor[K, V] {
	if ref := t.upperboundref(key); ref != malloc.Nilref {
		return t.cursorat(ref)
	}
	return t.End()
}

// EqualRange return the [lower, upper) cursor pair bounding entries
// equivalent to key, an empty range at the insertion point when key
// is absent.
func (t *Tree[K, V]) EqualRange(key K) (Cursor[K, V], Cursor[K, V]) {
	return t.LowerBound(key), t.UpperBound(key)
}

// Min return the least entry.
func (t *Tree[K, V]) Min() (key K, value V, ok bool) {
	if t.store.IsEmpty() {
		return key, value, false
	}
	pair := t.store.Begin().Value()
	return pair.Key, pair.Value, true
}

// Max return the greatest entry.
func (t *Tree[K, V]) Max() (key K, value V, ok bool) {
	if t.store.IsEmpty() {
		return key, value, false
	}
	pair := t.store.End().Prev().Value()
	return pair.Key, pair.Value, true
}

// Delete remove one entry equivalent to key, returning its mapped
// value. On a multikey tree it is unspecified which among equals
// goes, use DeleteAt to pick.
func (t *Tree[K, V]) Delete(key K) (value V, ok bool) {
	root, deleted := t.delete(t.root, key)
	t.root = root
	if t.root != malloc.Nilref {
		t.nodes.Ptr(t.root).black = true
	}
	if deleted == malloc.Nilref {
		return value, false
	}
	dp := t.nodes.Ptr(deleted)
	value = dp.cur.Value().Value
	t.store.Erase(dp.cur)
	t.freenode(deleted)
	t.n_deletes++
	return value, true
}

// DeleteAt remove the entry under the cursor, returning cursor to
// its successor. Fails with api.ErrorInvalidOperand, leaving the
// tree unchanged, when the cursor belongs to another container or
// sits at End().
func (t *Tree[K, V]) DeleteAt(c Cursor[K, V]) (Cursor[K, V], error) {
	if c.tree != t || t.store.Owns(c.cur) == false || c.cur.IsEnd() {
		return t.End(), api.ErrorInvalidOperand
	}
	key := c.cur.Value().Key
	next := Cursor[K, V]{tree: t, cur: c.cur.Next()}
	root, deleted := t.delete(t.root, key)
	t.root = root
	if t.root != malloc.Nilref {
		t.nodes.Ptr(t.root).black = true
	}
	// the detached entry is some equal, re-point when it is not ours
	dp := t.nodes.Ptr(deleted)
	if dp.cur.Equal(c.cur) == false {
		if tgt := t.findcursor(t.root, key, c.cur); tgt != malloc.Nilref {
			tp := t.nodes.Ptr(tgt)
			tp.key, tp.cur = dp.key, dp.cur
		}
	}
	t.store.Erase(c.cur)
	t.freenode(deleted)
	t.n_deletes++
	return next, nil
}

// DeleteAll remove every entry equivalent to key, returning the
// number removed.
func (t *Tree[K, V]) DeleteAll(key K) int64 {
	removed := int64(0)
	for {
		if _, ok := t.Delete(key); ok == false {
			return removed
		}
		removed++
	}
}

// DeleteMin remove and return the least entry.
func (t *Tree[K, V]) DeleteMin() (key K, value V, ok bool) {
	if t.store.IsEmpty() {
		return key, value, false
	}
	pair := t.store.Begin().Value()
	t.DeleteAt(t.Begin())
	return pair.Key, pair.Value, true
}

// DeleteMax remove and return the greatest entry.
func (t *Tree[K, V]) DeleteMax() (key K, value V, ok bool) {
	if t.store.IsEmpty() {
		return key, value, false
	}
	pair := t.store.End().Prev().Value()
	t.DeleteAt(t.End().Prev())
	return pair.Key, pair.Value, true
}

// DeleteRange remove entries between from and till, returning the
// number removed. Bounds and incl behave as in Range.
func (t *Tree[K, V]) DeleteRange(from, till *K, incl string) int64 {
	curs := make([]Cursor[K, V], 0, 8)
	t.Range(from, till, incl, false, func(c Cursor[K, V]) bool {
		curs = append(curs, c)
		return true
	})
	for _, c := range curs {
		t.DeleteAt(c)
	}
	return int64(len(curs))
}

// Range iterate entries between from and till in key order, both
// bounds optional, nil walks from the least or through the greatest
// entry. incl picks which bounds include equivalent keys, "low",
// "high", "both" or "none". With reverse iteration runs from the
// high end back. Return false from iter to stop the walk. The tree
// must not be mutated from inside iter.
func (t *Tree[K, V]) Range(
	from, till *K, incl string, reverse bool,
	iter func(c Cursor[K, V]) bool) {

	if from != nil && till != nil && t.cmpf(*from, *till) > 0 {
		return
	}
	lo, hi := t.Begin(), t.End()
	if from != nil {
		if incl == "low" || incl == "both" {
			lo = t.LowerBound(*from)
		} else {
			lo = t.UpperBound(*from)
		}
	}
	if till != nil {
		if incl == "high" || incl == "both" {
			hi = t.UpperBound(*till)
		} else {
			hi = t.LowerBound(*till)
		}
	}
	if reverse {
		for c := hi; c.Equal(lo) == false; {
			c = c.Prev()
			if iter(c) == false {
				return
			}
		}
		return
	}
	for c := lo; c.Equal(hi) == false; c = c.Next() {
		if iter(c) == false {
			return
		}
	}
}

// Each walk entries in key order applying callb, stop when callb
// returns false.
func (t *Tree[K, V]) Each(callb func(key K, value V) bool) {
	t.store.Each(func(pair api.Pair[K, V]) bool {
		return callb(pair.Key, pair.Value)
	})
}

// Clear remove every entry. Cursors into the tree become invalid.
func (t *Tree[K, V]) Clear() {
	t.n_deletes += t.store.Count()
	t.store.Clear()
	t.nodes.Release()
	t.root = malloc.Nilref
}

// Clone create a copy of the tree under a new name, entry order
// preserved.
func (t *Tree[K, V]) Clone(name string) *Tree[K, V] {
	newt := NewTree[K, V](name, t.cmpf, t.setts)
	t.store.Each(func(pair api.Pair[K, V]) bool {
		newt.insertentry(pair.Key, pair.Value)
		return true
	})
	t.n_clones++
	return newt
}

// Destroy release the tree. Instance shall not be used after this
// call.
func (t *Tree[K, V]) Destroy() {
	t.store.Destroy()
	t.nodes.Release()
	t.root = malloc.Nilref
	log.Infof("%v destroyed\n", t.logprefix)
}

// Stats return tree counters, with store and arena counters under
// the "store." and "node." prefixes.
func (t *Tree[K, V]) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"n_count":   t.store.Count(),
		"n_inserts": t.n_inserts,
		"n_updates": t.n_updates,
		"n_deletes": t.n_deletes,
		"n_clones":  t.n_clones,
	}
	for k, v := range t.store.Stats() {
		stats["store."+k] = v
	}
	for k, v := range t.nodes.Stats() {
		stats["node."+k] = v
	}
	stats["h_upsertdepth"] = t.h_upsertdepth.Fullstats()
	return stats
}

// Log vital statistics.
func (t *Tree[K, V]) Log(what string, humanfmt bool) {
	if humanfmt {
		fmsg := "%v count %v, inserts %v updates %v deletes %v\n"
		log.Infof(fmsg, t.logprefix,
			humanize.Comma(t.store.Count()), humanize.Comma(t.n_inserts),
			humanize.Comma(t.n_updates), humanize.Comma(t.n_deletes))
		fmsg = "%v arena %v allocated of %v, utilization %.2f%%\n"
		log.Infof(fmsg, t.logprefix,
			humanize.Bytes(uint64(t.nodes.Allocated())),
			humanize.Bytes(uint64(t.nodes.Capacity())),
			t.nodes.Utilization()*100)
		if what == "full" {
			log.Infof("%v h_upsertdepth %v\n",
				t.logprefix, t.h_upsertdepth.Fullstats())
		}
		return
	}
	log.Infof("%v stats %v\n", t.logprefix, t.Stats())
}

// insertentry place the entry on the store right before its upper
// bound, then index the fresh cursor.
func (t *Tree[K, V]) insertentry(key K, value V) Cursor[K, V] {
	at := t.store.End()
	if succ := t.upperboundref(key); succ != malloc.Nilref {
		at = t.nodes.Ptr(succ).cur
	}
	rcur, _ := t.store.InsertBefore(at, api.Pair[K, V]{Key: key, Value: value})
	nref := t.allocnode(key, rcur)
	t.root = t.insert(t.root, nref, 1)
	t.nodes.Ptr(t.root).black = true
	t.n_inserts++
	return Cursor[K, V]{tree: t, cur: rcur}
}

func (t *Tree[K, V]) cursorat(ref malloc.Ref) Cursor[K, V] {
	return Cursor[K, V]{tree: t, cur: t.nodes.Ptr(ref).cur}
}

func (t *Tree[K, V]) logarenasettings() {
	capacity := humanize.Bytes(uint64(t.nodes.Capacity()))
	fmsg := "%v with %v arena capacity, %v byte slots\n"
	log.Infof(fmsg, t.logprefix, capacity, t.nodes.Slotsize())
}
