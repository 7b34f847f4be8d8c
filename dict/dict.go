// Package dict implement a hash-indexed collection. Entries live as
// {key, value} pairs on a circular doubly-linked store, in insertion
// order, while a bucket table over caller-supplied hash and equality
// strategies indexes store positions by key. The bucket table grows
// and shrinks with the entry count, store cursors survive every
// rehash.
//
// Maps are single-threaded, access from concurrent goroutines needs
// external coordination.
package dict

import "fmt"

import "github.com/bnclabs/golog"
import s "github.com/bnclabs/gosettings"
import humanize "github.com/dustin/go-humanize"

import "github.com/bnclabs/goring/api"
import "github.com/bnclabs/goring/lib"
import "github.com/bnclabs/goring/ring"

// Map is a hashed collection of {key, value} entries. With the
// "multikey" setting equivalent keys may repeat and stay adjacent in
// iteration order, a new entry always lands after its equals.
type Map[K, V any] struct {
	name       string
	hashf      api.Hash[K]
	eqf        api.Equal[K]
	store      *ring.Ring[api.Pair[K, V]]
	buckets    [][]ring.Cursor[api.Pair[K, V]]
	mask       uint64
	minbuckets int64
	multikey   bool
	setts      s.Settings
	logprefix  string
	// statistics
	n_inserts  int64
	n_updates  int64
	n_deletes  int64
	n_rehashes int64
	n_clones   int64
}

// NewMap create an empty map hashing keys with hashf and matching
// them with eqf. Keys equal under eqf must hash to the same digest.
// Settings: "multikey", "minbuckets", "ring.*", see Defaultsettings.
func NewMap[K, V any](name string, hashf api.Hash[K], eqf api.Equal[K], setts s.Settings) *Map[K, V] {
	d := &Map[K, V]{name: name, hashf: hashf, eqf: eqf}
	d.logprefix = fmt.Sprintf("DICT [%v]", name)
	if hashf == nil || eqf == nil {
		panic(fmt.Errorf("%v missing hash or equality", d.logprefix))
	}
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	d.setts = setts
	d.multikey = setts.Bool("multikey")
	d.minbuckets = setts.Int64("minbuckets")
	if d.minbuckets <= 0 || d.minbuckets&(d.minbuckets-1) != 0 {
		panic(fmt.Errorf("%v minbuckets %v is not a power of 2", d.logprefix, d.minbuckets))
	}
	d.store = ring.NewRing[api.Pair[K, V]](name, setts.Section("ring.").Trim("ring."))
	d.buckets = make([][]ring.Cursor[api.Pair[K, V]], d.minbuckets)
	d.mask = uint64(d.minbuckets - 1)
	log.Infof("%v started with %v buckets ...\n", d.logprefix, d.minbuckets)
	return d
}

// NewMapOf create an empty map for comparable keys, hashed by the
// runtime hasher.
func NewMapOf[K comparable, V any](name string, setts s.Settings) *Map[K, V] {
	return NewMap[K, V](name, api.Hashof[K], api.Equalof[K], setts)
}

// NewMapFrom create a map holding pairs, inserted in order.
func NewMapFrom[K, V any](
	name string, hashf api.Hash[K], eqf api.Equal[K], setts s.Settings,
	pairs ...api.Pair[K, V]) *Map[K, V] {

	d := NewMap[K, V](name, hashf, eqf, setts)
	d.InsertMany(pairs...)
	return d
}

// ID return name supplied while creating this instance.
func (d *Map[K, V]) ID() string {
	return d.name
}

// Count return number of entries, O(1), the store keeps it.
func (d *Map[K, V]) Count() int64 {
	return d.store.Count()
}

// IsEmpty return whether the map has no entries.
func (d *Map[K, V]) IsEmpty() bool {
	return d.store.IsEmpty()
}

// Bucketcount return current size of the bucket table.
func (d *Map[K, V]) Bucketcount() int64 {
	return int64(len(d.buckets))
}

// Loadfactor return entries per bucket.
func (d *Map[K, V]) Loadfactor() float64 {
	return float64(d.store.Count()) / float64(len(d.buckets))
}

// Begin return cursor to the oldest entry, same as End() when empty.
func (d *Map[K, V]) Begin() Cursor[K, V] {
	return Cursor[K, V]{dict: d, cur: d.store.Begin()}
}

// End return cursor one past the newest entry.
func (d *Map[K, V]) End() Cursor[K, V] {
	return Cursor[K, V]{dict: d, cur: d.store.End()}
}

// Insert add one {key, value} entry, returning its cursor. On a
// unique map a present key is left alone and its cursor returns
// with false.
func (d *Map[K, V]) Insert(key K, value V) (Cursor[K, V], bool) {
	if d.multikey == false {
		if _, slot, cur := d.findbucketed(key); slot >= 0 {
			return Cursor[K, V]{dict: d, cur: cur}, false
		}
	}
	return d.insertentry(key, value), true
}

// InsertMany add pairs in order, growing the bucket table upfront,
// returning the number inserted.
func (d *Map[K, V]) InsertMany(pairs ...api.Pair[K, V]) int64 {
	d.adjustload(int64(len(pairs)))
	inserted := int64(0)
	for _, pair := range pairs {
		if _, ok := d.Insert(pair.Key, pair.Value); ok {
			inserted++
		}
	}
	return inserted
}

// Set upsert value for key, returning the previous value when the
// key was already present. The stored key is kept on update. Panics
// on a multikey map where one winner is not defined, use Insert.
func (d *Map[K, V]) Set(key K, value V) (old V, updated bool) {
	if d.multikey {
		panic(fmt.Errorf("%v Set(): multikey map, use Insert", d.logprefix))
	}
	if _, slot, cur := d.findbucketed(key); slot >= 0 {
		pair := cur.Value()
		old, updated = pair.Value, true
		cur.SetValue(api.Pair[K, V]{Key: pair.Key, Value: value})
		d.n_updates++
		return old, updated
	}
	d.insertentry(key, value)
	return old, false
}

// Get return the value mapped to key, the first among equals in
// iteration order on a multikey map.
func (d *Map[K, V]) Get(key K) (value V, ok bool) {
	if cur, found := d.findfirst(key); found {
		return cur.Value().Value, true
	}
	return value, false
}

// Has return whether key is present.
func (d *Map[K, V]) Has(key K) bool {
	_, slot, _ := d.findbucketed(key)
	return slot >= 0
}

// Find return cursor to the first entry equivalent to key in
// iteration order, End() when absent. Only the key's bucket is
// scanned, never the store.
func (d *Map[K, V]) Find(key K) Cursor[K, V] {
	if cur, found := d.findfirst(key); found {
		return Cursor[K, V]{dict: d, cur: cur}
	}
	return d.End()
}

// EqualRange return the [first, past) cursor pair bounding entries
// equivalent to key, equals stay adjacent in iteration order. An
// empty range at End() when key is absent.
func (d *Map[K, V]) EqualRange(key K) (Cursor[K, V], Cursor[K, V]) {
	cur, found := d.findfirst(key)
	if found == false {
		return d.End(), d.End()
	}
	past := cur
	for past.IsEnd() == false && d.eqf(past.Value().Key, key) {
		past = past.Next()
	}
	return Cursor[K, V]{dict: d, cur: cur}, Cursor[K, V]{dict: d, cur: past}
}

// Delete remove one entry equivalent to key, returning its mapped
// value. On a multikey map it is unspecified which among equals
// goes, use DeleteAt to pick.
func (d *Map[K, V]) Delete(key K) (value V, ok bool) {
	bidx, slot, cur := d.findbucketed(key)
	if slot < 0 {
		return value, false
	}
	value = cur.Value().Value
	d.removeat(bidx, slot)
	d.store.Erase(cur)
	d.n_deletes++
	return value, true
}

// DeleteAt remove the entry under the cursor, returning cursor to
// its successor in iteration order. Fails with
// api.ErrorInvalidOperand, leaving the map unchanged, when the
// cursor belongs to another container or sits at End(), and with
// api.ErrorKeyMissing when the entry behind the cursor is no longer
// filed in the index.
func (d *Map[K, V]) DeleteAt(c Cursor[K, V]) (Cursor[K, V], error) {
	if c.dict != d || d.store.Owns(c.cur) == false || c.cur.IsEnd() {
		return d.End(), api.ErrorInvalidOperand
	}
	bidx := d.hashf(c.cur.Value().Key) & d.mask
	for slot, cur := range d.buckets[bidx] {
		if cur.Equal(c.cur) {
			next := Cursor[K, V]{dict: d, cur: c.cur.Next()}
			d.removeat(bidx, slot)
			d.store.Erase(c.cur)
			d.n_deletes++
			return next, nil
		}
	}
	return d.End(), api.ErrorKeyMissing
}

// DeleteAll remove every entry equivalent to key, returning the
// number removed.
func (d *Map[K, V]) DeleteAll(key K) int64 {
	bidx := d.hashf(key) & d.mask
	kept := d.buckets[bidx][:0]
	removed := int64(0)
	for _, cur := range d.buckets[bidx] {
		if d.eqf(cur.Value().Key, key) {
			d.store.Erase(cur)
			removed++
		} else {
			kept = append(kept, cur)
		}
	}
	d.buckets[bidx] = kept
	d.n_deletes += removed
	return removed
}

// DeleteRange remove entries positioned in [from, till), returning
// the number removed. Fails with api.ErrorInvalidOperand, leaving
// the map unchanged, when either cursor belongs to another
// container.
func (d *Map[K, V]) DeleteRange(from, till Cursor[K, V]) (int64, error) {
	if from.dict != d || d.store.Owns(from.cur) == false {
		return 0, api.ErrorInvalidOperand
	} else if till.dict != d || d.store.Owns(till.cur) == false {
		return 0, api.ErrorInvalidOperand
	}
	removed := int64(0)
	for c := from; c.Equal(till) == false && c.IsEnd() == false; {
		next, err := d.DeleteAt(c)
		if err != nil {
			return removed, err
		}
		c, removed = next, removed+1
	}
	return removed, nil
}

// Each walk entries in insertion order applying callb, stop when
// callb returns false.
func (d *Map[K, V]) Each(callb func(key K, value V) bool) {
	d.store.Each(func(pair api.Pair[K, V]) bool {
		return callb(pair.Key, pair.Value)
	})
}

// Rehash rebuild the bucket table with at least n buckets, clamped
// so the table never gets smaller than the load policy and the
// configured minimum allow.
func (d *Map[K, V]) Rehash(n int64) {
	if half := (d.store.Count() + 1) / 2; n < half {
		n = half
	}
	d.rehash(n)
}

// Clear remove every entry and reset the bucket table to its
// minimum. Cursors into the map become invalid.
func (d *Map[K, V]) Clear() {
	d.n_deletes += d.store.Count()
	d.store.Clear()
	d.buckets = make([][]ring.Cursor[api.Pair[K, V]], d.minbuckets)
	d.mask = uint64(d.minbuckets - 1)
}

// Clone create a copy of the map under a new name, iteration order
// preserved.
func (d *Map[K, V]) Clone(name string) *Map[K, V] {
	newd := NewMap[K, V](name, d.hashf, d.eqf, d.setts)
	newd.adjustload(d.store.Count())
	d.store.Each(func(pair api.Pair[K, V]) bool {
		newd.insertentry(pair.Key, pair.Value)
		return true
	})
	d.n_clones++
	return newd
}

// Destroy release the map. Instance shall not be used after this
// call.
func (d *Map[K, V]) Destroy() {
	d.store.Destroy()
	d.buckets = nil
	log.Infof("%v destroyed\n", d.logprefix)
}

// Stats return map counters, with store counters under the "store."
// prefix and the bucket fill distribution under "b_fill".
func (d *Map[K, V]) Stats() map[string]interface{} {
	fill := &lib.AverageInt64{}
	for _, bucket := range d.buckets {
		fill.Add(int64(len(bucket)))
	}
	stats := map[string]interface{}{
		"n_count":    d.store.Count(),
		"n_inserts":  d.n_inserts,
		"n_updates":  d.n_updates,
		"n_deletes":  d.n_deletes,
		"n_rehashes": d.n_rehashes,
		"n_clones":   d.n_clones,
		"n_buckets":  int64(len(d.buckets)),
		"loadfactor": d.Loadfactor(),
	}
	for k, v := range d.store.Stats() {
		stats["store."+k] = v
	}
	stats["b_fill"] = fill.Stats()
	return stats
}

// Log vital statistics.
func (d *Map[K, V]) Log(what string, humanfmt bool) {
	if humanfmt {
		fmsg := "%v count %v in %v buckets, load %.2f\n"
		log.Infof(fmsg, d.logprefix,
			humanize.Comma(d.store.Count()),
			humanize.Comma(int64(len(d.buckets))), d.Loadfactor())
		fmsg = "%v inserts %v updates %v deletes %v rehashes %v\n"
		log.Infof(fmsg, d.logprefix,
			humanize.Comma(d.n_inserts), humanize.Comma(d.n_updates),
			humanize.Comma(d.n_deletes), humanize.Comma(d.n_rehashes))
		return
	}
	log.Infof("%v stats %v\n", d.logprefix, d.Stats())
}

// insertentry place the entry on the store, after its equals on a
// multikey map, and file its cursor under the right bucket. The
// bucket table is resized first so the fresh cursor is filed once.
func (d *Map[K, V]) insertentry(key K, value V) Cursor[K, V] {
	d.adjustload(1)
	bidx := d.hashf(key) & d.mask
	at := d.store.End()
	if d.multikey {
		if _, slot, cur := d.findbucketed(key); slot >= 0 {
			for cur.IsEnd() == false && d.eqf(cur.Value().Key, key) {
				cur = cur.Next()
			}
			at = cur
		}
	}
	rcur, _ := d.store.InsertBefore(at, api.Pair[K, V]{Key: key, Value: value})
	d.buckets[bidx] = append(d.buckets[bidx], rcur)
	d.n_inserts++
	return Cursor[K, V]{dict: d, cur: rcur}
}

// findbucketed scan the key's bucket, returning the bucket index,
// the slot holding an equivalent entry and its cursor, slot -1 when
// absent.
func (d *Map[K, V]) findbucketed(key K) (uint64, int, ring.Cursor[api.Pair[K, V]]) {
	bidx := d.hashf(key) & d.mask
	for slot, cur := range d.buckets[bidx] {
		if d.eqf(cur.Value().Key, key) {
			return bidx, slot, cur
		}
	}
	var none ring.Cursor[api.Pair[K, V]]
	return bidx, -1, none
}

// findfirst return the store cursor of the first equal in iteration
// order. Buckets hold equals in arrival order, on a multikey map the
// run is walked back to its start.
func (d *Map[K, V]) findfirst(key K) (ring.Cursor[api.Pair[K, V]], bool) {
	_, slot, cur := d.findbucketed(key)
	if slot < 0 {
		return cur, false
	}
	if d.multikey {
		for {
			prev := cur.Prev()
			if prev.IsEnd() || d.eqf(prev.Value().Key, key) == false {
				break
			}
			cur = prev
		}
	}
	return cur, true
}

// removeat drop one bucket slot, order within a bucket does not
// matter.
func (d *Map[K, V]) removeat(bidx uint64, slot int) {
	bucket := d.buckets[bidx]
	last := len(bucket) - 1
	bucket[slot] = bucket[last]
	d.buckets[bidx] = bucket[:last]
}

// adjustload resize the bucket table for count+incoming entries.
// The table grows past load factor 2, shrinks only once it is 4
// times too large, and lands near load factor 1/2 either way, so
// alternating inserts and deletes never thrash it.
func (d *Map[K, V]) adjustload(incoming int64) {
	n, nbuckets := d.store.Count()+incoming, int64(len(d.buckets))
	if n > 2*nbuckets {
		d.rehash(n)
	} else if nbuckets > 4*n {
		d.rehash(2 * n)
	}
}

// rehash rebuild the bucket table with nextpow2(target) buckets,
// refiling every store cursor. The store is the source of truth,
// old buckets are dropped wholesale.
func (d *Map[K, V]) rehash(target int64) {
	nbuckets := nextpow2(target, d.minbuckets)
	if nbuckets == int64(len(d.buckets)) {
		return
	}
	d.buckets = make([][]ring.Cursor[api.Pair[K, V]], nbuckets)
	d.mask = uint64(nbuckets - 1)
	for cur := d.store.Begin(); cur.IsEnd() == false; cur = cur.Next() {
		bidx := d.hashf(cur.Value().Key) & d.mask
		d.buckets[bidx] = append(d.buckets[bidx], cur)
	}
	d.n_rehashes++
}

func nextpow2(n, floor int64) int64 {
	p := floor
	for p < n {
		p <<= 1
	}
	return p
}
