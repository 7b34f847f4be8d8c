package llrb

import "golang.org/x/exp/constraints"

import s "github.com/bnclabs/gosettings"

import "github.com/bnclabs/goring/api"

// Set is an ordered collection of bare keys over the same store and
// index machinery as Tree. With the "multikey" setting it behaves as
// a multiset.
type Set[K any] struct {
	tree *Tree[K, struct{}]
}

// Setcursor is a stable position within a set, in key order.
type Setcursor[K any] struct {
	cur Cursor[K, struct{}]
}

// NewSet create an empty set ordered under cmpf. Settings are shared
// with NewTree.
func NewSet[K any](name string, cmpf api.Compare[K], setts s.Settings) *Set[K] {
	return &Set[K]{tree: NewTree[K, struct{}](name, cmpf, setts)}
}

// NewSetOrdered create an empty set for keys already ordered by the
// language, strings and numbers.
func NewSetOrdered[K constraints.Ordered](name string, setts s.Settings) *Set[K] {
	return NewSet[K](name, api.Cmpordered[K], setts)
}

// ID return name supplied while creating this instance.
func (set *Set[K]) ID() string {
	return set.tree.ID()
}

// Count return number of keys, O(1).
func (set *Set[K]) Count() int64 {
	return set.tree.Count()
}

// IsEmpty return whether the set has no keys.
func (set *Set[K]) IsEmpty() bool {
	return set.tree.IsEmpty()
}

// Add key to the set, returning whether it went in. On a unique set
// a present key is left alone and Add returns false.
func (set *Set[K]) Add(key K) bool {
	_, ok := set.tree.Insert(key, struct{}{})
	return ok
}

// Has return whether key is present.
func (set *Set[K]) Has(key K) bool {
	return set.tree.Has(key)
}

// Delete remove one key, returning whether it was present.
func (set *Set[K]) Delete(key K) bool {
	_, ok := set.tree.Delete(key)
	return ok
}

// DeleteAll remove every key equivalent to key, returning the number
// removed.
func (set *Set[K]) DeleteAll(key K) int64 {
	return set.tree.DeleteAll(key)
}

// DeleteAt remove the key under the cursor, returning cursor to its
// successor. Fails with api.ErrorInvalidOperand on a foreign or
// End() cursor.
func (set *Set[K]) DeleteAt(c Setcursor[K]) (Setcursor[K], error) {
	next, err := set.tree.DeleteAt(c.cur)
	return Setcursor[K]{cur: next}, err
}

// Min return the least key.
func (set *Set[K]) Min() (key K, ok bool) {
	key, _, ok = set.tree.Min()
	return key, ok
}

// Max return the greatest key.
func (set *Set[K]) Max() (key K, ok bool) {
	key, _, ok = set.tree.Max()
	return key, ok
}

// Begin return cursor to the least key, same as End() when empty.
func (set *Set[K]) Begin() Setcursor[K] {
	return Setcursor[K]{cur: set.tree.Begin()}
}

// End return cursor one past the greatest key.
func (set *Set[K]) End() Setcursor[K] {
	return Setcursor[K]{cur: set.tree.End()}
}

// Find return cursor to the first key equivalent to key, End() when
// absent.
func (set *Set[K]) Find(key K) Setcursor[K] {
	return Setcursor[K]{cur: set.tree.Find(key)}
}

// LowerBound return cursor to the first key not ordering before key.
func (set *Set[K]) LowerBound(key K) Setcursor[K] {
	return Setcursor[K]{cur: set.tree.LowerBound(key)}
}

// UpperBound return cursor to the first key ordering strictly after
// key.
func (set *Set[K]) UpperBound(key K) Setcursor[K] {
	return Setcursor[K]{cur: set.tree.UpperBound(key)}
}

// Each walk keys in order applying callb, stop when callb returns
// false.
func (set *Set[K]) Each(callb func(key K) bool) {
	set.tree.Each(func(key K, _ struct{}) bool {
		return callb(key)
	})
}

// Range iterate keys between from and till, bounds as in Tree.Range.
func (set *Set[K]) Range(
	from, till *K, incl string, reverse bool, iter func(key K) bool) {

	set.tree.Range(from, till, incl, reverse, func(c Cursor[K, struct{}]) bool {
		return iter(c.Key())
	})
}

// Clear remove every key.
func (set *Set[K]) Clear() {
	set.tree.Clear()
}

// Clone create a copy of the set under a new name.
func (set *Set[K]) Clone(name string) *Set[K] {
	return &Set[K]{tree: set.tree.Clone(name)}
}

// Destroy release the set. Instance shall not be used after this
// call.
func (set *Set[K]) Destroy() {
	set.tree.Destroy()
}

// Stats return set counters.
func (set *Set[K]) Stats() map[string]interface{} {
	return set.tree.Stats()
}

// Log vital statistics.
func (set *Set[K]) Log(what string, humanfmt bool) {
	set.tree.Log(what, humanfmt)
}

// Validate set invariants, panic on violation.
func (set *Set[K]) Validate() {
	set.tree.Validate()
}

// Key project the key under the cursor. Panics at End().
func (c Setcursor[K]) Key() K {
	return c.cur.Key()
}

// Next return cursor to the following key in order.
func (c Setcursor[K]) Next() Setcursor[K] {
	return Setcursor[K]{cur: c.cur.Next()}
}

// Prev return cursor to the preceding key in order.
func (c Setcursor[K]) Prev() Setcursor[K] {
	return Setcursor[K]{cur: c.cur.Prev()}
}

// Advance step n keys forward, or backward when n is negative,
// clamping at End().
func (c Setcursor[K]) Advance(n int) Setcursor[K] {
	return Setcursor[K]{cur: c.cur.Advance(n)}
}

// Equal report whether both cursors address the same key position.
func (c Setcursor[K]) Equal(other Setcursor[K]) bool {
	return c.cur.Equal(other.cur)
}

// IsEnd report whether the cursor sits at End().
func (c Setcursor[K]) IsEnd() bool {
	return c.cur.IsEnd()
}
