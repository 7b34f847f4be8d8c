package dict

import s "github.com/bnclabs/gosettings"

import "github.com/bnclabs/goring/api"

// Set is a hashed collection of bare keys over the same store and
// bucket machinery as Map. With the "multikey" setting it behaves as
// a multiset.
type Set[K any] struct {
	dict *Map[K, struct{}]
}

// Setcursor is a stable position within a set, in insertion order.
type Setcursor[K any] struct {
	cur Cursor[K, struct{}]
}

// NewSet create an empty set hashing keys with hashf and matching
// them with eqf. Settings are shared with NewMap.
func NewSet[K any](name string, hashf api.Hash[K], eqf api.Equal[K], setts s.Settings) *Set[K] {
	return &Set[K]{dict: NewMap[K, struct{}](name, hashf, eqf, setts)}
}

// NewSetOf create an empty set for comparable keys, hashed by the
// runtime hasher.
func NewSetOf[K comparable](name string, setts s.Settings) *Set[K] {
	return NewSet[K](name, api.Hashof[K], api.Equalof[K], setts)
}

// ID return name supplied while creating this instance.
func (set *Set[K]) ID() string {
	return set.dict.ID()
}

// Count return number of keys, O(1).
func (set *Set[K]) Count() int64 {
	return set.dict.Count()
}

// IsEmpty return whether the set has no keys.
func (set *Set[K]) IsEmpty() bool {
	return set.dict.IsEmpty()
}

// Bucketcount return current size of the bucket table.
func (set *Set[K]) Bucketcount() int64 {
	return set.dict.Bucketcount()
}

// Add key to the set, returning whether it went in. On a unique set
// a present key is left alone and Add returns false.
func (set *Set[K]) Add(key K) bool {
	_, ok := set.dict.Insert(key, struct{}{})
	return ok
}

// Has return whether key is present.
func (set *Set[K]) Has(key K) bool {
	return set.dict.Has(key)
}

// Delete remove one key, returning whether it was present.
func (set *Set[K]) Delete(key K) bool {
	_, ok := set.dict.Delete(key)
	return ok
}

// DeleteAll remove every key equivalent to key, returning the number
// removed.
func (set *Set[K]) DeleteAll(key K) int64 {
	return set.dict.DeleteAll(key)
}

// DeleteAt remove the key under the cursor, returning cursor to its
// successor. Fails with api.ErrorInvalidOperand on a foreign or
// End() cursor.
func (set *Set[K]) DeleteAt(c Setcursor[K]) (Setcursor[K], error) {
	next, err := set.dict.DeleteAt(c.cur)
	return Setcursor[K]{cur: next}, err
}

// Begin return cursor to the oldest key, same as End() when empty.
func (set *Set[K]) Begin() Setcursor[K] {
	return Setcursor[K]{cur: set.dict.Begin()}
}

// End return cursor one past the newest key.
func (set *Set[K]) End() Setcursor[K] {
	return Setcursor[K]{cur: set.dict.End()}
}

// Find return cursor to the first key equivalent to key, End() when
// absent.
func (set *Set[K]) Find(key K) Setcursor[K] {
	return Setcursor[K]{cur: set.dict.Find(key)}
}

// Each walk keys in insertion order applying callb, stop when callb
// returns false.
func (set *Set[K]) Each(callb func(key K) bool) {
	set.dict.Each(func(key K, _ struct{}) bool {
		return callb(key)
	})
}

// Rehash rebuild the bucket table with at least n buckets, clamped
// as in Map.Rehash.
func (set *Set[K]) Rehash(n int64) {
	set.dict.Rehash(n)
}

// Clear remove every key.
func (set *Set[K]) Clear() {
	set.dict.Clear()
}

// Clone create a copy of the set under a new name.
func (set *Set[K]) Clone(name string) *Set[K] {
	return &Set[K]{dict: set.dict.Clone(name)}
}

// Destroy release the set. Instance shall not be used after this
// call.
func (set *Set[K]) Destroy() {
	set.dict.Destroy()
}

// Stats return set counters.
func (set *Set[K]) Stats() map[string]interface{} {
	return set.dict.Stats()
}

// Log vital statistics.
func (set *Set[K]) Log(what string, humanfmt bool) {
	set.dict.Log(what, humanfmt)
}

// Validate set invariants, panic on violation.
func (set *Set[K]) Validate() {
	set.dict.Validate()
}

// Key project the key under the cursor. Panics at End().
func (c Setcursor[K]) Key() K {
	return c.cur.Key()
}

// Next return cursor to the following key in insertion order.
func (c Setcursor[K]) Next() Setcursor[K] {
	return Setcursor[K]{cur: c.cur.Next()}
}

// Prev return cursor to the preceding key in insertion order.
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
