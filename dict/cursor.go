package dict

import "github.com/bnclabs/goring/api"
import "github.com/bnclabs/goring/ring"

// Cursor is a stable position within a map, in insertion order.
// Cursors survive rehashing and unrelated mutation, a cursor whose
// own entry is deleted must not be used again. The zero Cursor
// belongs to no map.
type Cursor[K, V any] struct {
	dict *Map[K, V]
	cur  ring.Cursor[api.Pair[K, V]]
}

// Key project the entry key. Panics at End().
func (c Cursor[K, V]) Key() K {
	return c.cur.Value().Key
}

// Mapped project the mapped value. Panics at End().
func (c Cursor[K, V]) Mapped() V {
	return c.cur.Value().Value
}

// Pair return the entry as {key, value}. Panics at End().
func (c Cursor[K, V]) Pair() (K, V) {
	pair := c.cur.Value()
	return pair.Key, pair.Value
}

// SetMapped overwrite the mapped value in place, the key is left
// alone. Panics at End().
func (c Cursor[K, V]) SetMapped(value V) {
	pair := c.cur.Value()
	c.cur.SetValue(api.Pair[K, V]{Key: pair.Key, Value: value})
}

// Next return cursor to the following entry in insertion order,
// End() wraps to the oldest entry.
func (c Cursor[K, V]) Next() Cursor[K, V] {
	return Cursor[K, V]{dict: c.dict, cur: c.cur.Next()}
}

// Prev return cursor to the preceding entry in insertion order, the
// oldest entry wraps to End().
func (c Cursor[K, V]) Prev() Cursor[K, V] {
	return Cursor[K, V]{dict: c.dict, cur: c.cur.Prev()}
}

// Advance step n entries forward, or backward when n is negative,
// clamping at End().
func (c Cursor[K, V]) Advance(n int) Cursor[K, V] {
	return Cursor[K, V]{dict: c.dict, cur: c.cur.Advance(n)}
}

// Equal report whether both cursors address the same entry of the
// same map.
func (c Cursor[K, V]) Equal(other Cursor[K, V]) bool {
	return c.dict == other.dict && c.cur.Equal(other.cur)
}

// IsEnd report whether the cursor sits at End().
func (c Cursor[K, V]) IsEnd() bool {
	return c.cur.IsEnd()
}
