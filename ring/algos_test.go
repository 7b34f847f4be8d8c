package ring

import "testing"

import s "github.com/bnclabs/gosettings"
import "github.com/stretchr/testify/require"

import "github.com/bnclabs/goring/api"

type kv struct {
	k   int
	tag string
}

func cmpkv(a, b kv) int {
	if a.k < b.k {
		return -1
	} else if a.k > b.k {
		return 1
	}
	return 0
}

func contentskv(r *Ring[kv]) []kv {
	values := make([]kv, 0, r.Count())
	r.Each(func(v kv) bool {
		values = append(values, v)
		return true
	})
	return values
}

func TestSplice(t *testing.T) {
	r, x := NewRing[int]("r", s.Settings{}), NewRing[int]("x", s.Settings{})
	r.Assign([]int{10, 20, 30, 40})
	x.Assign([]int{1, 2, 3})
	// move [2, 3) out of x, in front of 20
	err := r.Splice(r.Begin().Next(), x, x.Begin().Next(), x.End())
	if err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if ref := []int{10, 2, 3, 20, 30, 40}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	} else if ref := []int{1}; equalints(contents(x), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(x))
	}
	r.Validate()
	x.Validate()
}

func TestSpliceSingle(t *testing.T) {
	a, b := NewRing[int]("a", s.Settings{}), NewRing[int]("b", s.Settings{})
	a.Assign([]int{1, 2, 3})
	b.Assign([]int{9})
	if err := a.Splice(a.End(), b, b.Begin(), b.End()); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if a.Count() != 4 {
		t.Errorf("expected %v, got %v", 4, a.Count())
	} else if b.Count() != 0 {
		t.Errorf("expected %v, got %v", 0, b.Count())
	} else if v := a.End().Prev().Value(); v != 9 {
		t.Errorf("expected %v, got %v", 9, v)
	}
	a.Validate()
	b.Validate()
}

func TestSpliceSameRing(t *testing.T) {
	r := NewRing[int]("test", s.Settings{})
	r.Assign([]int{10, 20, 30, 40, 50})
	// relocate [20, 40) in front of 50
	from, till := r.Begin().Next(), r.Begin().Advance(3)
	if err := r.Splice(r.End().Prev(), r, from, till); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if ref := []int{10, 40, 20, 30, 50}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}
	if r.Count() != 5 {
		t.Errorf("expected %v, got %v", 5, r.Count())
	}
	r.Validate()

	// splicing a range onto its own position changes nothing
	r.Assign([]int{10, 20, 30, 40, 50})
	if err := r.Splice(r.Begin(), r, r.Begin(), r.Begin().Advance(2)); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if ref := []int{10, 20, 30, 40, 50}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}
	if err := r.Splice(r.Begin().Advance(2), r, r.Begin(), r.Begin().Advance(2)); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if ref := []int{10, 20, 30, 40, 50}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}
	r.Validate()
}

func TestSpliceInvalid(t *testing.T) {
	newr := func() (*Ring[int], *Ring[int]) {
		r, x := NewRing[int]("r", s.Settings{}), NewRing[int]("x", s.Settings{})
		r.Assign([]int{1, 2, 3, 4, 5})
		x.Assign([]int{6, 7, 8})
		return r, x
	}
	ref, xref := []int{1, 2, 3, 4, 5}, []int{6, 7, 8}

	// destination inside the moved range
	r, x := newr()
	err := r.Splice(r.Begin().Advance(2), r, r.Begin().Next(), r.Begin().Advance(4))
	require.ErrorIs(t, err, api.ErrorInvalidOperand)
	require.Equal(t, ref, contents(r))

	// range crossing the sentinel
	r, x = newr()
	err = r.Splice(r.Begin(), x, x.Begin().Next(), x.Begin())
	require.ErrorIs(t, err, api.ErrorInvalidOperand)
	require.Equal(t, ref, contents(r))
	require.Equal(t, xref, contents(x))

	// foreign destination cursor
	r, x = newr()
	err = r.Splice(x.Begin(), x, x.Begin(), x.End())
	require.ErrorIs(t, err, api.ErrorInvalidOperand)
	require.Equal(t, ref, contents(r))
	require.Equal(t, xref, contents(x))

	// range cursors foreign to the source ring
	r, x = newr()
	err = r.Splice(r.Begin(), x, r.Begin(), r.End())
	require.ErrorIs(t, err, api.ErrorInvalidOperand)
	require.Equal(t, ref, contents(r))
	require.Equal(t, xref, contents(x))

	// missing source ring
	r, _ = newr()
	err = r.Splice(r.Begin(), nil, Cursor[int]{}, Cursor[int]{})
	require.ErrorIs(t, err, api.ErrorInvalidOperand)
	require.Equal(t, ref, contents(r))

	r.Validate()
	x.Validate()
}

func TestMerge(t *testing.T) {
	a, b := NewRing[int]("a", s.Settings{}), NewRing[int]("b", s.Settings{})
	a.Assign([]int{1, 3, 5})
	b.Assign([]int{2, 4, 6})
	if err := a.Merge(b, api.Cmpordered[int]); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if ref := []int{1, 2, 3, 4, 5, 6}; equalints(contents(a), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(a))
	} else if b.IsEmpty() == false {
		t.Errorf("expected emptied ring, count %v", b.Count())
	}
	a.Validate()
	b.Validate()

	// merge into empty, merge from empty, merge with self
	a.Clear()
	b.Assign([]int{1, 2})
	if err := a.Merge(b, api.Cmpordered[int]); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if ref := []int{1, 2}; equalints(contents(a), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(a))
	}
	if err := a.Merge(b, api.Cmpordered[int]); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if a.Count() != 2 {
		t.Errorf("expected %v, got %v", 2, a.Count())
	}
	if err := a.Merge(a, api.Cmpordered[int]); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if ref := []int{1, 2}; equalints(contents(a), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(a))
	}
	if err := a.Merge(nil, api.Cmpordered[int]); err != api.ErrorInvalidOperand {
		t.Errorf("expected %v, got %v", api.ErrorInvalidOperand, err)
	}
	if err := a.Merge(b, nil); err != api.ErrorInvalidOperand {
		t.Errorf("expected %v, got %v", api.ErrorInvalidOperand, err)
	}
	a.Validate()
	b.Validate()
}

func TestMergeStable(t *testing.T) {
	a, b := NewRing[kv]("a", s.Settings{}), NewRing[kv]("b", s.Settings{})
	a.Assign([]kv{{1, "a0"}, {2, "a1"}, {4, "a2"}})
	b.Assign([]kv{{1, "b0"}, {2, "b1"}, {3, "b2"}})
	if err := a.Merge(b, cmpkv); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	ref := []kv{{1, "a0"}, {1, "b0"}, {2, "a1"}, {2, "b1"}, {3, "b2"}, {4, "a2"}}
	got := contentskv(a)
	if len(got) != len(ref) {
		t.Fatalf("expected %v, got %v", ref, got)
	}
	for i, v := range ref {
		if got[i] != v {
			t.Errorf("expected %v at %v, got %v", v, i, got[i])
		}
	}
	a.Validate()
	b.Validate()
}

func TestSort(t *testing.T) {
	r := NewRing[int]("test", s.Settings{})
	r.Assign([]int{5, 1, 4, 2, 3})
	cur := r.Begin()
	r.Sort(api.Cmpordered[int])
	if ref := []int{1, 2, 3, 4, 5}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}
	// values are laid back over nodes, cursors keep their position
	if v := cur.Value(); v != 1 {
		t.Errorf("expected %v, got %v", 1, v)
	}
	r.Sort(api.Cmpordered[int])
	if ref := []int{1, 2, 3, 4, 5}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}
	r.Validate()
}

func TestSortStable(t *testing.T) {
	r := NewRing[kv]("test", s.Settings{})
	r.Assign([]kv{{2, "x"}, {1, "x"}, {2, "y"}, {1, "y"}, {2, "z"}})
	r.Sort(cmpkv)
	ref := []kv{{1, "x"}, {1, "y"}, {2, "x"}, {2, "y"}, {2, "z"}}
	got := contentskv(r)
	for i, v := range ref {
		if got[i] != v {
			t.Errorf("expected %v at %v, got %v", v, i, got[i])
		}
	}
	r.Validate()
}

func TestUnique(t *testing.T) {
	r := NewRing[int]("test", s.Settings{})
	r.Assign([]int{1, 2, 2, 3, 3, 3, 4})
	if n := r.Unique(api.Equalof[int]); n != 3 {
		t.Errorf("expected %v, got %v", 3, n)
	}
	if ref := []int{1, 2, 3, 4}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}
	// only adjacent duplicates collapse
	r.Assign([]int{1, 1, 2, 1})
	if n := r.Unique(api.Equalof[int]); n != 1 {
		t.Errorf("expected %v, got %v", 1, n)
	}
	if ref := []int{1, 2, 1}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}
	r.Validate()
}

func TestRemove(t *testing.T) {
	r := NewRing[int]("test", s.Settings{})
	r.Assign([]int{1, 2, 3, 2, 4, 2})
	if n := r.Remove(2, api.Equalof[int]); n != 3 {
		t.Errorf("expected %v, got %v", 3, n)
	}
	if ref := []int{1, 3, 4}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}
	if n := r.RemoveIf(func(v int) bool { return v%2 == 1 }); n != 2 {
		t.Errorf("expected %v, got %v", 2, n)
	}
	if ref := []int{4}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}
	r.Validate()
}

func BenchmarkRingSplice(b *testing.B) {
	r := NewRing[int]("bench", s.Settings{})
	for i := 0; i < 1000; i++ {
		r.PushBack(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Splice(r.End(), r, r.Begin(), r.Begin().Next())
	}
}

func BenchmarkRingSort(b *testing.B) {
	r := NewRing[int]("bench", s.Settings{})
	for i := 0; i < 1000; i++ {
		r.PushBack((i * 2654435761) % 1000)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Sort(api.Cmpordered[int])
	}
}
