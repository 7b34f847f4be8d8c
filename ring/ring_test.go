package ring

import "testing"

import s "github.com/bnclabs/gosettings"

import "github.com/bnclabs/goring/api"

func contents(r *Ring[int]) []int {
	values := make([]int, 0, r.Count())
	r.Each(func(v int) bool {
		values = append(values, v)
		return true
	})
	return values
}

func equalints(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewRing(t *testing.T) {
	r := NewRing[int]("test", s.Settings{})
	if r.Count() != 0 {
		t.Errorf("expected %v, got %v", 0, r.Count())
	} else if r.IsEmpty() == false {
		t.Errorf("expected empty ring")
	} else if r.Begin().Equal(r.End()) == false {
		t.Errorf("expected Begin == End on empty ring")
	} else if r.ID() != "test" {
		t.Errorf("expected %v, got %v", "test", r.ID())
	}
	r.Validate()
}

func TestPushFrontBack(t *testing.T) {
	r := NewRing[int]("test", s.Settings{})
	r.PushBack(20)
	r.PushFront(10)
	r.PushBack(30)
	if ref := []int{10, 20, 30}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}
	if v := r.Begin().Value(); v != 10 {
		t.Errorf("expected %v, got %v", 10, v)
	} else if v := r.End().Prev().Value(); v != 30 {
		t.Errorf("expected %v, got %v", 30, v)
	}
	r.Validate()
}

func TestInsertBefore(t *testing.T) {
	r := NewRing[int]("test", s.Settings{})
	r.PushBack(10)
	r.PushBack(40)
	at := r.Begin().Next()
	cur, err := r.InsertBefore(at, 20, 30)
	if err != nil {
		t.Errorf("unexpected error %v", err)
	} else if v := cur.Value(); v != 20 {
		t.Errorf("expected %v, got %v", 20, v)
	}
	if ref := []int{10, 20, 30, 40}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}

	// insert before End appends
	if _, err := r.InsertBefore(r.End(), 50); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if v := r.End().Prev().Value(); v != 50 {
		t.Errorf("expected %v, got %v", 50, v)
	}

	// empty insert returns at
	cur, err = r.InsertBefore(r.Begin())
	if err != nil {
		t.Errorf("unexpected error %v", err)
	} else if cur.Equal(r.Begin()) == false {
		t.Errorf("expected cursor at Begin")
	}
	r.Validate()
}

func TestInsertBeforeForeign(t *testing.T) {
	r, x := NewRing[int]("r", s.Settings{}), NewRing[int]("x", s.Settings{})
	x.PushBack(1)
	if _, err := r.InsertBefore(x.Begin(), 10); err != api.ErrorInvalidOperand {
		t.Errorf("expected %v, got %v", api.ErrorInvalidOperand, err)
	}
	if r.Count() != 0 {
		t.Errorf("expected unchanged ring, got count %v", r.Count())
	}
	r.Validate()
	x.Validate()
}

func TestErase(t *testing.T) {
	r := NewRing[int]("test", s.Settings{})
	for _, v := range []int{10, 20, 30, 40} {
		r.PushBack(v)
	}
	next, err := r.Erase(r.Begin().Next())
	if err != nil {
		t.Errorf("unexpected error %v", err)
	} else if v := next.Value(); v != 30 {
		t.Errorf("expected %v, got %v", 30, v)
	}
	if ref := []int{10, 30, 40}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}

	// erase last element returns End
	next, err = r.Erase(r.End().Prev())
	if err != nil {
		t.Errorf("unexpected error %v", err)
	} else if next.IsEnd() == false {
		t.Errorf("expected End cursor")
	}

	// erasing End fails
	if _, err := r.Erase(r.End()); err != api.ErrorInvalidOperand {
		t.Errorf("expected %v, got %v", api.ErrorInvalidOperand, err)
	}

	// foreign cursor fails, ring unchanged
	x := NewRing[int]("x", s.Settings{})
	x.PushBack(1)
	if _, err := r.Erase(x.Begin()); err != api.ErrorInvalidOperand {
		t.Errorf("expected %v, got %v", api.ErrorInvalidOperand, err)
	}
	if ref := []int{10, 30}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}
	r.Validate()
}

func TestEraseRange(t *testing.T) {
	r := NewRing[int]("test", s.Settings{})
	for _, v := range []int{10, 20, 30, 40, 50} {
		r.PushBack(v)
	}
	from, till := r.Begin().Next(), r.End().Prev()
	next, err := r.EraseRange(from, till)
	if err != nil {
		t.Errorf("unexpected error %v", err)
	} else if v := next.Value(); v != 50 {
		t.Errorf("expected %v, got %v", 50, v)
	}
	if ref := []int{10, 50}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}

	// empty range is a no-op
	if _, err := r.EraseRange(r.Begin(), r.Begin()); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if r.Count() != 2 {
		t.Errorf("expected %v, got %v", 2, r.Count())
	}

	// full range empties the ring
	if _, err := r.EraseRange(r.Begin(), r.End()); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if r.IsEmpty() == false {
		t.Errorf("expected empty ring, count %v", r.Count())
	}
	r.Validate()
}

func TestClearAssign(t *testing.T) {
	r := NewRing[int]("test", s.Settings{})
	for i := 0; i < 100; i++ {
		r.PushBack(i)
	}
	r.Clear()
	if r.Count() != 0 {
		t.Errorf("expected %v, got %v", 0, r.Count())
	} else if r.Begin().Equal(r.End()) == false {
		t.Errorf("expected Begin == End after Clear")
	}
	r.Validate()

	r.Assign([]int{1, 2, 3})
	if ref := []int{1, 2, 3}; equalints(contents(r), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(r))
	}
	r.Validate()
}

func TestRecycle(t *testing.T) {
	setts := s.Settings{"nodepool.size": int64(8)}
	r := NewRing[int]("test", setts)
	for i := 0; i < 100; i++ {
		r.PushBack(i)
	}
	for i := 0; i < 50; i++ {
		if _, err := r.Erase(r.Begin()); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
	}
	for i := 0; i < 50; i++ {
		r.PushBack(1000 + i)
	}
	stats := r.Stats()
	if v := stats["n_recycles"].(int64); v != 8 {
		t.Errorf("expected %v recycles, got %v", 8, v)
	}
	r.Validate()
}

func TestRingClone(t *testing.T) {
	r := NewRing[int]("test", s.Settings{})
	for _, v := range []int{10, 20, 30} {
		r.PushBack(v)
	}
	newr := r.Clone("clone")
	r.PushBack(40)
	if ref := []int{10, 20, 30}; equalints(contents(newr), ref) == false {
		t.Errorf("expected %v, got %v", ref, contents(newr))
	}
	newr.Validate()
	r.Validate()
}

func TestRingStats(t *testing.T) {
	r := NewRing[int]("test", s.Settings{})
	for i := 0; i < 10; i++ {
		r.PushBack(i)
	}
	r.Erase(r.Begin())
	stats := r.Stats()
	if v := stats["n_count"].(int64); v != 9 {
		t.Errorf("expected %v, got %v", 9, v)
	} else if v := stats["n_inserts"].(int64); v != 10 {
		t.Errorf("expected %v, got %v", 10, v)
	} else if v := stats["n_deletes"].(int64); v != 1 {
		t.Errorf("expected %v, got %v", 1, v)
	}
}

func BenchmarkRingPushBack(b *testing.B) {
	r := NewRing[int]("bench", s.Settings{})
	for i := 0; i < b.N; i++ {
		r.PushBack(i)
	}
}

func BenchmarkRingErase(b *testing.B) {
	r := NewRing[int]("bench", s.Settings{})
	for i := 0; i < b.N; i++ {
		r.PushBack(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Erase(r.Begin())
	}
}
