package llrb

import "testing"

import s "github.com/bnclabs/gosettings"

import "github.com/bnclabs/goring/api"

func TestSetBasics(t *testing.T) {
	set := NewSetOrdered[string]("test", s.Settings{})
	for _, key := range []string{"delta", "alpha", "charlie", "bravo"} {
		if set.Add(key) == false {
			t.Errorf("expected add of %v", key)
		}
	}
	if set.Add("alpha") {
		t.Errorf("expected duplicate add to be refused")
	}
	if set.Count() != 4 {
		t.Errorf("expected %v, got %v", 4, set.Count())
	} else if set.Has("charlie") == false {
		t.Errorf("expected present key")
	} else if set.Has("echo") {
		t.Errorf("expected absent key")
	}
	if key, ok := set.Min(); ok == false || key != "alpha" {
		t.Errorf("expected alpha, got %v %v", key, ok)
	}
	if key, ok := set.Max(); ok == false || key != "delta" {
		t.Errorf("expected delta, got %v %v", key, ok)
	}
	keys := []string{}
	set.Each(func(key string) bool {
		keys = append(keys, key)
		return true
	})
	ref := []string{"alpha", "bravo", "charlie", "delta"}
	for i, key := range ref {
		if keys[i] != key {
			t.Errorf("expected %v at %v, got %v", key, i, keys[i])
		}
	}
	if set.Delete("bravo") == false {
		t.Errorf("expected delete of present key")
	} else if set.Delete("bravo") {
		t.Errorf("expected delete of absent key to be refused")
	}
	if set.Count() != 3 {
		t.Errorf("expected %v, got %v", 3, set.Count())
	}
	set.Validate()
	set.Clear()
	if set.IsEmpty() == false {
		t.Errorf("expected empty set, count %v", set.Count())
	}
	set.Validate()
}

func TestSetCursor(t *testing.T) {
	set := NewSetOrdered[int]("test", s.Settings{})
	for _, key := range []int{40, 10, 30, 20} {
		set.Add(key)
	}
	cur := set.Begin()
	for _, ref := range []int{10, 20, 30, 40} {
		if key := cur.Key(); key != ref {
			t.Errorf("expected %v, got %v", ref, key)
		}
		cur = cur.Next()
	}
	if cur.IsEnd() == false {
		t.Errorf("expected End after full walk")
	}
	if cur := set.Find(30); cur.Key() != 30 {
		t.Errorf("expected %v, got %v", 30, cur.Key())
	} else if set.Find(25).IsEnd() == false {
		t.Errorf("expected End for absent key")
	}
	if cur := set.LowerBound(25); cur.Key() != 30 {
		t.Errorf("expected %v, got %v", 30, cur.Key())
	}
	if cur := set.UpperBound(30); cur.Key() != 40 {
		t.Errorf("expected %v, got %v", 40, cur.Key())
	}
	if cur := set.Begin().Advance(2); cur.Key() != 30 {
		t.Errorf("expected %v, got %v", 30, cur.Key())
	}
	next, err := set.DeleteAt(set.Begin().Next())
	if err != nil {
		t.Errorf("unexpected error %v", err)
	} else if next.Key() != 30 {
		t.Errorf("expected %v, got %v", 30, next.Key())
	}
	if set.Has(20) {
		t.Errorf("expected deleted key")
	}
	set.Validate()
}

func TestSetForeignCursor(t *testing.T) {
	x := NewSetOrdered[int]("x", s.Settings{})
	y := NewSetOrdered[int]("y", s.Settings{})
	x.Add(1)
	y.Add(2)
	if _, err := y.DeleteAt(x.Begin()); err != api.ErrorInvalidOperand {
		t.Errorf("expected %v, got %v", api.ErrorInvalidOperand, err)
	}
	if y.Count() != 1 || y.Has(2) == false {
		t.Errorf("expected unchanged set")
	}
	y.Validate()
}

func TestMultiset(t *testing.T) {
	set := NewSetOrdered[int]("multi", s.Settings{"multikey": true})
	for _, key := range []int{7, 3, 7, 5, 7} {
		if set.Add(key) == false {
			t.Errorf("expected add of %v", key)
		}
	}
	if set.Count() != 5 {
		t.Errorf("expected %v, got %v", 5, set.Count())
	}
	if n := set.DeleteAll(7); n != 3 {
		t.Errorf("expected %v, got %v", 3, n)
	}
	if set.Count() != 2 {
		t.Errorf("expected %v, got %v", 2, set.Count())
	} else if set.Has(7) {
		t.Errorf("expected no equals left")
	}
	set.Validate()
}

func TestSetRange(t *testing.T) {
	set := NewSetOrdered[int]("test", s.Settings{})
	for key := 1; key <= 10; key++ {
		set.Add(key)
	}
	from, till := 3, 7
	keys := []int{}
	set.Range(&from, &till, "both", false, func(key int) bool {
		keys = append(keys, key)
		return true
	})
	if ref := []int{3, 4, 5, 6, 7}; equalkeys(keys, ref) == false {
		t.Errorf("expected %v, got %v", ref, keys)
	}
	keys = keys[:0]
	set.Range(&from, &till, "none", true, func(key int) bool {
		keys = append(keys, key)
		return true
	})
	if ref := []int{6, 5, 4}; equalkeys(keys, ref) == false {
		t.Errorf("expected %v, got %v", ref, keys)
	}
}

func TestSetClone(t *testing.T) {
	set := NewSetOrdered[int]("test", s.Settings{})
	for _, key := range []int{3, 1, 2} {
		set.Add(key)
	}
	newset := set.Clone("clone")
	set.Add(4)
	if newset.Count() != 3 {
		t.Errorf("expected %v, got %v", 3, newset.Count())
	} else if newset.Has(4) {
		t.Errorf("expected clone without later keys")
	}
	newset.Validate()
	set.Validate()
}
