package malloc

import "fmt"
import "unsafe"

import "github.com/bnclabs/golog"
import s "github.com/bnclabs/gosettings"

import "github.com/bnclabs/goring/api"

// Ref address one slot within an arena, stable for the lifetime of
// the slot.
type Ref int32

// Nilref is the nil member of Ref space, never handed out by Alloc.
const Nilref Ref = -1

// Arena manage pools of fixed-size slots of type T, addressed by Ref.
type Arena[T any] struct {
	name     string
	pools    [][]T
	freelist []Ref
	nextslot int64
	poolsize int64
	capacity int64
	slotsize int64
	// stats
	n_allocs int64
	n_frees  int64

	logprefix string
}

// NewArena create an empty arena for slots of type T.
// Settings: "poolsize", "capacity", see Defaultsettings.
func NewArena[T any](name string, setts s.Settings) *Arena[T] {
	arena := &Arena[T]{name: name}
	arena.logprefix = fmt.Sprintf("ARNA [%v]", name)
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	arena.poolsize = setts.Int64("poolsize")
	arena.capacity = setts.Int64("capacity")
	var slot T
	arena.slotsize = int64(unsafe.Sizeof(slot))
	if arena.poolsize <= 0 {
		panic(fmt.Errorf("%v poolsize cannot be %v", arena.logprefix, arena.poolsize))
	} else if arena.capacity < arena.poolsize*arena.slotsize {
		panic(fmt.Errorf("%v capacity %v under one pool of %v slots",
			arena.logprefix, arena.capacity, arena.poolsize))
	}
	arena.pools = make([][]T, 0, 8)
	arena.freelist = make([]Ref, 0, 64)
	log.Debugf("%v started with %v byte slots\n", arena.logprefix, arena.slotsize)
	return arena
}

// Alloc one zero-valued slot, recycling the freelist before acquiring
// a new pool. Panics with api.ErrorOutofMemory when a new pool would
// exceed the arena capacity.
func (arena *Arena[T]) Alloc() Ref {
	if n := len(arena.freelist); n > 0 {
		ref := arena.freelist[n-1]
		arena.freelist = arena.freelist[:n-1]
		arena.n_allocs++
		return ref
	}
	if arena.nextslot >= int64(len(arena.pools))*arena.poolsize {
		footprint := (int64(len(arena.pools)) + 1) * arena.poolsize * arena.slotsize
		if footprint > arena.capacity {
			panic(api.ErrorOutofMemory)
		}
		arena.pools = append(arena.pools, make([]T, arena.poolsize))
	}
	ref := Ref(arena.nextslot)
	arena.nextslot++
	arena.n_allocs++
	return ref
}

// Ptr return the slot addressed by ref. Valid until the slot is
// freed, pools never move.
func (arena *Arena[T]) Ptr(ref Ref) *T {
	return &arena.pools[int64(ref)/arena.poolsize][int64(ref)%arena.poolsize]
}

// Free return the slot to the arena freelist, clearing it so stale
// references do not pin memory.
func (arena *Arena[T]) Free(ref Ref) {
	if ref < 0 || int64(ref) >= arena.nextslot {
		panic(fmt.Errorf("%v Free(): invalid ref %v", arena.logprefix, ref))
	}
	var zero T
	*arena.Ptr(ref) = zero
	arena.freelist = append(arena.freelist, ref)
	arena.n_frees++
}

// Release drop every pool and forget the freelist. Outstanding refs
// become invalid, the arena is empty and reusable.
func (arena *Arena[T]) Release() {
	if n := arena.n_allocs - arena.n_frees; n > 0 {
		log.Debugf("%v released with %v live slots\n", arena.logprefix, n)
		arena.n_frees = arena.n_allocs
	}
	arena.pools = arena.pools[:0]
	arena.freelist = arena.freelist[:0]
	arena.nextslot = 0
}

// Slotsize in bytes for this arena's slot type.
func (arena *Arena[T]) Slotsize() int64 {
	return arena.slotsize
}

// Capacity configured for this arena, in bytes.
func (arena *Arena[T]) Capacity() int64 {
	return arena.capacity
}

// Memory acquired from the runtime for pools, in bytes.
func (arena *Arena[T]) Memory() int64 {
	return int64(len(arena.pools)) * arena.poolsize * arena.slotsize
}

// Allocated memory for live slots, in bytes.
func (arena *Arena[T]) Allocated() int64 {
	return (arena.n_allocs - arena.n_frees) * arena.slotsize
}

// Available memory before the arena hits capacity, in bytes.
func (arena *Arena[T]) Available() int64 {
	return arena.capacity - arena.Allocated()
}

// Utilization ratio of live slot memory over acquired pool memory.
func (arena *Arena[T]) Utilization() float64 {
	if memory := arena.Memory(); memory > 0 {
		return float64(arena.Allocated()) / float64(memory)
	}
	return 0
}

// Stats return arena accounting.
func (arena *Arena[T]) Stats() map[string]interface{} {
	return map[string]interface{}{
		"slotsize":  arena.slotsize,
		"poolsize":  arena.poolsize,
		"capacity":  arena.capacity,
		"n_pools":   int64(len(arena.pools)),
		"n_allocs":  arena.n_allocs,
		"n_frees":   arena.n_frees,
		"memory":    arena.Memory(),
		"allocated": arena.Allocated(),
		"freelist":  int64(len(arena.freelist)),
	}
}
