// Package malloc supplies a slab arena for index nodes, with a
// limited scope:
//
//   - Types and functions exported by this package are not thread safe.
//   - Slots are allocated in pools, where each pool holds a fixed
//     number of slots of the same type.
//   - Pools are never returned to the runtime until the entire arena
//     is Released.
//   - Slots are addressed by Ref, a compact stable index. Pool growth
//     never moves a slot, pointers obtained through Ptr stay valid
//     until the slot is freed.
//
// An arena starts empty and adds pools as allocations demand, within
// a configured byte capacity. Freed slots go to a freelist and are
// recycled before any new pool is acquired.
package malloc
