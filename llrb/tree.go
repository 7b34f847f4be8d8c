package llrb

import "github.com/bnclabs/goring/api"
import "github.com/bnclabs/goring/malloc"
import "github.com/bnclabs/goring/ring"

// treenode is one entry of the left-leaning red-black index. Nodes
// live in the tree arena and link to each other by Ref. The key is
// kept beside the store cursor so comparisons never touch the ring.
type treenode[K, V any] struct {
	left  malloc.Ref
	right malloc.Ref
	black bool
	key   K
	cur   ring.Cursor[api.Pair[K, V]]
}

func (t *Tree[K, V]) allocnode(key K, cur ring.Cursor[api.Pair[K, V]]) malloc.Ref {
	ref := t.nodes.Alloc()
	ndp := t.nodes.Ptr(ref)
	// freshly allocated slots are zeroed, Nilref is not the zero Ref
	ndp.left, ndp.right, ndp.black = malloc.Nilref, malloc.Nilref, false
	ndp.key, ndp.cur = key, cur
	return ref
}

func (t *Tree[K, V]) freenode(ref malloc.Ref) {
	t.nodes.Free(ref)
}

func (t *Tree[K, V]) isred(ref malloc.Ref) bool {
	if ref == malloc.Nilref {
		return false
	}
	return t.nodes.Ptr(ref).black == false
}

func (t *Tree[K, V]) leftof(ref malloc.Ref) malloc.Ref {
	if ref == malloc.Nilref {
		return malloc.Nilref
	}
	return t.nodes.Ptr(ref).left
}

// insert descend to the in-order slot for nref and link it there,
// rebalancing on the way back up. Equivalent keys descend right, a
// new entry always lands after its equals.
func (t *Tree[K, V]) insert(ref, nref malloc.Ref, depth int64) malloc.Ref {
	if ref == malloc.Nilref {
		t.h_upsertdepth.Add(depth)
		return nref
	}
	ndp, np := t.nodes.Ptr(ref), t.nodes.Ptr(nref)
	if t.cmpf(np.key, ndp.key) < 0 {
		ndp.left = t.insert(ndp.left, nref, depth+1)
	} else {
		ndp.right = t.insert(ndp.right, nref, depth+1)
	}
	return t.walkuprot23(ref)
}

func (t *Tree[K, V]) walkuprot23(ref malloc.Ref) malloc.Ref {
	ndp := t.nodes.Ptr(ref)
	if t.isred(ndp.right) && t.isred(ndp.left) == false {
		ref = t.rotateleft(ref)
		ndp = t.nodes.Ptr(ref)
	}
	if t.isred(ndp.left) && t.isred(t.leftof(ndp.left)) {
		ref = t.rotateright(ref)
		ndp = t.nodes.Ptr(ref)
	}
	if t.isred(ndp.left) && t.isred(ndp.right) {
		t.flip(ref)
	}
	return ref
}

func (t *Tree[K, V]) rotateleft(ref malloc.Ref) malloc.Ref {
	ndp := t.nodes.Ptr(ref)
	x := ndp.right
	xp := t.nodes.Ptr(x)
	if xp.black {
		panic("rotating a black link")
	}
	ndp.right = xp.left
	xp.left = ref
	xp.black = ndp.black
	ndp.black = false
	return x
}

func (t *Tree[K, V]) rotateright(ref malloc.Ref) malloc.Ref {
	ndp := t.nodes.Ptr(ref)
	x := ndp.left
	xp := t.nodes.Ptr(x)
	if xp.black {
		panic("rotating a black link")
	}
	ndp.left = xp.right
	xp.right = ref
	xp.black = ndp.black
	ndp.black = false
	return x
}

// flip the colors of ref and both its children, callers make sure
// both children exist.
func (t *Tree[K, V]) flip(ref malloc.Ref) {
	ndp := t.nodes.Ptr(ref)
	lp, rp := t.nodes.Ptr(ndp.left), t.nodes.Ptr(ndp.right)
	ndp.black = !ndp.black
	lp.black = !lp.black
	rp.black = !rp.black
}

func (t *Tree[K, V]) moveredleft(ref malloc.Ref) malloc.Ref {
	t.flip(ref)
	ndp := t.nodes.Ptr(ref)
	if t.isred(t.leftof(ndp.right)) {
		ndp.right = t.rotateright(ndp.right)
		ref = t.rotateleft(ref)
		t.flip(ref)
	}
	return ref
}

func (t *Tree[K, V]) moveredright(ref malloc.Ref) malloc.Ref {
	t.flip(ref)
	ndp := t.nodes.Ptr(ref)
	if t.isred(t.leftof(ndp.left)) {
		ref = t.rotateright(ref)
		t.flip(ref)
	}
	return ref
}

func (t *Tree[K, V]) fixup(ref malloc.Ref) malloc.Ref {
	ndp := t.nodes.Ptr(ref)
	if t.isred(ndp.right) {
		ref = t.rotateleft(ref)
		ndp = t.nodes.Ptr(ref)
	}
	if t.isred(ndp.left) && t.isred(t.leftof(ndp.left)) {
		ref = t.rotateright(ref)
		ndp = t.nodes.Ptr(ref)
	}
	if t.isred(ndp.left) && t.isred(ndp.right) {
		t.flip(ref)
	}
	return ref
}

func (t *Tree[K, V]) deletemin(ref malloc.Ref) (newref, deleted malloc.Ref) {
	if ref == malloc.Nilref {
		return malloc.Nilref, malloc.Nilref
	}
	ndp := t.nodes.Ptr(ref)
	if ndp.left == malloc.Nilref {
		return malloc.Nilref, ref
	}
	if t.isred(ndp.left) == false && t.isred(t.leftof(ndp.left)) == false {
		ref = t.moveredleft(ref)
		ndp = t.nodes.Ptr(ref)
	}
	ndp.left, deleted = t.deletemin(ndp.left)
	return t.fixup(ref), deleted
}

// delete descend for key and detach one equivalent entry, returning
// the detached ref. When the matching node is interior its payload is
// swapped with the in-order successor, so the detached ref always
// carries the evicted key and cursor while the surviving node keeps
// its place in the tree.
func (t *Tree[K, V]) delete(ref malloc.Ref, key K) (newref, deleted malloc.Ref) {
	if ref == malloc.Nilref {
		return malloc.Nilref, malloc.Nilref
	}
	ndp := t.nodes.Ptr(ref)
	if t.cmpf(key, ndp.key) < 0 {
		if ndp.left == malloc.Nilref {
			return ref, malloc.Nilref
		}
		if t.isred(ndp.left) == false && t.isred(t.leftof(ndp.left)) == false {
			ref = t.moveredleft(ref)
			ndp = t.nodes.Ptr(ref)
		}
		ndp.left, deleted = t.delete(ndp.left, key)
	} else {
		if t.isred(ndp.left) {
			ref = t.rotateright(ref)
			ndp = t.nodes.Ptr(ref)
		}
		if t.cmpf(key, ndp.key) == 0 && ndp.right == malloc.Nilref {
			return malloc.Nilref, ref
		}
		if ndp.right != malloc.Nilref &&
			t.isred(ndp.right) == false && t.isred(t.leftof(ndp.right)) == false {
			ref = t.moveredright(ref)
			ndp = t.nodes.Ptr(ref)
		}
		if t.cmpf(key, ndp.key) == 0 {
			var sub malloc.Ref
			ndp.right, sub = t.deletemin(ndp.right)
			sdp := t.nodes.Ptr(sub)
			ndp.key, sdp.key = sdp.key, ndp.key
			ndp.cur, sdp.cur = sdp.cur, ndp.cur
			deleted = sub
		} else {
			ndp.right, deleted = t.delete(ndp.right, key)
		}
	}
	return t.fixup(ref), deleted
}

// findref return the first entry equivalent to key in store order,
// Nilref when absent.
func (t *Tree[K, V]) findref(key K) malloc.Ref {
	if ref := t.lowerboundref(key); ref != malloc.Nilref {
		if t.cmpf(t.nodes.Ptr(ref).key, key) == 0 {
			return ref
		}
	}
	return malloc.Nilref
}

// lowerboundref return the least entry whose key does not order
// before key, Nilref when every entry orders before it.
func (t *Tree[K, V]) lowerboundref(key K) malloc.Ref {
	best, ref := malloc.Nilref, t.root
	for ref != malloc.Nilref {
		ndp := t.nodes.Ptr(ref)
		if t.cmpf(ndp.key, key) >= 0 {
			best, ref = ref, ndp.left
		} else {
			ref = ndp.right
		}
	}
	return best
}

// upperboundref return the least entry whose key orders strictly
// after key, Nilref when no entry does.
func (t *Tree[K, V]) upperboundref(key K) malloc.Ref {
	best, ref := malloc.Nilref, t.root
	for ref != malloc.Nilref {
		ndp := t.nodes.Ptr(ref)
		if t.cmpf(ndp.key, key) > 0 {
			best, ref = ref, ndp.left
		} else {
			ref = ndp.right
		}
	}
	return best
}

// findcursor locate the entry holding exactly this store cursor.
// Rotations can spread equivalent keys over both subtrees, within the
// equal run both sides are searched.
func (t *Tree[K, V]) findcursor(
	ref malloc.Ref, key K, cur ring.Cursor[api.Pair[K, V]]) malloc.Ref {

	if ref == malloc.Nilref {
		return malloc.Nilref
	}
	ndp := t.nodes.Ptr(ref)
	c := t.cmpf(key, ndp.key)
	if c < 0 {
		return t.findcursor(ndp.left, key, cur)
	} else if c > 0 {
		return t.findcursor(ndp.right, key, cur)
	}
	if ndp.cur.Equal(cur) {
		return ref
	}
	if found := t.findcursor(ndp.left, key, cur); found != malloc.Nilref {
		return found
	}
	return t.findcursor(ndp.right, key, cur)
}

func (t *Tree[K, V]) inorder(ref malloc.Ref, visit func(ndp *treenode[K, V])) {
	if ref == malloc.Nilref {
		return
	}
	ndp := t.nodes.Ptr(ref)
	t.inorder(ndp.left, visit)
	visit(ndp)
	t.inorder(ndp.right, visit)
}
