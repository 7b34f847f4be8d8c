package llrb

import "fmt"
import "math"

import "github.com/bnclabs/goring/api"
import "github.com/bnclabs/goring/lib"
import "github.com/bnclabs/goring/malloc"

// Validate check every tree and store invariant, panic on violation.
// Checks the store chain, red-black shape, black balance, key order
// between tree and store, height bound and counter arithmetic.
func (t *Tree[K, V]) Validate() {
	t.store.Validate()
	h := lib.NewhistorgramInt64(1, 256, 1)
	_, n := t.validatetree(t.root, t.isred(t.root), 0, 1, h)
	if count := t.store.Count(); n != count {
		fmsg := "%v validate(): tree holds %v entries, store %v"
		panic(fmt.Errorf(fmsg, t.logprefix, n, count))
	}
	if n > 0 {
		maxheight, limit := float64(h.Max()), 2*math.Log2(float64(n)+1)+1
		if maxheight > limit {
			fmsg := "%v validate(): height %v exceeds %v for %v entries"
			panic(fmt.Errorf(fmsg, t.logprefix, maxheight, limit, n))
		}
	}
	t.validateorder()
	t.validatestats()
}

// validatetree walk the tree checking red-black shape, black balance
// and parent-child key order, returning the black height and entry
// count under ref.
func (t *Tree[K, V]) validatetree(
	ref malloc.Ref, fromred bool, blacks, depth int64,
	h *lib.HistogramInt64) (nblacks, count int64) {

	if ref == malloc.Nilref {
		return blacks, 0
	}
	h.Add(depth)
	ndp, red := t.nodes.Ptr(ref), t.isred(ref)
	if fromred && red {
		panic(fmt.Errorf("%v validate(): consecutive red links", t.logprefix))
	} else if t.isred(ndp.right) {
		panic(fmt.Errorf("%v validate(): right leaning red link", t.logprefix))
	}
	if red == false {
		blacks++
	}
	if ndp.left != malloc.Nilref {
		c := t.cmpf(t.nodes.Ptr(ndp.left).key, ndp.key)
		if c > 0 || (c == 0 && t.multikey == false) {
			panic(fmt.Errorf("%v validate(): left child out of order", t.logprefix))
		}
	}
	if ndp.right != malloc.Nilref {
		c := t.cmpf(t.nodes.Ptr(ndp.right).key, ndp.key)
		if c < 0 || (c == 0 && t.multikey == false) {
			panic(fmt.Errorf("%v validate(): right child out of order", t.logprefix))
		}
	}
	lblacks, lcount := t.validatetree(ndp.left, red, blacks, depth+1, h)
	rblacks, rcount := t.validatetree(ndp.right, red, blacks, depth+1, h)
	if lblacks != rblacks {
		fmsg := "%v validate(): black height %v left, %v right"
		panic(fmt.Errorf(fmsg, t.logprefix, lblacks, rblacks))
	}
	return lblacks, lcount + rcount + 1
}

// validateorder crosscheck the index against the store, an in-order
// walk of the tree must land on every store position in sequence,
// and the store must already run in key order.
func (t *Tree[K, V]) validateorder() {
	cur := t.store.Begin()
	t.inorder(t.root, func(ndp *treenode[K, V]) {
		if ndp.cur.Equal(cur) == false {
			fmsg := "%v validate(): tree order drifts from store order"
			panic(fmt.Errorf(fmsg, t.logprefix))
		}
		if t.cmpf(ndp.key, cur.Value().Key) != 0 {
			fmsg := "%v validate(): node key drifts from store key"
			panic(fmt.Errorf(fmsg, t.logprefix))
		}
		cur = cur.Next()
	})
	if cur.IsEnd() == false {
		fmsg := "%v validate(): store holds entries the tree does not"
		panic(fmt.Errorf(fmsg, t.logprefix))
	}
	var prev K
	first := true
	t.store.Each(func(pair api.Pair[K, V]) bool {
		if first == false {
			c := t.cmpf(prev, pair.Key)
			if c > 0 || (c == 0 && t.multikey == false) {
				fmsg := "%v validate(): store out of key order"
				panic(fmt.Errorf(fmsg, t.logprefix))
			}
		}
		prev, first = pair.Key, false
		return true
	})
}

func (t *Tree[K, V]) validatestats() {
	n := t.n_inserts - t.n_deletes
	if count := t.store.Count(); count != n {
		fmsg := "%v validate(): count %v, inserts-deletes %v"
		panic(fmt.Errorf(fmsg, t.logprefix, count, n))
	}
	slots := t.nodes.Allocated() / t.nodes.Slotsize()
	if count := t.store.Count(); slots != count {
		fmsg := "%v validate(): %v live arena slots for %v entries"
		panic(fmt.Errorf(fmsg, t.logprefix, slots, count))
	}
}
