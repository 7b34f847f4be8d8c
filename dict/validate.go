package dict

import "fmt"

import "github.com/bnclabs/goring/api"
import "github.com/bnclabs/goring/ring"

// Validate check every map and store invariant, panic on violation.
// Checks the store chain, bucket table shape, placement of every
// cursor, exact one-to-one coverage between buckets and store,
// uniqueness or adjacency of equals, and counter arithmetic.
func (d *Map[K, V]) Validate() {
	d.store.Validate()
	nbuckets := int64(len(d.buckets))
	if nbuckets&(nbuckets-1) != 0 {
		fmsg := "%v validate(): %v buckets, not a power of 2"
		panic(fmt.Errorf(fmsg, d.logprefix, nbuckets))
	} else if nbuckets < d.minbuckets {
		fmsg := "%v validate(): %v buckets under the %v floor"
		panic(fmt.Errorf(fmsg, d.logprefix, nbuckets, d.minbuckets))
	}
	seen := map[ring.Cursor[api.Pair[K, V]]]bool{}
	for bidx, bucket := range d.buckets {
		for _, cur := range bucket {
			if d.store.Owns(cur) == false || cur.IsEnd() {
				fmsg := "%v validate(): bucket %v holds a foreign cursor"
				panic(fmt.Errorf(fmsg, d.logprefix, bidx))
			}
			if at := d.hashf(cur.Value().Key) & d.mask; at != uint64(bidx) {
				fmsg := "%v validate(): entry filed under bucket %v, hashes to %v"
				panic(fmt.Errorf(fmsg, d.logprefix, bidx, at))
			}
			if seen[cur] {
				fmsg := "%v validate(): entry filed under two buckets"
				panic(fmt.Errorf(fmsg, d.logprefix))
			}
			seen[cur] = true
		}
	}
	if n := int64(len(seen)); n != d.store.Count() {
		fmsg := "%v validate(): %v bucket entries for %v store entries"
		panic(fmt.Errorf(fmsg, d.logprefix, n, d.store.Count()))
	}
	for cur := d.store.Begin(); cur.IsEnd() == false; cur = cur.Next() {
		if seen[cur] == false {
			fmsg := "%v validate(): store entry missing from the index"
			panic(fmt.Errorf(fmsg, d.logprefix))
		}
	}
	if d.multikey {
		d.validateruns()
	} else {
		d.validateunique()
	}
	d.validatestats()
}

// validateunique check no two entries carry equivalent keys. Equals
// hash alike, scanning within each bucket covers every candidate
// pair.
func (d *Map[K, V]) validateunique() {
	for _, bucket := range d.buckets {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				if d.eqf(bucket[i].Value().Key, bucket[j].Value().Key) {
					fmsg := "%v validate(): duplicate keys on a unique map"
					panic(fmt.Errorf(fmsg, d.logprefix))
				}
			}
		}
	}
}

// validateruns check equivalent keys sit adjacent in iteration
// order, one contiguous run per distinct key.
func (d *Map[K, V]) validateruns() {
	heads := []K{}
	var prev K
	first := true
	d.store.Each(func(pair api.Pair[K, V]) bool {
		if first || d.eqf(prev, pair.Key) == false {
			for _, head := range heads {
				if d.eqf(head, pair.Key) {
					fmsg := "%v validate(): equals split over two runs"
					panic(fmt.Errorf(fmsg, d.logprefix))
				}
			}
			heads = append(heads, pair.Key)
		}
		prev, first = pair.Key, false
		return true
	})
}

func (d *Map[K, V]) validatestats() {
	n := d.n_inserts - d.n_deletes
	if count := d.store.Count(); count != n {
		fmsg := "%v validate(): count %v, inserts-deletes %v"
		panic(fmt.Errorf(fmsg, d.logprefix, count, n))
	}
}
