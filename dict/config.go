package dict

import s "github.com/bnclabs/gosettings"

import "github.com/bnclabs/goring/ring"

// Defaultsettings for dict maps, applied before settings supplied
// while creating the map.
//
// "multikey" (bool, default: false)
//      When true equivalent keys may repeat and stay adjacent in
//      iteration order. When false keys are unique and Insert leaves
//      a present key alone.
//
// "minbuckets" (int64, default: 8)
//      Floor for the bucket table, must be a power of 2. The table
//      never shrinks below it however few entries remain.
//
// "ring.nodepool.size" (int64, default: 256)
//      Number of erased store nodes kept aside for recycling.
//
func Defaultsettings() s.Settings {
	setts := s.Settings{"multikey": false, "minbuckets": int64(8)}
	for key, value := range ring.Defaultsettings().AddPrefix("ring.") {
		setts[key] = value
	}
	return setts
}
