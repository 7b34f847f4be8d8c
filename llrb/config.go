package llrb

import "github.com/cloudfoundry/gosigar"

import s "github.com/bnclabs/gosettings"

import "github.com/bnclabs/goring/malloc"
import "github.com/bnclabs/goring/ring"

// Defaultsettings for llrb trees, applied before settings supplied
// while creating the tree.
//
// "multikey" (bool, default: false)
//      When true equivalent keys may repeat, every insert adds an
//      entry. When false keys are unique and Insert leaves a present
//      key alone.
//
// "arena.poolsize" (int64, default: 1024)
//      Number of tree node slots acquired per arena pool.
//
// "arena.capacity" (int64, default: half of free system memory)
//      Upper bound, in bytes, on arena memory for tree nodes. Falls
//      back to 1GB when free memory cannot be read.
//
// "ring.nodepool.size" (int64, default: 256)
//      Number of erased store nodes kept aside for recycling.
//
func Defaultsettings() s.Settings {
	setts := s.Settings{"multikey": false}
	for key, value := range malloc.Defaultsettings().AddPrefix("arena.") {
		setts[key] = value
	}
	capacity := int64(1024 * 1024 * 1024)
	if free := getsysmem(); free > 0 {
		capacity = free / 2
	}
	setts["arena.capacity"] = capacity
	for key, value := range ring.Defaultsettings().AddPrefix("ring.") {
		setts[key] = value
	}
	return setts
}

func getsysmem() int64 {
	mem := sigar.Mem{}
	if err := mem.Get(); err != nil {
		return 0
	}
	return int64(mem.Free)
}
