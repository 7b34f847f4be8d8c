package malloc

import s "github.com/bnclabs/gosettings"

// Defaultsettings for arena instances.
//
// "poolsize" (int64, default: 1024)
//      Number of slots acquired at a time, whenever the arena runs
//      out of free slots.
//
// "capacity" (int64, default: 1024 * 1024 * 1024)
//      Maximum memory, in bytes, that the arena can acquire for its
//      pools. Alloc panics with api.ErrorOutofMemory beyond this.
func Defaultsettings() s.Settings {
	return s.Settings{
		"poolsize": int64(1024),
		"capacity": int64(1024 * 1024 * 1024),
	}
}
