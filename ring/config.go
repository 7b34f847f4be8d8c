package ring

import s "github.com/bnclabs/gosettings"

// Defaultsettings for ring instances.
//
// "nodepool.size" (int64, default: 256)
//      Maximum number of erased nodes kept aside for recycling into
//      subsequent inserts. Zero disables recycling.
func Defaultsettings() s.Settings {
	return s.Settings{
		"nodepool.size": int64(256),
	}
}
