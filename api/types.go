// Package api holds types, errors and pluggable strategies shared by
// all goring container packages.
//
// Containers never interpret keys or values on their own. Ordering,
// equality and hashing are supplied as Compare, Equal and Hash
// strategies, either explicitly or through the default helpers below.
package api

import "bytes"
import "hash/crc64"
import "hash/maphash"

import "golang.org/x/exp/constraints"

// Compare is a three-way comparator establishing a strict weak
// ordering over T: negative when a orders before b, zero when they
// are equivalent, positive when a orders after b.
type Compare[T any] func(a, b T) int

// Equal returns whether a and b are equivalent. Keys that are Equal
// must Hash to the same digest.
type Equal[T any] func(a, b T) bool

// Hash digests a key to 64 bits.
type Hash[K any] func(k K) uint64

// Pair carries one key with its mapped value.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Cmpordered three-way compare for ordered primitive types.
func Cmpordered[T constraints.Ordered](a, b T) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// Cmpbytes three-way compare for byte-slice keys.
func Cmpbytes(a, b []byte) int {
	return bytes.Compare(a, b)
}

// Equalbytes equivalence for byte-slice keys.
func Equalbytes(a, b []byte) bool {
	return bytes.Equal(a, b)
}

// Equalof equivalence for comparable key types.
func Equalof[T comparable](a, b T) bool {
	return a == b
}

var crcisotab = crc64.MakeTable(crc64.ISO)

// Hashbytes digest byte-slice keys as CRC-64 ISO checksum.
func Hashbytes(k []byte) uint64 {
	return crc64.Checksum(k, crcisotab)
}

var hashseed = maphash.MakeSeed()

// Hashof digest comparable keys with the runtime hasher. The seed is
// fixed per process, digests are not stable across runs.
func Hashof[K comparable](k K) uint64 {
	return maphash.Comparable(hashseed, k)
}
