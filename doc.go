// Package goring implement indexed linked-list containers, ordered
// and hashed maps and sets built over one shared element store.
//
// api:
//
// Interface specification and pluggable strategies, comparators,
// equality predicates and hashers, to access goring containers.
//
// dict:
//
// Hashed map and set. A power-of-two bucket table of position
// cursors over the element store, growing and shrinking with load,
// iterating in insertion order.
//
// lib:
//
// Convenience functions that can be used by other packages. Package
// shall not import packages other than golang's standard packages.
//
// llrb:
//
// A version of Left Leaning Red Black tree mapping keys to positions
// in the element store, keeping entries sorted for ordered maps and
// sets. Index resides entirely in memory, tree nodes held in a
// malloc arena.
//
// malloc:
//
// Custom memory management for index nodes.
//
// ring:
//
// The element store. A circular doubly-linked sequence around one
// sentinel node, with splice, merge, sort and unique algorithms
// moving nodes without copying values.
package goring
