package api

import "errors"

// ErrorInvalidOperand operation cannot succeed because the supplied
// cursor does not belong to the receiving store. The operation aborts
// before mutating anything.
var ErrorInvalidOperand = errors.New("invalidOperand")

// ErrorKeyMissing operation cannot succeed because specified key is
// missing in the store.
var ErrorKeyMissing = errors.New("keyMissing")

// ErrorOutofMemory allocation cannot succeed because the arena has
// reached its configured capacity.
var ErrorOutofMemory = errors.New("outofmemory")
