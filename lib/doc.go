// Package lib provide small self-contained helpers that are not tied
// to any container algorithm, and shall not depend on anything other
// than the standard library.
package lib
