// Package conv provides checked integer conversions for automaton state IDs.
//
// State IDs are 32-bit. Arenas are indexed by int, so every time a slice
// length becomes an ID it goes through IntToUint32. Overflow means an
// automaton with more than 2^32 states, which is a programming error rather
// than bad input, so the helpers panic instead of returning an error.
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Compare as uint so the check also holds where int is 32 bits wide.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
