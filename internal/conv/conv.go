// Package conv provides checked integer conversions for the engine.
//
// They panic on overflow: an out-of-range value here means a state graph or
// position counter outgrew its internal representation, which is a
// programming error rather than a matching failure.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms cannot overflow the check itself.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToRune converts n to a rune (int32).
// Panics if n does not fit.
func IntToRune(n int) rune {
	if n < math.MinInt32 || n > math.MaxInt32 {
		panic("integer overflow: int value out of rune range")
	}
	return rune(n)
}
