// Package bits implements the pure 64-bit word primitives the rest of the
// engine builds on: population count, lowest/highest set bit, and trailing
// zero count. Kept free of any chess-specific type so it can be tested in
// isolation against every bit pattern.
package bits

import "math/bits"

// LowestSetBit returns a word with only the lowest set bit of x, or 0 if x==0.
func LowestSetBit(x uint64) uint64 {
	return x & (-x)
}

// HighestSetBit returns a word with only the highest set bit of x, or 0 if x==0.
func HighestSetBit(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	return uint64(1) << (63 - bits.LeadingZeros64(x))
}

// CountTrailingZeroes returns 0..63 for nonzero x, and -1 for x==0.
func CountTrailingZeroes(x uint64) int {
	if x == 0 {
		return -1
	}
	return bits.TrailingZeros64(x)
}

// PopCount returns the number of set bits in x, 0..64.
func PopCount(x uint64) int {
	return bits.OnesCount64(x)
}
