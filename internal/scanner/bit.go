package scanner

import "math/bits"

// Word-level bit helpers used by the index builder. All bitmaps are
// LSB-first: bit i of a word covers byte offset wordBase+i.

// clearRightmost removes the rightmost set bit of x.
func clearRightmost(x uint64) uint64 {
	return x & (x - 1)
}

// extractRightmost isolates the rightmost set bit of x.
func extractRightmost(x uint64) uint64 {
	return x & -x
}

// smearRightmost sets every bit from position 0 through the rightmost set
// bit of x, inclusive. smearRightmost(0b_1110_1000) == 0b_0000_1111.
func smearRightmost(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	return x ^ (x - 1)
}

// leadingOnes counts the consecutive set bits of x ending just below bit
// position pos, walking downward. pos is in [1, 64].
func leadingOnes(x uint64, pos int) int {
	return bits.LeadingZeros64(^(x << (64 - uint(pos))))
}
