// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package internal

import (
	"math/bits"
)

// NextPowerOfTwo returns the smallest power of two greater than or equal to value.
// Zero rounds up to one, and values above 1<<63 saturate at 1<<63.
func NextPowerOfTwo(value uint64) uint64 {
	switch {
	case value <= 1:
		return 1
	case value > 1<<63:
		return 1 << 63
	}
	return 1 << bits.Len64(value-1)
}

// IsPowerOfTwo returns true if value has exactly one bit set.
func IsPowerOfTwo(value uint64) bool {
	return value != 0 && value&(value-1) == 0
}
