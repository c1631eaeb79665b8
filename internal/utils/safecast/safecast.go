// Package safecast implements functions to safely cast types to avoid panics
package safecast

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
	"github.com/spf13/cast"
)

// Uint64ToInt safely converts a uint64 to int using cast and checks for overflow
func Uint64ToInt(value uint64) (int, error) {
	if value > math.MaxInt {
		return 0, fmt.Errorf("value %d exceeds int range", value)
	}

	return cast.ToIntE(value)
}

// IntToUint64 safely converts an int to uint64 using cast and checks for sign
func IntToUint64(value int) (uint64, error) {
	if value < 0 {
		return 0, fmt.Errorf("value %d is negative, cannot convert to uint64", value)
	}

	return cast.ToUint64E(value)
}

// Uint256ToInt converts a 256 bit word to int, failing when it does not fit
func Uint256ToInt(value *uint256.Int) (int, error) {
	if !value.IsUint64() {
		return 0, fmt.Errorf("value %s exceeds int range", value.Hex())
	}

	return Uint64ToInt(value.Uint64())
}

// Uint256ToUint64 converts a 256 bit word to uint64, saturating at math.MaxUint64
func Uint256ToUint64(value *uint256.Int) uint64 {
	if !value.IsUint64() {
		return math.MaxUint64
	}

	return value.Uint64()
}
