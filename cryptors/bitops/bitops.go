// bitops project bitops.go
package bitops

import "math/bits"

// The alphabet fits in a uint32, so sets of symbols (and of rotor slots) are
// kept as bit masks.

func SetBit(set uint32, bit uint) uint32 {
	return set | (1 << bit)
}

func GetBit(set uint32, bit uint) bool {
	return set&(1<<bit) != 0
}

// Count returns the number of bits set.
func Count(set uint32) int {
	return bits.OnesCount32(set)
}
