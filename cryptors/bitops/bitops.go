// bitops project bitops.go
//
// Letter sets are kept in the low 26 bits of a uint32, bit i standing for
// the i-th letter of the alphabet.
package bitops

import "math/bits"

// Full is the set holding every letter of the alphabet.
const Full uint32 = 1<<26 - 1

func SetBit(set uint32, bit int) uint32 {
	return set | (1 << uint(bit))
}

func ClrBit(set uint32, bit int) uint32 {
	return set &^ (1 << uint(bit))
}

func GetBit(set uint32, bit int) bool {
	return set&(1<<uint(bit)) != 0
}

// Count returns the number of letters in the set.
func Count(set uint32) int {
	return bits.OnesCount32(set)
}

// First returns the lowest letter not in set, or -1 if the set is full.
func First(set uint32) int {
	if set&Full == Full {
		return -1
	}
	return bits.TrailingZeros32(^set)
}
