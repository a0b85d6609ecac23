package cyclometer

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bgallie/cyclometer/cryptors"
	"github.com/bgallie/cyclometer/cryptors/bitops"
)

// ErrNotPartition is returned when a set of cycles does not cover the
// alphabet exactly once.
var ErrNotPartition = errors.New("cycles do not partition the alphabet")

// Cycle is a closed loop of letters.  The first letter is repeated at the
// end, so [A G A] is the loop A -> G -> A.
type Cycle []cryptors.Letter

// Len is the number of distinct letters in the cycle.
func (c Cycle) Len() int {
	if len(c) == 0 {
		return 0
	}
	return len(c) - 1
}

func (c Cycle) Letters() string {
	var output strings.Builder
	for _, l := range c {
		output.WriteByte(l.Byte())
	}
	return output.String()
}

func (c Cycle) String() string {
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = l.String()
	}
	return strings.Join(parts, " -> ")
}

// Structure is the cycle decomposition of a permutation of the alphabet.
type Structure struct {
	Cycles []Cycle
}

// Decompose splits p into cycles.  Letters are taken in increasing order;
// each letter not yet placed starts a new cycle that follows p until it
// returns to its start.
func Decompose(p cryptors.Permutation) (Structure, error) {
	var s Structure
	if err := p.Valid(); err != nil {
		return s, err
	}
	var placed uint32
	for start := bitops.First(placed); start >= 0; start = bitops.First(placed) {
		first := cryptors.Letter(start)
		cycle := Cycle{first}
		placed = bitops.SetBit(placed, start)
		for current := p[first]; current != first; current = p[current] {
			cycle = append(cycle, current)
			placed = bitops.SetBit(placed, int(current))
		}
		s.Cycles = append(s.Cycles, append(cycle, first))
	}
	return s, nil
}

// Lengths returns the length of each cycle in order.
func (s Structure) Lengths() []int {
	lengths := make([]int, len(s.Cycles))
	for i, c := range s.Cycles {
		lengths[i] = c.Len()
	}
	return lengths
}

// Sum of the cycle lengths; 26 for every valid structure.
func (s Structure) Sum() int {
	sum := 0
	for _, c := range s.Cycles {
		sum += c.Len()
	}
	return sum
}

// Sorted returns a copy with the cycles ordered by their first letter.
func (s Structure) Sorted() Structure {
	cycles := make([]Cycle, len(s.Cycles))
	copy(cycles, s.Cycles)
	sort.SliceStable(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return Structure{Cycles: cycles}
}

// Characteristic is the cycle lengths in decreasing order, e.g. "9 9 4 4".
// Rotor settings with the same characteristic cannot be told apart by the
// cycle lengths alone.
func (s Structure) Characteristic() string {
	lengths := s.Lengths()
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
	parts := make([]string, len(lengths))
	for i, l := range lengths {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, " ")
}

// Validate checks that every cycle is closed and that every letter appears
// in exactly one cycle.
func (s Structure) Validate() error {
	var placed uint32
	for i, c := range s.Cycles {
		if len(c) < 2 || c[0] != c[len(c)-1] {
			return fmt.Errorf("%w: cycle %d (%s) is not closed", ErrNotPartition, i+1, c.Letters())
		}
		for _, l := range c[:len(c)-1] {
			if bitops.GetBit(placed, int(l)) {
				return fmt.Errorf("%w: %s appears twice", ErrNotPartition, l)
			}
			placed = bitops.SetBit(placed, int(l))
		}
	}
	if placed != bitops.Full {
		return fmt.Errorf("%w: %d letters missing", ErrNotPartition, cryptors.AlphabetSize-bitops.Count(placed))
	}
	return nil
}

// Permutation rebuilds the mapping the cycles describe.
func (s Structure) Permutation() (cryptors.Permutation, error) {
	var p cryptors.Permutation
	if err := s.Validate(); err != nil {
		return p, err
	}
	for _, c := range s.Cycles {
		for i := 0; i < len(c)-1; i++ {
			p[c[i]] = c[i+1]
		}
	}
	return p, nil
}

func (s Structure) String() string {
	var output strings.Builder
	for _, c := range s.Cycles {
		output.WriteString("(")
		output.WriteString(c.Letters())
		output.WriteString(")")
	}
	return output.String()
}
