// cryptor
package cryptors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bgallie/cyclometer/cryptors/bitops"
)

const (
	AlphabetSize = 26
	Alphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// ErrConfiguration is wrapped by every error caused by a bad rotor,
// reflector, plugboard or rotor order.  It is always reported before any
// letter is processed.
var ErrConfiguration = errors.New("configuration error")

// Letter is an index into the alphabet, 'A' == 0 ... 'Z' == 25.
type Letter int

// ToLetter converts an ASCII letter (either case) into a Letter.  The
// boolean is false for anything that is not a letter.
func ToLetter(b byte) (Letter, bool) {
	switch {
	case b >= 'A' && b <= 'Z':
		return Letter(b - 'A'), true
	case b >= 'a' && b <= 'z':
		return Letter(b - 'a'), true
	}
	return 0, false
}

// ParseLetter converts a one character string into a Letter.
func ParseLetter(s string) (Letter, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: %q is not a single letter", ErrConfiguration, s)
	}
	l, ok := ToLetter(s[0])
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a letter", ErrConfiguration, s)
	}
	return l, nil
}

// Add returns (l + n) mod 26.
func (l Letter) Add(n Letter) Letter {
	return Letter(mod(int(l) + int(n)))
}

// Sub returns (l - n) mod 26.
func (l Letter) Sub(n Letter) Letter {
	return Letter(mod(int(l) - int(n)))
}

func (l Letter) Byte() byte {
	return Alphabet[mod(int(l))]
}

func (l Letter) String() string {
	return string(l.Byte())
}

func mod(v int) int {
	v %= AlphabetSize
	if v < 0 {
		v += AlphabetSize
	}
	return v
}

// Permutation is a mapping of the alphabet onto itself stored as a fixed
// length table.  Rotor wirings, reflectors and plugboards are all
// permutations.
type Permutation [AlphabetSize]Letter

// Identity returns the permutation that maps every letter onto itself.
func Identity() Permutation {
	var p Permutation
	for i := range p {
		p[i] = Letter(i)
	}
	return p
}

// ParsePermutation reads a wiring string such as "EKMFLGDQVZNTOWYHXUSPAIBRCJ"
// where the i-th character is the image of the i-th letter.
func ParsePermutation(wiring string) (Permutation, error) {
	var p Permutation
	if len(wiring) != AlphabetSize {
		return p, fmt.Errorf("%w: wiring %q must have %d letters", ErrConfiguration, wiring, AlphabetSize)
	}
	for i := 0; i < AlphabetSize; i++ {
		l, ok := ToLetter(wiring[i])
		if !ok {
			return p, fmt.Errorf("%w: wiring %q contains %q", ErrConfiguration, wiring, wiring[i])
		}
		p[i] = l
	}
	return p, p.Valid()
}

// Valid reports an error unless p is a bijection of the alphabet.
func (p Permutation) Valid() error {
	var seen uint32
	for i, v := range p {
		if v < 0 || v >= AlphabetSize {
			return fmt.Errorf("%w: %d maps outside the alphabet (%d)", ErrConfiguration, i, v)
		}
		if bitops.GetBit(seen, int(v)) {
			return fmt.Errorf("%w: %s is the image of more than one letter", ErrConfiguration, v)
		}
		seen = bitops.SetBit(seen, int(v))
	}
	return nil
}

// Inverse returns q such that q[p[x]] == x.  p must be valid.
func (p Permutation) Inverse() Permutation {
	var q Permutation
	for i, v := range p {
		q[v] = Letter(i)
	}
	return q
}

// IsInvolution reports whether p is its own inverse.
func (p Permutation) IsInvolution() bool {
	for i, v := range p {
		if p[v] != Letter(i) {
			return false
		}
	}
	return true
}

// FixedPoints returns the letters that p maps onto themselves.
func (p Permutation) FixedPoints() []Letter {
	var fp []Letter
	for i, v := range p {
		if v == Letter(i) {
			fp = append(fp, v)
		}
	}
	return fp
}

func (p Permutation) String() string {
	var output strings.Builder
	for _, v := range p {
		output.WriteByte(v.Byte())
	}
	return output.String()
}
