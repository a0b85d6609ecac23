// Package stepping advances the rotor positions on each key press.
package stepping

import (
	"fmt"
	"strings"

	"github.com/bgallie/cyclometer/cryptors"
)

// Positions is the letter showing in each rotor window.  It is a value:
// every operation takes a snapshot and returns a new one.
type Positions struct {
	Left   cryptors.Letter
	Middle cryptors.Letter
	Right  cryptors.Letter
}

// Count is the number of distinct Positions.
const Count = cryptors.AlphabetSize * cryptors.AlphabetSize * cryptors.AlphabetSize

// ParsePositions reads the three window letters, left to right, e.g. "AAA".
// Blanks and dashes between the letters are ignored.
func ParsePositions(s string) (Positions, error) {
	var p Positions
	letters := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == ',' {
			return -1
		}
		return r
	}, s)
	if len(letters) != 3 {
		return p, fmt.Errorf("%w: positions %q must be three letters", cryptors.ErrConfiguration, s)
	}
	var l [3]cryptors.Letter
	for i := range l {
		v, ok := cryptors.ToLetter(letters[i])
		if !ok {
			return p, fmt.Errorf("%w: positions %q must be three letters", cryptors.ErrConfiguration, s)
		}
		l[i] = v
	}
	p.Left, p.Middle, p.Right = l[0], l[1], l[2]
	return p, nil
}

// FromIndex returns the idx-th position counting AAA, AAB, ... ZZZ.
func FromIndex(idx int) Positions {
	return Positions{
		Left:   cryptors.Letter(idx / (cryptors.AlphabetSize * cryptors.AlphabetSize) % cryptors.AlphabetSize),
		Middle: cryptors.Letter(idx / cryptors.AlphabetSize % cryptors.AlphabetSize),
		Right:  cryptors.Letter(idx % cryptors.AlphabetSize),
	}
}

// All returns every position from AAA to ZZZ.
func All() []Positions {
	all := make([]Positions, Count)
	for i := range all {
		all[i] = FromIndex(i)
	}
	return all
}

func (p Positions) String() string {
	return string([]byte{p.Left.Byte(), p.Middle.Byte(), p.Right.Byte()})
}

// Step returns the positions after one key press.  Every test is made
// against the positions before the press:
//
//  1. the left rotor turns when the middle rotor shows its notch,
//  2. the middle rotor turns when the right rotor shows its notch or when
//     the middle rotor itself shows its notch (the double step),
//  3. the right rotor always turns.
func Step(p Positions, midNotch, rightNotch cryptors.Letter) Positions {
	next := p
	if p.Middle == midNotch {
		next.Left = p.Left.Add(1)
	}
	if p.Right == rightNotch || p.Middle == midNotch {
		next.Middle = p.Middle.Add(1)
	}
	next.Right = p.Right.Add(1)
	return next
}
