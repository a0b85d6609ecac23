// rotor
package rotor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bgallie/cyclometer/cryptors"
)

// Rotor is a wired substitution wheel.  The inverse wiring is computed once
// when the rotor is built so both directions are simple table lookups.
type Rotor struct {
	ID      string
	Notch   cryptors.Letter
	wiring  cryptors.Permutation
	inverse cryptors.Permutation
}

func New(id, wiring string, notch byte) (*Rotor, error) {
	var r Rotor
	var err error
	r.ID = id
	r.wiring, err = cryptors.ParsePermutation(wiring)
	if err != nil {
		return nil, fmt.Errorf("rotor %s: %w", id, err)
	}
	n, ok := cryptors.ToLetter(notch)
	if !ok {
		return nil, fmt.Errorf("rotor %s: %w: notch %q is not a letter", id, cryptors.ErrConfiguration, notch)
	}
	r.Notch = n
	r.inverse = r.wiring.Inverse()
	return &r, nil
}

// ApplyF passes a letter through the rotor from the entry plate towards the
// reflector with the rotor turned offset positions.
func (r *Rotor) ApplyF(l, offset cryptors.Letter) cryptors.Letter {
	return r.wiring[l.Add(offset)].Sub(offset)
}

// ApplyG is the inverse of ApplyF for the same offset: the path from the
// reflector back to the entry plate.
func (r *Rotor) ApplyG(l, offset cryptors.Letter) cryptors.Letter {
	return r.inverse[l.Add(offset)].Sub(offset)
}

func (r *Rotor) Wiring() cryptors.Permutation {
	return r.wiring
}

func (r *Rotor) String() string {
	return fmt.Sprintf("rotor.New(%q, %q, '%s')", r.ID, r.wiring, r.Notch)
}

var catalog = map[string]*Rotor{
	"I":   mustNew("I", "EKMFLGDQVZNTOWYHXUSPAIBRCJ", 'Q'),
	"II":  mustNew("II", "AJDKSIRUXBLHWTMCQGZNPYFVOE", 'E'),
	"III": mustNew("III", "BDFHJLCPRTXVZNYEIWGAKMUSQO", 'V'),
}

func mustNew(id, wiring string, notch byte) *Rotor {
	r, err := New(id, wiring, notch)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the catalog rotor with the given id.
func Lookup(id string) (*Rotor, error) {
	r, ok := catalog[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown rotor %q (choose from %s)",
			cryptors.ErrConfiguration, id, strings.Join(IDs(), ", "))
	}
	return r, nil
}

// IDs returns the catalog rotor ids in numeral order.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) < len(ids[j])
		}
		return ids[i] < ids[j]
	})
	return ids
}
