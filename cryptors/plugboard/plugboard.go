// Package plugboard is the operator configurable substitution applied on the
// way into and out of the rotor stack.
package plugboard

import (
	"fmt"
	"strings"

	"github.com/bgallie/cyclometer/cryptors"
	"github.com/bgallie/cyclometer/cryptors/bitops"
)

type Plugboard struct {
	table cryptors.Permutation
}

// Identity returns a plugboard with no cables plugged in.
func Identity() *Plugboard {
	return &Plugboard{table: cryptors.Identity()}
}

// New accepts any bijection.  Only involutions keep the machine reciprocal;
// see IsInvolution.
func New(table cryptors.Permutation) (*Plugboard, error) {
	if err := table.Valid(); err != nil {
		return nil, fmt.Errorf("plugboard: %w", err)
	}
	return &Plugboard{table: table}, nil
}

// Parse builds a plugboard from cable pairs such as "AZ BY CX".  Each letter
// may appear in at most one pair.  An empty string is the identity.
func Parse(pairs string) (*Plugboard, error) {
	table := cryptors.Identity()
	var used uint32
	for _, pair := range strings.Fields(strings.ReplaceAll(pairs, ",", " ")) {
		if len(pair) == 3 && pair[1] == ':' {
			pair = pair[:1] + pair[2:]
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("plugboard: %w: bad pair %q", cryptors.ErrConfiguration, pair)
		}
		a, okA := cryptors.ToLetter(pair[0])
		b, okB := cryptors.ToLetter(pair[1])
		if !okA || !okB || a == b {
			return nil, fmt.Errorf("plugboard: %w: bad pair %q", cryptors.ErrConfiguration, pair)
		}
		if bitops.GetBit(used, int(a)) || bitops.GetBit(used, int(b)) {
			return nil, fmt.Errorf("plugboard: %w: letter of %q already plugged", cryptors.ErrConfiguration, pair)
		}
		used = bitops.SetBit(bitops.SetBit(used, int(a)), int(b))
		table[a], table[b] = b, a
	}
	return &Plugboard{table: table}, nil
}

func (p *Plugboard) Apply(l cryptors.Letter) cryptors.Letter {
	return p.table[l]
}

func (p *Plugboard) IsInvolution() bool {
	return p.table.IsInvolution()
}

func (p *Plugboard) Table() cryptors.Permutation {
	return p.table
}

// String renders the plugged pairs, "AZ BY CX".  Letters that are not part
// of a two letter swap are omitted, so a non-involution renders its full table.
func (p *Plugboard) String() string {
	if !p.IsInvolution() {
		return p.table.String()
	}
	var pairs []string
	for i, v := range p.table {
		if cryptors.Letter(i) < v {
			pairs = append(pairs, cryptors.Letter(i).String()+v.String())
		}
	}
	return strings.Join(pairs, " ")
}
