// Package reflector holds the fixed, self-inverse substitution that turns
// the signal around at the far end of the rotor stack.
package reflector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bgallie/cyclometer/cryptors"
	"github.com/bgallie/cyclometer/cryptors/bitops"
)

type Reflector struct {
	ID    string
	table cryptors.Permutation
}

// New builds a reflector from a 26 letter table.  The table must be a
// bijection, its own inverse, and may not map any letter onto itself.
func New(id, table string) (*Reflector, error) {
	p, err := cryptors.ParsePermutation(table)
	if err != nil {
		return nil, fmt.Errorf("reflector %s: %w", id, err)
	}
	if !p.IsInvolution() {
		return nil, fmt.Errorf("reflector %s: %w: table %s is not self-inverse", id, cryptors.ErrConfiguration, p)
	}
	if fp := p.FixedPoints(); len(fp) != 0 {
		return nil, fmt.Errorf("reflector %s: %w: %s reflects onto itself", id, cryptors.ErrConfiguration, fp[0])
	}
	return &Reflector{ID: id, table: p}, nil
}

// FromPairs builds a reflector from thirteen letter pairs such as "AY BR CU ...".
func FromPairs(id, pairs string) (*Reflector, error) {
	var table [cryptors.AlphabetSize]byte
	var used uint32
	for _, pair := range strings.Fields(pairs) {
		if len(pair) != 2 {
			return nil, fmt.Errorf("reflector %s: %w: bad pair %q", id, cryptors.ErrConfiguration, pair)
		}
		a, okA := cryptors.ToLetter(pair[0])
		b, okB := cryptors.ToLetter(pair[1])
		if !okA || !okB || a == b || bitops.GetBit(used, int(a)) || bitops.GetBit(used, int(b)) {
			return nil, fmt.Errorf("reflector %s: %w: bad pair %q", id, cryptors.ErrConfiguration, pair)
		}
		used = bitops.SetBit(bitops.SetBit(used, int(a)), int(b))
		table[a], table[b] = b.Byte(), a.Byte()
	}
	if used != bitops.Full {
		return nil, fmt.Errorf("reflector %s: %w: pairs cover %d of %d letters",
			id, cryptors.ErrConfiguration, bitops.Count(used), cryptors.AlphabetSize)
	}
	return New(id, string(table[:]))
}

func (r *Reflector) Reflect(l cryptors.Letter) cryptors.Letter {
	return r.table[l]
}

func (r *Reflector) Table() cryptors.Permutation {
	return r.table
}

var variants = map[string]*Reflector{
	"A": mustFromPairs("A", "AE BJ CM DZ FL GY HX IV KW NO PQ RU ST"),
	"B": mustFromPairs("B", "AY BR CU DH EQ FS GL IP JX KN MO TZ VW"),
}

func mustFromPairs(id, pairs string) *Reflector {
	r, err := FromPairs(id, pairs)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the reflector variant with the given id.
func Lookup(id string) (*Reflector, error) {
	r, ok := variants[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown reflector %q (choose from %s)",
			cryptors.ErrConfiguration, id, strings.Join(IDs(), ", "))
	}
	return r, nil
}

func IDs() []string {
	ids := make([]string, 0, len(variants))
	for id := range variants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
