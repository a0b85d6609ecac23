// Package cyclometer reproduces Rejewski's cycle analysis of the doubled
// message key indicator.
//
// From a fixed ground setting each letter is typed, two dummy keys are
// pressed, and the letter is typed again.  Reading the machine's fourth
// output as a function of the typed letter gives a permutation of the
// alphabet whose cycle structure depends only on the rotor order, the
// ground setting and the reflector.
package cyclometer

import (
	"fmt"
	"strings"

	"github.com/bgallie/cyclometer/cryptors"
	"github.com/bgallie/cyclometer/cryptors/machine"
	"github.com/bgallie/cyclometer/cryptors/rotor"
	"github.com/bgallie/cyclometer/cryptors/stepping"
)

// Procedure selects which permutation is read off the four presses.
type Procedure int

const (
	// ProcedureRepeated maps the typed letter to the fourth output.
	ProcedureRepeated Procedure = iota
	// ProcedureComposed maps the first output to the fourth output, the
	// product of the first and fourth substitutions.
	ProcedureComposed
)

// DummyKey is pressed twice between the first and fourth press.
const DummyKey cryptors.Letter = 0

func (p Procedure) String() string {
	switch p {
	case ProcedureRepeated:
		return "repeated"
	case ProcedureComposed:
		return "composed"
	}
	return fmt.Sprintf("Procedure(%d)", int(p))
}

// ParseProcedure accepts "repeated" (also "reference") and "composed".
func ParseProcedure(s string) (Procedure, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "repeated", "reference":
		return ProcedureRepeated, nil
	case "composed", "product":
		return ProcedureComposed, nil
	}
	return 0, fmt.Errorf("%w: unknown procedure %q", cryptors.ErrConfiguration, s)
}

type options struct {
	procedure Procedure
}

type Option func(*options)

// WithProcedure picks the permutation to analyse.  The default is
// ProcedureRepeated.
func WithProcedure(p Procedure) Option {
	return func(o *options) {
		o.procedure = p
	}
}

// Cyclometer computes cycle structures for one rotor order and reflector.
// It is safe for concurrent use.
type Cyclometer struct {
	machine   *machine.Machine
	procedure Procedure
}

// New rejects bad configuration before any computation.  The plugboard is
// always the identity.
func New(order rotor.Order, reflectorID string, opts ...Option) (*Cyclometer, error) {
	o := options{procedure: ProcedureRepeated}
	for _, opt := range opts {
		opt(&o)
	}
	if o.procedure != ProcedureRepeated && o.procedure != ProcedureComposed {
		return nil, fmt.Errorf("%w: unknown procedure %s", cryptors.ErrConfiguration, o.procedure)
	}
	m, err := machine.New(order, reflectorID, nil)
	if err != nil {
		return nil, err
	}
	return &Cyclometer{machine: m, procedure: o.procedure}, nil
}

func (c *Cyclometer) Machine() *machine.Machine {
	return c.machine
}

func (c *Cyclometer) Procedure() Procedure {
	return c.procedure
}

// indicator types l, the dummy key twice, and l again, every time from the
// ground setting start.  It returns the first and fourth outputs.
func (c *Cyclometer) indicator(l cryptors.Letter, start stepping.Positions) (first, fourth cryptors.Letter) {
	first, p1 := c.machine.EncryptLetter(l, start)
	_, p2 := c.machine.EncryptLetter(DummyKey, p1)
	_, p3 := c.machine.EncryptLetter(DummyKey, p2)
	fourth, _ = c.machine.EncryptLetter(l, p3)
	return first, fourth
}

// Mapping returns the permutation read off the indicator presses from the
// ground setting start.
func (c *Cyclometer) Mapping(start stepping.Positions) cryptors.Permutation {
	var p cryptors.Permutation
	for l := cryptors.Letter(0); l < cryptors.AlphabetSize; l++ {
		first, fourth := c.indicator(l, start)
		switch c.procedure {
		case ProcedureComposed:
			p[first] = fourth
		default:
			p[l] = fourth
		}
	}
	return p
}

// Structure returns the cycle decomposition of Mapping(start).
func (c *Cyclometer) Structure(start stepping.Positions) (Structure, error) {
	return Decompose(c.Mapping(start))
}

// Compute is New followed by Structure with the default procedure.
func Compute(order rotor.Order, start stepping.Positions, reflectorID string) (Structure, error) {
	c, err := New(order, reflectorID)
	if err != nil {
		return Structure{}, err
	}
	return c.Structure(start)
}
