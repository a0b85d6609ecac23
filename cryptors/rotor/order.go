package rotor

import (
	"fmt"
	"strings"

	"github.com/bgallie/cyclometer/cryptors"
)

// Order is the left, middle and right rotor placed in the machine.
type Order struct {
	Left   *Rotor
	Middle *Rotor
	Right  *Rotor
}

// NewOrder builds an Order from three distinct catalog rotor ids.
func NewOrder(left, middle, right string) (Order, error) {
	var o Order
	ids := [3]string{left, middle, right}
	rotors := [3]*Rotor{}
	for i, id := range ids {
		r, err := Lookup(id)
		if err != nil {
			return o, err
		}
		for _, prev := range rotors[:i] {
			if prev.ID == r.ID {
				return o, fmt.Errorf("%w: rotor %s used more than once in %s-%s-%s",
					cryptors.ErrConfiguration, r.ID, left, middle, right)
			}
		}
		rotors[i] = r
	}
	o.Left, o.Middle, o.Right = rotors[0], rotors[1], rotors[2]
	return o, nil
}

// ParseOrder reads an order written as "I-II-III", "I,II,III" or "I II III".
func ParseOrder(s string) (Order, error) {
	f := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == ',' || r == ' ' || r == '\t'
	})
	if len(f) != 3 {
		return Order{}, fmt.Errorf("%w: rotor order %q must name three rotors", cryptors.ErrConfiguration, s)
	}
	return NewOrder(f[0], f[1], f[2])
}

// Validate rejects zero value orders and orders that repeat a rotor id.
func (o Order) Validate() error {
	if o.Left == nil || o.Middle == nil || o.Right == nil {
		return fmt.Errorf("%w: incomplete rotor order", cryptors.ErrConfiguration)
	}
	if o.Left.ID == o.Middle.ID || o.Left.ID == o.Right.ID || o.Middle.ID == o.Right.ID {
		return fmt.Errorf("%w: rotor order %s repeats a rotor", cryptors.ErrConfiguration, o)
	}
	return nil
}

func (o Order) String() string {
	name := func(r *Rotor) string {
		if r == nil {
			return "?"
		}
		return r.ID
	}
	return name(o.Left) + "-" + name(o.Middle) + "-" + name(o.Right)
}

// Orders returns every order of three distinct catalog rotors.
func Orders() []Order {
	ids := IDs()
	var orders []Order
	for _, l := range ids {
		for _, m := range ids {
			for _, r := range ids {
				if o, err := NewOrder(l, m, r); err == nil {
					orders = append(orders, o)
				}
			}
		}
	}
	return orders
}
