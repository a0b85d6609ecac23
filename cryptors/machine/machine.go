// Package machine composes rotors, reflector, plugboard and the stepping
// rule into a three rotor cipher machine.
//
// A Machine holds only read-only configuration.  The rotor positions are
// owned by the caller and threaded through every call, so one Machine may
// serve any number of concurrent sessions.
package machine

import (
	"fmt"

	"github.com/bgallie/cyclometer/cryptors"
	"github.com/bgallie/cyclometer/cryptors/plugboard"
	"github.com/bgallie/cyclometer/cryptors/reflector"
	"github.com/bgallie/cyclometer/cryptors/rotor"
	"github.com/bgallie/cyclometer/cryptors/stepping"
)

type Machine struct {
	order     rotor.Order
	reflector *reflector.Reflector
	plugboard *plugboard.Plugboard
}

// New checks the whole configuration before returning a Machine.  A nil
// plugboard is the identity plugboard.
func New(order rotor.Order, reflectorID string, pb *plugboard.Plugboard) (*Machine, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	r, err := reflector.Lookup(reflectorID)
	if err != nil {
		return nil, err
	}
	if pb == nil {
		pb = plugboard.Identity()
	}
	return &Machine{order: order, reflector: r, plugboard: pb}, nil
}

func (m *Machine) Order() rotor.Order {
	return m.order
}

func (m *Machine) Reflector() *reflector.Reflector {
	return m.reflector
}

func (m *Machine) Plugboard() *plugboard.Plugboard {
	return m.plugboard
}

// Step returns the positions the rotors move to when a key is pressed.
func (m *Machine) Step(p stepping.Positions) stepping.Positions {
	return stepping.Step(p, m.order.Middle.Notch, m.order.Right.Notch)
}

// Substitute sends one letter through the machine with the rotors held at
// p.  No rotor moves.
func (m *Machine) Substitute(l cryptors.Letter, p stepping.Positions) cryptors.Letter {
	c := m.plugboard.Apply(l)
	c = m.order.Right.ApplyF(c, p.Right)
	c = m.order.Middle.ApplyF(c, p.Middle)
	c = m.order.Left.ApplyF(c, p.Left)
	c = m.reflector.Reflect(c)
	c = m.order.Left.ApplyG(c, p.Left)
	c = m.order.Middle.ApplyG(c, p.Middle)
	c = m.order.Right.ApplyG(c, p.Right)
	return m.plugboard.Apply(c)
}

// EncryptLetter presses one key.  The rotors step first and the letter is
// enciphered at the new positions, which are returned with the result.
func (m *Machine) EncryptLetter(l cryptors.Letter, p stepping.Positions) (cryptors.Letter, stepping.Positions) {
	next := m.Step(p)
	return m.Substitute(l, next), next
}

// EncryptString enciphers every letter of text starting from p.  Letters
// come back in upper case; anything else is copied through and does not
// move the rotors.  Decryption is the same operation from the same start.
func (m *Machine) EncryptString(text string, p stepping.Positions) (string, stepping.Positions) {
	out := []byte(text)
	for i := range out {
		l, ok := cryptors.ToLetter(out[i])
		if !ok {
			continue
		}
		l, p = m.EncryptLetter(l, p)
		out[i] = l.Byte()
	}
	return string(out), p
}

func (m *Machine) String() string {
	return fmt.Sprintf("rotors %s, reflector %s, plugboard [%s]", m.order, m.reflector.ID, m.plugboard)
}
