package machine

import (
	"github.com/bgallie/cyclometer/cryptors"
	"github.com/bgallie/cyclometer/cryptors/stepping"
)

// Press describes one key press of a Session.
type Press struct {
	In     byte
	Out    byte
	Before stepping.Positions
	After  stepping.Positions
}

// Session types a stream of characters on a Machine, keeping the rotor
// positions between calls.  A Session is not safe for concurrent use; give
// each goroutine its own.
type Session struct {
	machine   *Machine
	start     stepping.Positions
	positions stepping.Positions
	trace     func(Press)
}

func (m *Machine) NewSession(start stepping.Positions) *Session {
	return &Session{machine: m, start: start, positions: start}
}

// OnPress registers fn to be called after every letter key press.
func (s *Session) OnPress(fn func(Press)) {
	s.trace = fn
}

// Press enciphers b if it is a letter.  Other characters are returned
// unchanged with false, and the rotors stay where they are.
func (s *Session) Press(b byte) (byte, bool) {
	l, ok := cryptors.ToLetter(b)
	if !ok {
		return b, false
	}
	before := s.positions
	l, s.positions = s.machine.EncryptLetter(l, s.positions)
	if s.trace != nil {
		s.trace(Press{In: b, Out: l.Byte(), Before: before, After: s.positions})
	}
	return l.Byte(), true
}

// Type enciphers p in place and returns the number of letters typed.
func (s *Session) Type(p []byte) int {
	n := 0
	for i := range p {
		var ok bool
		if p[i], ok = s.Press(p[i]); ok {
			n++
		}
	}
	return n
}

func (s *Session) Positions() stepping.Positions {
	return s.positions
}

// Reset puts the rotors back to the session's start positions.
func (s *Session) Reset() {
	s.positions = s.start
}
