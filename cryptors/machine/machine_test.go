package machine_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgallie/cyclometer/cryptors"
	"github.com/bgallie/cyclometer/cryptors/machine"
	"github.com/bgallie/cyclometer/cryptors/plugboard"
	"github.com/bgallie/cyclometer/cryptors/rotor"
	"github.com/bgallie/cyclometer/cryptors/stepping"
)

func newMachine(t *testing.T, order, reflectorID, pairs string) *machine.Machine {
	t.Helper()
	o, err := rotor.ParseOrder(order)
	require.NoError(t, err)
	pb, err := plugboard.Parse(pairs)
	require.NoError(t, err)
	m, err := machine.New(o, reflectorID, pb)
	require.NoError(t, err)
	return m
}

func positions(t *testing.T, s string) stepping.Positions {
	t.Helper()
	p, err := stepping.ParsePositions(s)
	require.NoError(t, err)
	return p
}

func TestEncryptLetterFromGroundSetting(t *testing.T) {
	tests := []struct {
		reflector string
		want      string
	}{
		{"B", "B"},
		{"A", "S"},
	}
	for _, tt := range tests {
		t.Run(tt.reflector, func(t *testing.T) {
			m := newMachine(t, "I-II-III", tt.reflector, "")
			start := positions(t, "AAA")
			c, next := m.EncryptLetter(0, start)
			assert.Equal(t, tt.want, c.String())
			assert.Equal(t, "AAB", next.String())
			assert.NotEqual(t, start, next)
		})
	}
}

func TestEncryptString(t *testing.T) {
	tests := []struct {
		name      string
		plugboard string
		plain     string
		cipher    string
		end       string
	}{
		{"repeated letter", "", "AAAAA", "BDZGO", "AAF"},
		{"passthrough", "", "HELLO WORLD", "ILBDA AMTAZ", "AAK"},
		{"lower case", "", "hello, world!", "ILBDA, AMTAZ!", "AAK"},
		{"plugboard", "AZ BY CX", "HELLOWORLD", "ILYDZZMTZA", "AAK"},
		{"no letters", "", "123 !?", "123 !?", "AAA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(t, "I-II-III", "B", tt.plugboard)
			got, end := m.EncryptString(tt.plain, positions(t, "AAA"))
			assert.Equal(t, tt.cipher, got)
			assert.Equal(t, tt.end, end.String())
		})
	}
}

func TestDecryptIsEncrypt(t *testing.T) {
	m := newMachine(t, "III-I-II", "A", "QW ER TY")
	start := positions(t, "QDV")
	cipher, _ := m.EncryptString("THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG", start)
	plain, _ := m.EncryptString(cipher, start)
	assert.Equal(t, "THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG", plain)
}

func TestReciprocity(t *testing.T) {
	for _, order := range rotor.Orders() {
		for _, rid := range []string{"A", "B"} {
			m, err := machine.New(order, rid, nil)
			require.NoError(t, err)
			for _, ps := range []string{"AAA", "ADU", "QEV", "ZZZ"} {
				p := positions(t, ps)
				for l := cryptors.Letter(0); l < cryptors.AlphabetSize; l++ {
					c, _ := m.EncryptLetter(l, p)
					assert.NotEqual(t, l, c, "%s %s %s: letter enciphered to itself", order, rid, ps)
					back, _ := m.EncryptLetter(c, p)
					assert.Equal(t, l, back, "%s %s %s", order, rid, ps)
				}
			}
		}
	}
}

func TestSubstituteDoesNotStep(t *testing.T) {
	m := newMachine(t, "I-II-III", "B", "")
	// The A key at AAA enciphers at AAB.
	assert.Equal(t, "B", m.Substitute(0, positions(t, "AAB")).String())
}

func TestEncryptLetterDoubleStep(t *testing.T) {
	m := newMachine(t, "I-II-III", "B", "")
	p := positions(t, "ADU")
	var seen []string
	for i := 0; i < 4; i++ {
		_, p = m.EncryptLetter(0, p)
		seen = append(seen, p.String())
	}
	assert.Equal(t, []string{"ADV", "AEW", "BFX", "BFY"}, seen)
}

func TestNewRejects(t *testing.T) {
	o, err := rotor.ParseOrder("I-II-III")
	require.NoError(t, err)

	_, err = machine.New(o, "C", nil)
	assert.ErrorIs(t, err, cryptors.ErrConfiguration)

	r, err := rotor.Lookup("I")
	require.NoError(t, err)
	_, err = machine.New(rotor.Order{Left: r, Middle: r, Right: o.Right}, "B", nil)
	assert.ErrorIs(t, err, cryptors.ErrConfiguration)

	twin, err := rotor.New("I", "EKMFLGDQVZNTOWYHXUSPAIBRCJ", 'Q')
	require.NoError(t, err)
	_, err = machine.New(rotor.Order{Left: r, Middle: twin, Right: o.Right}, "B", nil)
	assert.ErrorIs(t, err, cryptors.ErrConfiguration)

	_, err = machine.New(rotor.Order{}, "B", nil)
	assert.ErrorIs(t, err, cryptors.ErrConfiguration)
}

func TestConcurrentUse(t *testing.T) {
	m := newMachine(t, "I-II-III", "B", "")
	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = m.EncryptString("HELLO WORLD", stepping.Positions{})
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, "ILBDA AMTAZ", r)
	}
}

func TestString(t *testing.T) {
	m := newMachine(t, "II-I-III", "A", "AZ")
	assert.Equal(t, "rotors II-I-III, reflector A, plugboard [AZ]", m.String())
}
