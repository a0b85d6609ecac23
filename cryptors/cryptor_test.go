package cryptors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgallie/cyclometer/cryptors"
)

func TestToLetter(t *testing.T) {
	l, ok := cryptors.ToLetter('A')
	assert.True(t, ok)
	assert.Equal(t, cryptors.Letter(0), l)

	l, ok = cryptors.ToLetter('z')
	assert.True(t, ok)
	assert.Equal(t, cryptors.Letter(25), l)

	for _, b := range []byte{' ', '1', '!', '[', '@'} {
		_, ok = cryptors.ToLetter(b)
		assert.False(t, ok, "%q", b)
	}
}

func TestParseLetter(t *testing.T) {
	l, err := cryptors.ParseLetter("q")
	require.NoError(t, err)
	assert.Equal(t, "Q", l.String())

	for _, s := range []string{"", "AB", "7"} {
		_, err = cryptors.ParseLetter(s)
		assert.ErrorIs(t, err, cryptors.ErrConfiguration, s)
	}
}

func TestLetterArithmetic(t *testing.T) {
	assert.Equal(t, cryptors.Letter(1), cryptors.Letter(25).Add(2))
	assert.Equal(t, cryptors.Letter(24), cryptors.Letter(1).Sub(3))
	assert.Equal(t, cryptors.Letter(0), cryptors.Letter(13).Add(13))
	assert.Equal(t, byte('Z'), cryptors.Letter(25).Byte())
}

func TestParsePermutation(t *testing.T) {
	p, err := cryptors.ParsePermutation("EKMFLGDQVZNTOWYHXUSPAIBRCJ")
	require.NoError(t, err)
	assert.Equal(t, "EKMFLGDQVZNTOWYHXUSPAIBRCJ", p.String())
	assert.Equal(t, cryptors.Letter(4), p[0])

	inv := p.Inverse()
	for i := range p {
		assert.Equal(t, cryptors.Letter(i), inv[p[i]])
	}
	assert.False(t, p.IsInvolution())
}

func TestParsePermutationRejects(t *testing.T) {
	tests := []struct {
		name   string
		wiring string
	}{
		{"too short", "ABC"},
		{"repeated letter", "AACDEFGHIJKLMNOPQRSTUVWXYZ"},
		{"not a letter", "ABCDEFGHIJKLMNOPQRSTUVWXY1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cryptors.ParsePermutation(tt.wiring)
			assert.ErrorIs(t, err, cryptors.ErrConfiguration)
		})
	}
}

func TestIdentity(t *testing.T) {
	id := cryptors.Identity()
	assert.NoError(t, id.Valid())
	assert.True(t, id.IsInvolution())
	assert.Len(t, id.FixedPoints(), cryptors.AlphabetSize)
	assert.Equal(t, cryptors.Alphabet, id.String())
}

func TestValidOutOfRange(t *testing.T) {
	p := cryptors.Identity()
	p[3] = 26
	assert.ErrorIs(t, p.Valid(), cryptors.ErrConfiguration)
}
