package plugboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgallie/cyclometer/cryptors"
	"github.com/bgallie/cyclometer/cryptors/plugboard"
)

func TestIdentity(t *testing.T) {
	p := plugboard.Identity()
	for l := cryptors.Letter(0); l < cryptors.AlphabetSize; l++ {
		assert.Equal(t, l, p.Apply(l))
	}
	assert.True(t, p.IsInvolution())
	assert.Equal(t, "", p.String())
}

func TestParse(t *testing.T) {
	for _, s := range []string{"AZ BY CX", "az,by,cx", "A:Z B:Y C:X", "  AZ   BY CX "} {
		p, err := plugboard.Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, "AZ BY CX", p.String(), s)
		assert.Equal(t, cryptors.Letter(25), p.Apply(0))
		assert.Equal(t, cryptors.Letter(0), p.Apply(25))
		assert.Equal(t, cryptors.Letter(3), p.Apply(3))
		assert.True(t, p.IsInvolution())
	}

	p, err := plugboard.Parse("")
	require.NoError(t, err)
	assert.Equal(t, cryptors.Identity(), p.Table())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		pairs string
	}{
		{"self pair", "AA"},
		{"reused letter", "AB BC"},
		{"three letters", "ABC"},
		{"digit", "A1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := plugboard.Parse(tt.pairs)
			assert.ErrorIs(t, err, cryptors.ErrConfiguration)
		})
	}
}

func TestNewArbitraryBijection(t *testing.T) {
	shift, err := cryptors.ParsePermutation("BCDEFGHIJKLMNOPQRSTUVWXYZA")
	require.NoError(t, err)
	p, err := plugboard.New(shift)
	require.NoError(t, err)
	assert.False(t, p.IsInvolution())
	assert.Equal(t, cryptors.Letter(1), p.Apply(0))
	assert.Equal(t, "BCDEFGHIJKLMNOPQRSTUVWXYZA", p.String())

	bad := cryptors.Identity()
	bad[0] = 1
	_, err = plugboard.New(bad)
	assert.ErrorIs(t, err, cryptors.ErrConfiguration)
}
