package cyclometer_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgallie/cyclometer/cryptors"
	"github.com/bgallie/cyclometer/cryptors/cyclometer"
	"github.com/bgallie/cyclometer/cryptors/rotor"
	"github.com/bgallie/cyclometer/cryptors/stepping"
)

func TestSweep(t *testing.T) {
	cfg := cyclometer.SweepConfig{
		Orders:    []rotor.Order{order(t, "I-II-III"), order(t, "III-I-II")},
		Positions: []stepping.Positions{positions(t, "AAA"), positions(t, "FEV")},
		Reflector: "B",
		Procedure: cyclometer.ProcedureComposed,
		Workers:   3,
	}
	entries, err := cyclometer.Sweep(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	type card struct {
		Order, Positions, Characteristic string
	}
	got := make([]card, len(entries))
	for i, e := range entries {
		got[i] = card{e.Order, e.Positions.String(), e.Structure.Characteristic()}
	}
	assert.Equal(t, "9 9 4 4", got[0].Characteristic)
	assert.Equal(t, "10 10 3 3", got[3].Characteristic)
	want := []card{
		{"I-II-III", "AAA", got[0].Characteristic},
		{"I-II-III", "FEV", got[1].Characteristic},
		{"III-I-II", "AAA", got[2].Characteristic},
		{"III-I-II", "FEV", got[3].Characteristic},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}

	// Each card matches a direct computation.
	for _, e := range entries {
		o, err := rotor.ParseOrder(e.Order)
		require.NoError(t, err)
		c, err := cyclometer.New(o, "B", cyclometer.WithProcedure(cyclometer.ProcedureComposed))
		require.NoError(t, err)
		s, err := c.Structure(e.Positions)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(s, e.Structure))
	}
}

func TestSweepDefaults(t *testing.T) {
	entries, err := cyclometer.Sweep(context.Background(), cyclometer.SweepConfig{
		Positions: []stepping.Positions{positions(t, "AAA")},
		Reflector: "A",
	})
	require.NoError(t, err)
	require.Len(t, entries, 6)
	for i, o := range rotor.Orders() {
		assert.Equal(t, o.String(), entries[i].Order)
		assert.NoError(t, entries[i].Structure.Validate())
	}
}

func TestSweepSpansChunks(t *testing.T) {
	all := stepping.All()[:2*26*26+5]
	entries, err := cyclometer.Sweep(context.Background(), cyclometer.SweepConfig{
		Orders:    []rotor.Order{order(t, "II-I-III")},
		Positions: all,
		Reflector: "B",
		Workers:   4,
	})
	require.NoError(t, err)
	require.Len(t, entries, len(all))
	for i, e := range entries {
		assert.Equal(t, all[i], e.Positions)
		assert.Equal(t, 26, e.Structure.Sum())
	}
}

func TestSweepErrors(t *testing.T) {
	_, err := cyclometer.Sweep(context.Background(), cyclometer.SweepConfig{Reflector: "Q"})
	assert.ErrorIs(t, err, cryptors.ErrConfiguration)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = cyclometer.Sweep(ctx, cyclometer.SweepConfig{Reflector: "B"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGroupByCharacteristic(t *testing.T) {
	mk := func(o, p string, cycles ...string) cyclometer.Entry {
		s := cyclometer.Structure{}
		for _, c := range cycles {
			s.Cycles = append(s.Cycles, cycle(c))
		}
		return cyclometer.Entry{Order: o, Positions: positions(t, p), Structure: s}
	}
	a := mk("I-II-III", "AAA", "ACIKETMLXA", "BGPDOFWHQB", "JNVUJ", "RYSZR")
	b := mk("III-I-II", "FEV", "AXZEYCIDOQA", "BHKB", "FTJSWLRPMUF", "GNVG")
	c := mk("II-I-III", "BBB", "ACIKETMLXA", "BGPDOFWHQB", "JNVUJ", "RYSZR")

	groups := cyclometer.GroupByCharacteristic([]cyclometer.Entry{a, b, c})
	require.Len(t, groups, 2)
	assert.Equal(t, "10 10 3 3", groups[0].Characteristic)
	assert.Len(t, groups[0].Entries, 1)
	assert.Equal(t, "9 9 4 4", groups[1].Characteristic)
	assert.Equal(t, []string{"I-II-III", "II-I-III"},
		[]string{groups[1].Entries[0].Order, groups[1].Entries[1].Order})

	assert.Empty(t, cyclometer.GroupByCharacteristic(nil))
}
