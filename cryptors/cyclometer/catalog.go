package cyclometer

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/bgallie/cyclometer/cryptors/rotor"
	"github.com/bgallie/cyclometer/cryptors/stepping"
)

// Entry is one card of the catalog: a rotor order and ground setting with
// the cycle structure they produce.
type Entry struct {
	Order     string
	Positions stepping.Positions
	Structure Structure
}

// Group collects the entries that share a characteristic.
type Group struct {
	Characteristic string
	Entries        []Entry
}

// sweepChunk is the number of ground settings one worker takes at a time,
// one full turn of the middle and right rotors.
const sweepChunk = 26 * 26

// SweepConfig describes which settings Sweep visits.
type SweepConfig struct {
	Orders    []rotor.Order        // default: every order of the catalog
	Positions []stepping.Positions // default: every ground setting
	Reflector string
	Procedure Procedure
	Workers   int // default: GOMAXPROCS
}

// Sweep computes the structure for every (order, positions) pair of cfg.
// Entries come back order major, in the order given, however the work was
// scheduled.  The first error, or the cancellation of ctx, stops the sweep.
func Sweep(ctx context.Context, cfg SweepConfig) ([]Entry, error) {
	orders := cfg.Orders
	if len(orders) == 0 {
		orders = rotor.Orders()
	}
	positions := cfg.Positions
	if len(positions) == 0 {
		positions = stepping.All()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Build every cyclometer up front so configuration errors surface
	// before any work starts.
	meters := make([]*Cyclometer, len(orders))
	for i, o := range orders {
		c, err := New(o, cfg.Reflector, WithProcedure(cfg.Procedure))
		if err != nil {
			return nil, err
		}
		meters[i] = c
	}

	entries := make([]Entry, len(orders)*len(positions))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range meters {
		name := c.Machine().Order().String()
		for lo := 0; lo < len(positions); lo += sweepChunk {
			hi := min(lo+sweepChunk, len(positions))
			g.Go(func() error {
				for j := lo; j < hi; j++ {
					if err := ctx.Err(); err != nil {
						return err
					}
					s, err := c.Structure(positions[j])
					if err != nil {
						return err
					}
					entries[i*len(positions)+j] = Entry{Order: name, Positions: positions[j], Structure: s}
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// GroupByCharacteristic buckets entries by characteristic.  Groups are
// ordered by size, smallest first, since the rare characteristics are the
// ones that identify a setting; ties are broken by characteristic.
func GroupByCharacteristic(entries []Entry) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, e := range entries {
		key := e.Structure.Characteristic()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Characteristic: key})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].Entries) != len(groups[j].Entries) {
			return len(groups[i].Entries) < len(groups[j].Entries)
		}
		return groups[i].Characteristic < groups[j].Characteristic
	})
	return groups
}
