/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/bgallie/cyclometer/cryptors/cyclometer"
)

var ErrInvalidFormat = errors.New("invalid output format")

const (
	formatText  = "text"
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// checkFormat rejects a format outside allowed, before any output is opened.
func checkFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (choose from %s)", ErrInvalidFormat, format, strings.Join(allowed, ", "))
}

type cycleReport struct {
	Order          string   `json:"order" yaml:"order"`
	Positions      string   `json:"positions" yaml:"positions"`
	Reflector      string   `json:"reflector" yaml:"reflector"`
	Procedure      string   `json:"procedure" yaml:"procedure"`
	Cycles         []string `json:"cycles" yaml:"cycles"`
	Lengths        []int    `json:"lengths" yaml:"lengths"`
	Sum            int      `json:"sum" yaml:"sum"`
	Characteristic string   `json:"characteristic" yaml:"characteristic"`
}

type groupReport struct {
	Characteristic string   `json:"characteristic" yaml:"characteristic"`
	Count          int      `json:"count" yaml:"count"`
	Settings       []string `json:"settings" yaml:"settings"`
}

type catalogReport struct {
	Reflector string        `json:"reflector" yaml:"reflector"`
	Procedure string        `json:"procedure" yaml:"procedure"`
	Entries   int           `json:"entries" yaml:"entries"`
	Groups    []groupReport `json:"groups" yaml:"groups"`
}

func newCycleReport(order, positions, reflector string, proc cyclometer.Procedure, st cyclometer.Structure) cycleReport {
	st = st.Sorted()
	r := cycleReport{
		Order:          order,
		Positions:      positions,
		Reflector:      reflector,
		Procedure:      proc.String(),
		Lengths:        st.Lengths(),
		Sum:            st.Sum(),
		Characteristic: st.Characteristic(),
	}
	for _, c := range st.Cycles {
		r.Cycles = append(r.Cycles, c.String())
	}
	return r
}

// newCatalogReport keeps at most top groups; top <= 0 keeps them all.
func newCatalogReport(reflector string, proc cyclometer.Procedure, entries []cyclometer.Entry, top int) catalogReport {
	groups := cyclometer.GroupByCharacteristic(entries)
	if top > 0 && top < len(groups) {
		groups = groups[:top]
	}
	r := catalogReport{
		Reflector: reflector,
		Procedure: proc.String(),
		Entries:   len(entries),
	}
	for _, g := range groups {
		gr := groupReport{Characteristic: g.Characteristic, Count: len(g.Entries)}
		for _, e := range g.Entries {
			gr.Settings = append(gr.Settings, e.Order+" "+e.Positions.String())
		}
		r.Groups = append(r.Groups, gr)
	}
	return r
}

func writeCycleReport(w io.Writer, format string, r cycleReport) error {
	switch format {
	case formatText, "":
		return writeCycleText(w, r)
	case formatTable:
		t := newTable(w)
		t.SetTitle("%s  %s  reflector %s", r.Order, r.Positions, r.Reflector)
		t.AppendHeader(table.Row{"#", "Cycle", "Length"})
		for i, c := range r.Cycles {
			t.AppendRow(table.Row{i + 1, c, r.Lengths[i]})
		}
		t.AppendFooter(table.Row{"", r.Characteristic, r.Sum})
		t.Render()
		return nil
	case formatJSON:
		return writeJSON(w, r)
	case formatYAML:
		return writeYAML(w, r)
	}
	return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
}

func writeCycleText(w io.Writer, r cycleReport) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Rotor Order: %s\n", r.Order)
	fmt.Fprintf(&sb, "Start Positions: %s\n", strings.Join(strings.Split(r.Positions, ""), " "))
	fmt.Fprintf(&sb, "Reflector: %s\n\n", r.Reflector)
	for i, c := range r.Cycles {
		fmt.Fprintf(&sb, "Cycle %d: %s  (length = %d)\n", i+1, c, r.Lengths[i])
	}
	fmt.Fprintf(&sb, "\nCycle lengths: %v (sum=%d)\n", r.Lengths, r.Sum)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeCatalogReport(w io.Writer, format string, r catalogReport) error {
	switch format {
	case formatTable, formatText, "":
		t := newTable(w)
		t.SetTitle("%d settings, reflector %s, %s procedure", r.Entries, r.Reflector, r.Procedure)
		t.AppendHeader(table.Row{"Characteristic", "Count", "Settings"})
		for _, g := range r.Groups {
			t.AppendRow(table.Row{g.Characteristic, g.Count, strings.Join(g.Settings, ", ")})
		}
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, Align: text.AlignRight},
			{Number: 3, WidthMax: 60},
		})
		t.Render()
		return nil
	case formatJSON:
		return writeJSON(w, r)
	case formatYAML:
		return writeYAML(w, r)
	}
	return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
}

// newTable returns a table that renders to w, limited to the terminal
// width when w is a terminal.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			t.SetAllowedRowLength(width)
		}
	}
	return t
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
