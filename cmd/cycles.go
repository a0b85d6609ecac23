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
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bgallie/cyclometer/cryptors/cyclometer"
)

var (
	procedureName string
	outputFormat  string
)

// cyclesCmd represents the cycles command
var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "Show the cycle structure of the indicator mapping",
	Long: `Show the cycle structure of the indicator mapping for the rotor order,
ground setting and reflector.  From the ground setting every letter is
typed, then the dummy key A twice, then the letter again; the fourth lamp is
its image.  With --procedure composed the first lamp is mapped to the fourth.
The plugboard is not used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cycles(cmd)
	},
}

func init() {
	rootCmd.AddCommand(cyclesCmd)
	cyclesCmd.Flags().StringVar(&procedureName, "procedure", "repeated", "indicator procedure (repeated, composed)")
	cyclesCmd.Flags().StringVarP(&outputFormat, "format", "f", formatText, "output format (text, table, json, yaml)")
}

func cycles(cmd *cobra.Command) error {
	if err := checkFormat(outputFormat, formatText, formatTable, formatJSON, formatYAML); err != nil {
		return err
	}
	s, err := loadSettings()
	if err != nil {
		return err
	}
	proc, err := cyclometer.ParseProcedure(procedureName)
	if err != nil {
		return err
	}
	cm, err := cyclometer.New(s.order, s.reflector, cyclometer.WithProcedure(proc))
	if err != nil {
		return err
	}
	st, err := cm.Structure(s.start)
	if err != nil {
		return err
	}
	log.Debug().
		Str("rotors", s.order.String()).
		Str("positions", s.start.String()).
		Str("characteristic", st.Characteristic()).
		Msg("cycle structure computed")

	w, closer, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closer()
	return writeCycleReport(w, outputFormat, newCycleReport(s.order.String(), s.start.String(), s.reflector, proc, st))
}

// openOutput returns the writer named by --outputFile, standard output for
// "-", and the function that closes it.
func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outputFileName == "" || outputFileName == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(outputFileName)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
