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
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bgallie/cyclometer/cryptors/cyclometer"
	"github.com/bgallie/cyclometer/cryptors/rotor"
	"github.com/bgallie/cyclometer/cryptors/stepping"
)

var (
	catalogOrders    []string
	catalogPositions []string
	catalogWorkers   int
	catalogTop       int
	catalogProcedure string
	catalogFormat    string
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Catalog cycle structures over rotor orders and ground settings",
	Long: `Compute the cycle structure for every rotor order and ground setting
selected and group the settings by characteristic, rarest first.  By default
all 6 rotor orders and all 17576 ground settings are visited.  The --rotors
and --positions settings are not used; select with --orders and --grounds.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return catalog(cmd)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().StringSliceVar(&catalogOrders, "orders", nil, "rotor orders to visit, e.g. I-II-III,III-I-II (default all)")
	catalogCmd.Flags().StringSliceVar(&catalogPositions, "grounds", nil, "ground settings to visit, e.g. AAA,FEV (default all)")
	catalogCmd.Flags().IntVar(&catalogWorkers, "workers", 0, "number of concurrent workers (default GOMAXPROCS)")
	catalogCmd.Flags().IntVar(&catalogTop, "top", 0, "show only the rarest N characteristics (0 shows all)")
	catalogCmd.Flags().StringVar(&catalogProcedure, "procedure", "repeated", "indicator procedure (repeated, composed)")
	catalogCmd.Flags().StringVarP(&catalogFormat, "format", "f", formatTable, "output format (table, json, yaml)")
}

func catalog(cmd *cobra.Command) error {
	if err := checkFormat(catalogFormat, formatText, formatTable, formatJSON, formatYAML); err != nil {
		return err
	}
	cfg, err := sweepConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	begin := time.Now()
	entries, err := cyclometer.Sweep(ctx, cfg)
	if err != nil {
		return err
	}
	log.Debug().
		Int("entries", len(entries)).
		Dur("elapsed", time.Since(begin)).
		Msg("catalog swept")

	w, closer, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closer()
	return writeCatalogReport(w, catalogFormat, newCatalogReport(cfg.Reflector, cfg.Procedure, entries, catalogTop))
}

func sweepConfig() (cyclometer.SweepConfig, error) {
	s, err := loadSettings()
	if err != nil {
		return cyclometer.SweepConfig{}, err
	}
	cfg := cyclometer.SweepConfig{Reflector: s.reflector, Workers: catalogWorkers}
	if cfg.Procedure, err = cyclometer.ParseProcedure(catalogProcedure); err != nil {
		return cfg, err
	}
	for _, o := range catalogOrders {
		order, err := rotor.ParseOrder(o)
		if err != nil {
			return cfg, err
		}
		cfg.Orders = append(cfg.Orders, order)
	}
	for _, p := range catalogPositions {
		pos, err := stepping.ParsePositions(p)
		if err != nil {
			return cfg, err
		}
		cfg.Positions = append(cfg.Positions, pos)
	}
	return cfg, nil
}
