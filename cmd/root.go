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
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bgallie/cyclometer/cryptors/machine"
	"github.com/bgallie/cyclometer/cryptors/plugboard"
	"github.com/bgallie/cyclometer/cryptors/rotor"
	"github.com/bgallie/cyclometer/cryptors/stepping"
)

var (
	cfgFile        string
	inputFileName  string
	outputFileName string
	Version        string = "dev"
)

const (
	cyclometerConfigFile = ".cyclometer"
	envPrefix            = "CYCLOMETER"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cyclometer",
	Short: "A three rotor cipher machine and cyclometer",
	Long: `cyclometer enciphers text on a three rotor machine (rotors I, II and III,
reflector A or B) and computes the cycle structure of the doubled message
key indicator for any rotor order and ground setting.`,
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := setupLogging(viper.GetString("log.level"), viper.GetString("log.output"), cmd.ErrOrStderr())
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cyclometer.yaml)")
	pf.StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the file to encrypt/decrypt.")
	pf.StringVarP(&outputFileName, "outputFile", "o", "-", "Name of the file to write the result to.")
	pf.StringP("rotors", "r", "I-II-III", "rotor order, left to right, from rotors I, II and III")
	pf.StringP("positions", "s", "AAA", "start positions (ground setting) of the left, middle and right rotors")
	pf.String("reflector", "B", "reflector, A or B")
	pf.String("plugboard", "", `plugboard cable pairs, e.g. "AZ BY CX"`)
	pf.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.String("log-output", "console", "log format (console, stderr, json); logs are written to standard error")

	for key, flag := range map[string]string{
		"rotors":     "rotors",
		"positions":  "positions",
		"reflector":  "reflector",
		"plugboard":  "plugboard",
		"log.level":  "log-level",
		"log.output": "log-output",
	} {
		cobra.CheckErr(viper.BindPFlag(key, pf.Lookup(flag)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".cyclometer" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(cyclometerConfigFile)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// settings is the machine configuration taken from flags, environment and
// config file.
type settings struct {
	order     rotor.Order
	start     stepping.Positions
	reflector string
	plugboard *plugboard.Plugboard
}

func loadSettings() (settings, error) {
	var s settings
	var err error
	if s.order, err = rotor.ParseOrder(viper.GetString("rotors")); err != nil {
		return s, err
	}
	if s.start, err = stepping.ParsePositions(viper.GetString("positions")); err != nil {
		return s, err
	}
	if s.plugboard, err = plugboard.Parse(viper.GetString("plugboard")); err != nil {
		return s, err
	}
	s.reflector = strings.ToUpper(strings.TrimSpace(viper.GetString("reflector")))
	return s, nil
}

// newMachine builds the cipher machine for s.  Every configuration error
// is reported here, before any text is read.
func (s settings) newMachine() (*machine.Machine, error) {
	m, err := machine.New(s.order, s.reflector, s.plugboard)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("rotors", s.order.String()).
		Str("positions", s.start.String()).
		Str("reflector", s.reflector).
		Str("plugboard", s.plugboard.String()).
		Msg("machine configured")
	return m, nil
}
