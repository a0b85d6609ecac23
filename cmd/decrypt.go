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
	"bufio"
	"fmt"
	"io"

	"github.com/bgallie/filters/pem"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bgallie/cyclometer/cryptors"
	"github.com/bgallie/cyclometer/cryptors/plugboard"
	"github.com/bgallie/cyclometer/cryptors/rotor"
	"github.com/bgallie/cyclometer/cryptors/stepping"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [message...]",
	Short: "Decrypt a message on the rotor machine",
	Long: `Decrypt a message on the rotor machine.  The machine is reciprocal, so
decrypting is encrypting again from the same start positions.  If the input
is a PEM block written by "encrypt --usePem" the machine settings are taken
from its headers.  Line breaks added by "encrypt --wrap" are not letters, so
they are copied through and do not move the rotors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return decrypt(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().BoolVarP(&trace, "trace", "t", false, "log every key press with the rotor positions before and after")
}

func decrypt(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	fin, fout, err := getInputAndOutputFiles(cmd, args)
	if err != nil {
		return err
	}
	defer fin.Close()
	defer fout.Close()

	var decIn io.Reader
	bRdr := bufio.NewReader(fin)
	b, err := bRdr.Peek(5)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return err
	}
	if string(b) == "-----" {
		var blck pem.Block
		decIn, blck = pem.FromPem(bRdr)
		if s, err = settingsFromHeaders(s, blck.Headers); err != nil {
			return err
		}
	} else {
		decIn = bRdr
	}

	m, err := s.newMachine()
	if err != nil {
		return err
	}
	session := m.NewSession(s.start)
	if trace {
		session.OnPress(logPress)
	}
	if _, err = io.Copy(fout, cipherHelper(decIn, session)); err != nil {
		return err
	}
	log.Debug().Str("positions", session.Positions().String()).Msg("message deciphered")
	return nil
}

// settingsFromHeaders overrides s with the machine settings recorded in
// the headers of a PEM block.
func settingsFromHeaders(s settings, headers map[string]string) (settings, error) {
	var err error
	if v, ok := headers["Rotors"]; ok {
		if s.order, err = rotor.ParseOrder(v); err != nil {
			return s, err
		}
	}
	if v, ok := headers["Positions"]; ok {
		if s.start, err = stepping.ParsePositions(v); err != nil {
			return s, err
		}
	}
	if v, ok := headers["Reflector"]; ok {
		s.reflector = v
	}
	if s.plugboard, err = plugboard.Parse(headers["Plugboard"]); err != nil {
		return s, err
	}
	if headers["Rotors"] == "" || headers["Positions"] == "" || headers["Reflector"] == "" {
		return s, fmt.Errorf("%w: PEM block is missing machine settings", cryptors.ErrConfiguration)
	}
	return s, nil
}
