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
	"os"
	"strings"

	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bgallie/cyclometer/cryptors/machine"
)

const (
	pemType = "CYCLOMETER Encrypted Message"
)

var (
	usePem   bool
	useLines bool
	trace    bool
)

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [message...]",
	Short: "Encrypt a message on the rotor machine",
	Long: `Encrypt a message on the rotor machine.  The message is taken from the
command line, from --inputFile, or typed at the terminal.  Letters are
enciphered in upper case; anything else is copied through and does not move
the rotors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return encrypt(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().BoolVarP(&usePem, "usePem", "p", false, "armor the cipher text in a PEM block that records the machine settings")
	encryptCmd.Flags().BoolVarP(&useLines, "wrap", "w", false, "split the cipher text into lines; the breaks decrypt to themselves")
	encryptCmd.Flags().BoolVarP(&trace, "trace", "t", false, "log every key press with the rotor positions before and after")
}

func encrypt(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	m, err := s.newMachine()
	if err != nil {
		return err
	}
	fin, fout, err := getInputAndOutputFiles(cmd, args)
	if err != nil {
		return err
	}
	defer fin.Close()
	defer fout.Close()

	session := m.NewSession(s.start)
	if trace {
		session.OnPress(logPress)
	}
	encIn := io.Reader(cipherHelper(fin, session))
	if useLines && !usePem {
		encIn = lines.SplitToLines(encIn)
	}

	if usePem {
		var blck pem.Block
		blck.Type = pemType
		blck.Headers = map[string]string{
			"Rotors":    s.order.String(),
			"Positions": s.start.String(),
			"Reflector": s.reflector,
		}
		if pb := s.plugboard.String(); pb != "" {
			blck.Headers["Plugboard"] = pb
		}
		if inputFileName != "" && inputFileName != "-" {
			blck.Headers["FileName"] = inputFileName
		}
		_, err = io.Copy(fout, pem.ToPem(bufio.NewReader(encIn), blck))
	} else {
		_, err = io.Copy(fout, encIn)
	}
	if err != nil {
		return err
	}
	log.Debug().Str("positions", session.Positions().String()).Msg("message enciphered")
	return nil
}

// cipherHelper types everything read from rdr on the session and makes the
// result available on the returned PipeReader.
func cipherHelper(rdr io.Reader, session *machine.Session) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	go func() {
		b := make([]byte, 2048)
		for {
			cnt, err := rdr.Read(b)
			if cnt > 0 {
				session.Type(b[:cnt])
				if _, werr := rWrtr.Write(b[:cnt]); werr != nil {
					rWrtr.CloseWithError(werr)
					return
				}
			}
			if err == io.EOF {
				rWrtr.Close()
				return
			}
			if err != nil {
				rWrtr.CloseWithError(err)
				return
			}
		}
	}()
	return rRdr
}

func logPress(p machine.Press) {
	log.Info().
		Str("key", string(p.In)).
		Str("before", p.Before.String()).
		Str("lamp", string(p.Out)).
		Str("after", p.After.String()).
		Msg("key press")
}

/*
getInputAndOutputFiles returns the reader holding the message and the
writer for the result.  Command line arguments take precedence over
--inputFile; an input of "-" is standard input, and on a terminal the
message is prompted for.  An output of "-" (or none) is standard output.
*/
func getInputAndOutputFiles(cmd *cobra.Command, args []string) (io.ReadCloser, io.WriteCloser, error) {
	var fin io.ReadCloser
	var err error

	switch {
	case len(args) > 0:
		fin = io.NopCloser(strings.NewReader(strings.Join(args, " ") + "\n"))
	case inputFileName == "" || inputFileName == "-":
		fin, err = readStdin(cmd)
		if err != nil {
			return nil, nil, err
		}
	default:
		fin, err = os.Open(inputFileName)
		if err != nil {
			return nil, nil, err
		}
	}

	var fout io.WriteCloser
	if outputFileName == "" || outputFileName == "-" {
		fout = nopWriteCloser{cmd.OutOrStdout()}
	} else {
		fout, err = os.Create(outputFileName)
		if err != nil {
			fin.Close()
			return nil, nil, err
		}
	}
	return fin, fout, nil
}

// readStdin returns standard input.  When standard input is a terminal a
// single line is read after a prompt on standard error.
func readStdin(cmd *cobra.Command) (io.ReadCloser, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Enter the message: ")
		line, err := bufio.NewReader(f).ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		return io.NopCloser(strings.NewReader(line)), nil
	}
	return io.NopCloser(cmd.InOrStdin()), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
