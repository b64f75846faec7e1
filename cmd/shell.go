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

	"github.com/bgallie/fialka/cryptors"
	"github.com/bgallie/fialka/cryptors/permutator"
	"github.com/bgallie/fialka/engine"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell [passphrase]",
	Short: "Encrypt and decrypt messages interactively.",
	Long: `Start an interactive session.  The machine settings are derived from the passphrase, or
chosen at random when no passphrase is given, and stay the same for the whole session.
Every message is processed by a fresh machine, so messages can be decrypted in any order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var p *permutator.Permutator
		if secret := getSecret(args); len(secret) > 0 {
			p = permutator.NewFromSecret([]byte(secret))
		} else {
			fmt.Fprintln(os.Stderr, "No passphrase given - using random machine settings for this session.")
			p = permutator.NewRandom()
		}
		return runShell(cmd.InOrStdin(), cmd.OutOrStdout(), engine.Generate(p), viper.GetInt("group"))
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// runShell reads commands from in until Q or end of input.  settings holds
// the unstepped machine; each message gets its own engine built from it.
func runShell(in io.Reader, out io.Writer, settings engine.Settings, group int) error {
	scanner := bufio.NewScanner(in)
	prompt := func(msg string) (string, bool) {
		fmt.Fprint(out, msg)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	for {
		choice, ok := prompt("\nChoose (E)ncrypt, (D)ecrypt or (Q)uit: ")
		if !ok {
			return scanner.Err()
		}
		switch strings.ToUpper(choice) {
		case "Q":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "E", "D":
		default:
			fmt.Fprintln(out, "Please choose E, D, or Q.")
			continue
		}

		text, ok := prompt("Enter text (letters A-Z only): ")
		if !ok {
			return scanner.Err()
		}
		order, ok := prompt("Enter rotor order (e.g., 0123456789), or press Enter for default: ")
		if !ok {
			return scanner.Err()
		}
		key, ok := prompt("Enter 10-letter rotor starting key (A-Z), or press Enter for none: ")
		if !ok {
			return scanner.Err()
		}

		msgSettings, err := applyIndicator(settings, order, key)
		switch {
		case errors.Is(err, cryptors.ErrInvalidRotorOrder):
			fmt.Fprintln(out, "Invalid rotor order. Must use each digit 0-9 exactly once.")
			continue
		case errors.Is(err, cryptors.ErrInvalidKey):
			fmt.Fprintln(out, "Invalid key. Must be 10 letters A-Z.")
			continue
		case err != nil:
			return err
		}

		machine, err := engine.New(msgSettings)
		if err != nil {
			return err
		}
		label, result := "Encrypted", ""
		if strings.EqualFold(choice, "D") {
			label, result = "Decrypted", machine.Decrypt(text)
		} else {
			result = machine.Encrypt(text)
		}
		logger.Debug("message processed", zap.String("mode", label), zap.Int64("letters", machine.Count()), zap.String("key", machine.Key()))
		fmt.Fprintf(out, "%s text: %s\n", label, formatGroups(result, group))
	}
}
