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
	"io"
	"strings"

	"github.com/bgallie/fialka/engine"
	"github.com/spf13/cobra"
)

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings [passphrase]",
	Short: "Show the machine settings derived from a passphrase.",
	Long: `Show the rotor wirings, reflector pairs and plugboard pairs of the machine derived from the passphrase.
Nothing is written to disk.`,
	Run: func(cmd *cobra.Command, args []string) {
		writeSettings(cmd.OutOrStdout(), initEngine(args))
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func writeSettings(w io.Writer, s engine.Settings) {
	for i, r := range s.Rotors {
		fmt.Fprintf(w, "Rotor %d:   %s\n", i, r)
	}
	fmt.Fprintf(w, "Reflector: %s\n", strings.Join(s.Reflector.Pairs(), " "))
	fmt.Fprintf(w, "Plugboard: %s\n", strings.Join(s.Plugboard.Pairs(), " "))
}
