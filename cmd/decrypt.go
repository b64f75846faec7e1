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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [passphrase]",
	Short: "Decrypt a Fialka encrypted message.",
	Long: `Decrypt a message encrypted by the Fialka ten rotor machine.
The rotor order and starting key are taken from the PEM headers when the message
is PEM encoded, otherwise from --order and --key.`,
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(args)
	},
}

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:        "decode [passphrase]",
	Short:      "Decode a Fialka encoded message.",
	Long:       `[DEPRECATED] Decode a message encoded by the Fialka ten rotor machine.`,
	Deprecated: "use \"decrypt\" instead.",
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(args)
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(decodeCmd)
}

// headerValue returns the PEM header named name when present, warning on w if
// it overrides a different value given on the command line.
func headerValue(w io.Writer, blck pem.Block, name, given string) string {
	hdr, ok := blck.Headers[name]
	if !ok {
		return given
	}
	if len(given) > 0 && !strings.EqualFold(given, hdr) {
		fmt.Fprintf(w, "Ignoring the %s argument - using the value from the PEM header.\n", strings.ToLower(name))
	}
	return hdr
}

// openMessage returns the cipher text read from rdr along with the rotor
// order and key to decrypt it with.  A PEM encoded message supplies its own
// order and key; anything else is taken as lines of letter groups.
func openMessage(rdr io.Reader, w io.Writer, order, key string) (io.Reader, string, string, error) {
	bRdr := bufio.NewReader(rdr)
	b, err := bRdr.Peek(5)
	if err != nil && err != io.EOF {
		return nil, order, key, err
	}
	if string(b) != "-----" {
		return lines.CombineLines(bRdr), order, key, nil
	}
	pRdr, blck := pem.FromPem(bRdr)
	order = headerValue(w, blck, orderHeader, order)
	key = headerValue(w, blck, keyHeader, key)
	logger.Debug("PEM message", zap.String("type", blck.Type), zap.String("file", blck.Headers[fileNameHeader]))
	return pRdr, order, key, nil
}

func decrypt(args []string) {
	settings := initEngine(args)
	fin, fout := getInputAndOutputFiles(false)
	defer fout.Close()
	cipherText, order, key, err := openMessage(fin, os.Stderr, viper.GetString("order"), viper.GetString("key"))
	checkError(err)
	settings, err = applyIndicator(settings, order, key)
	checkError(err)
	machine := buildEngine(settings)
	err = writeLetters(fout, cipherHelper(cipherText, machine))
	checkError(err)
	wg.Wait() // Wait for the cipher machine to finish it's clean up.
}
