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
	"strings"

	"github.com/bgallie/fialka/engine"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	pemType        = "FIALKA Encrypted Message"
	orderHeader    = "Order"
	keyHeader      = "Key"
	fileNameHeader = "FileName"
)

var (
	usePem bool
)

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [passphrase]",
	Short: "Encrypt plaintext using the Fialka machine",
	Long: `Encrypt the letters A-Z of the plaintext with the ten rotor machine derived from the passphrase.
Everything that is not a letter is dropped.  The rotor order and starting key of the message
are given with --order and --key.`,
	Run: func(cmd *cobra.Command, args []string) {
		encrypt(args)
	},
}

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:        "encode [passphrase]",
	Short:      "Encode plaintext using the Fialka machine",
	Long:       `[DEPRECATED] Encode plaintext using the Fialka ten rotor machine.`,
	Deprecated: "use \"encrypt\" instead.",
	Run: func(cmd *cobra.Command, args []string) {
		encrypt(args)
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(encodeCmd)
	encryptCmd.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding, recording the order and key in the PEM headers.")
	encodeCmd.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding, recording the order and key in the PEM headers.")
}

func encrypt(args []string) {
	settings := initEngine(args)
	order, key := viper.GetString("order"), strings.ToUpper(viper.GetString("key"))
	settings, err := applyIndicator(settings, order, key)
	checkError(err)
	machine := buildEngine(settings)
	fin, fout := getInputAndOutputFiles(true)
	defer fout.Close()
	cipherText := cipherHelper(fin, machine)
	if usePem {
		fileName := ""
		if inputFileName != "-" {
			fileName = inputFileName
		}
		_, err = io.Copy(fout, armour(cipherText, settings, fileName))
	} else {
		err = writeLetters(fout, cipherText)
	}
	checkError(err)
	wg.Wait()
}

// armour PEM encodes cipherText.  The message indicator (rotor order and
// starting key) goes into the headers when one was given.
func armour(cipherText io.Reader, settings engine.Settings, fileName string) *io.PipeReader {
	var blck pem.Block
	blck.Headers = make(map[string]string)
	blck.Type = pemType
	if settings.Order != nil {
		blck.Headers[orderHeader] = engine.FormatOrder(settings.Order)
	}
	if len(settings.Key) > 0 {
		blck.Headers[keyHeader] = settings.Key
	}
	if len(fileName) > 0 {
		blck.Headers[fileNameHeader] = fileName
	}
	return pem.ToPem(cipherText, blck)
}
