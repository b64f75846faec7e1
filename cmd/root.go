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
	"sync"
	"unicode"

	"github.com/bgallie/fialka/cryptors"
	"github.com/bgallie/fialka/cryptors/permutator"
	"github.com/bgallie/fialka/engine"
	"github.com/bgallie/filters/lines"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/spf13/viper"
)

var (
	cfgFile        string
	inputFileName  string
	outputFileName string
	verbose        bool
	logger         = zap.NewNop()
	wg             sync.WaitGroup
	GitCommit      string = "not set"
	GitBranch      string = "not set"
	GitState       string = "not set"
	GitSummary     string = "not set"
	BuildDate      string = "not set"
	Version        string = "dev"
)

const (
	fialkaExtension = ".fialka"
	groupsPerLine   = 10
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "fialka",
	Short:   "A ten rotor cipher machine simulator",
	Long:    `fialka encrypts/decrypts letters A-Z with a simulated ten rotor, reflector and plugboard cipher machine.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() { _ = logger.Sync() }()
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fialka.yaml)")
	rootCmd.PersistentFlags().StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the plaintext file to encrypt/decrypt.")
	rootCmd.PersistentFlags().StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file containing the encrypted/decrypted plaintext.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log the machine state while working")
	rootCmd.PersistentFlags().StringP("order", "r", "", "rotor order as ten digits, eg. 3095172846 (default 0123456789)")
	rootCmd.PersistentFlags().StringP("key", "k", "", "starting key, one letter A-Z for each of the ten rotors")
	rootCmd.PersistentFlags().IntP("group", "g", 5, "letters per output group, 0 for none")
	cobra.CheckErr(viper.BindPFlag("order", rootCmd.PersistentFlags().Lookup("order")))
	cobra.CheckErr(viper.BindPFlag("key", rootCmd.PersistentFlags().Lookup("key")))
	cobra.CheckErr(viper.BindPFlag("group", rootCmd.PersistentFlags().Lookup("group")))
	viper.SetDefault("log.level", "warn")
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

		// Search config in home directory with name ".fialka" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".fialka")
	}

	viper.SetEnvPrefix("fialka")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	err := viper.ReadInConfig()
	initLogger()
	if err == nil {
		logger.Info("using config file", zap.String("file", viper.ConfigFileUsed()))
	}
}

// initLogger builds the diagnostic logger.  --verbose forces debug level,
// otherwise log.level from the config or FIALKA_LOG_LEVEL is used.
func initLogger() {
	level := zapcore.DebugLevel
	if !verbose {
		if err := level.UnmarshalText([]byte(viper.GetString("log.level"))); err != nil {
			fmt.Fprintf(os.Stderr, "Unknown log level %q, using warn.\n", viper.GetString("log.level"))
			level = zapcore.WarnLevel
		}
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	l, err := cfg.Build()
	cobra.CheckErr(err)
	logger = l.Named("fialka")
}

// getSecret obtains the passphrase the machine settings are derived from,
// or "" if none was given.  The sources are tried in this order:
// 1. Arguments from the entered command line (least secure - not recommended)
// 2. The 'FIALKA_SECRET' environment variable or config entry (less secure)
// 3. User input from the terminal (most secure)
func getSecret(args []string) string {
	if len(args) != 0 {
		return strings.Join(args, " ")
	}
	if viper.IsSet("secret") {
		return viper.GetString("secret")
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "Enter the passphrase: ")
		byteSecret, err := term.ReadPassword(int(os.Stdin.Fd()))
		cobra.CheckErr(err)
		fmt.Fprintln(os.Stderr, "")
		return string(byteSecret)
	}
	return ""
}

// initEngine derives the machine settings from the passphrase.
func initEngine(args []string) engine.Settings {
	secret := getSecret(args)
	if len(secret) == 0 {
		cobra.CheckErr("You must supply a password.")
	}
	return engine.Generate(permutator.NewFromSecret([]byte(secret)))
}

// applyIndicator sets the rotor order and starting key of the message on s.
// Empty strings leave the defaults in place.
func applyIndicator(s engine.Settings, order, key string) (engine.Settings, error) {
	if len(order) != 0 {
		o, err := engine.ParseOrder(order)
		if err != nil {
			return s, err
		}
		s = s.WithOrder(o)
	}
	if len(key) != 0 {
		s = s.WithKey(strings.ToUpper(key))
	}
	return s, s.Validate()
}

// buildEngine creates a fresh cipher machine for one message.
func buildEngine(s engine.Settings) *engine.Engine {
	e, err := engine.New(s)
	cobra.CheckErr(err)
	logger.Debug("cipher machine built",
		zap.String("order", engine.FormatOrder(orderOf(s))),
		zap.String("key", e.Key()))
	return e
}

func orderOf(s engine.Settings) []int {
	if s.Order == nil {
		return lo.Range(len(s.Rotors))
	}
	return s.Order
}

/*
	getInputAndOutputFiles will return the input and output files to use while
	encrypting/decrypting data.  If input and/or output files names were given,
	then those files will be opened.  Otherwise stdin and stdout are used.
*/
func getInputAndOutputFiles(encode bool) (*os.File, *os.File) {
	var fin *os.File
	var err error

	if len(inputFileName) > 0 && inputFileName != "-" {
		fin, err = os.Open(inputFileName)
		cobra.CheckErr(err)
	} else {
		fin = os.Stdin
	}

	var fout *os.File

	if len(outputFileName) > 0 {
		if outputFileName == "-" {
			fout = os.Stdout
		} else {
			fout, err = os.Create(outputFileName)
			cobra.CheckErr(err)
		}
	} else if inputFileName == "-" {
		fout = os.Stdout
	} else if encode {
		outputFileName = inputFileName + fialkaExtension
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else {
		if strings.HasSuffix(inputFileName, fialkaExtension) {
			outputFileName = strings.TrimSuffix(inputFileName, fialkaExtension)
			fout, err = os.Create(outputFileName)
			cobra.CheckErr(err)
		} else {
			fout = os.Stdout
		}
	}
	logger.Debug("files selected", zap.String("input", inputFileName), zap.String("output", outputFileName))
	return fin, fout
}

// checkError checks for error that are not io.EOF and io.ErrUnexpectedEOF and reports them.
func checkError(e error) {
	if e != io.EOF && e != io.ErrUnexpectedEOF {
		cobra.CheckErr(e)
	}
}

// cipherHelper runs every letter read from rdr through the machine and
// makes the result available on the returned PipeReader.  Anything that is
// not a letter is dropped, lower case letters are upper cased.
func cipherHelper(rdr io.Reader, e *engine.Engine) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	wg.Add(1)
	go func() {
		defer wg.Done()
		bRdr := bufio.NewReader(rdr)
		bWrtr := bufio.NewWriter(rWrtr)
		var err error
		for {
			var r rune
			r, _, err = bRdr.ReadRune()
			if err != nil {
				break
			}
			r = unicode.ToUpper(r)
			if !cryptors.IsSymbol(r) {
				continue
			}
			if _, err = bWrtr.WriteRune(e.ProcessLetter(r)); err != nil {
				break
			}
		}
		if err == io.EOF {
			err = bWrtr.Flush()
		}
		logger.Debug("letters processed", zap.Int64("count", e.Count()), zap.String("key", e.Key()))
		rWrtr.CloseWithError(err)
	}()
	return rRdr
}

// groupHelper splits the letters read from rdr into groups of size letters
// separated by spaces, groupsPerLine groups to a line.
func groupHelper(rdr io.Reader, size int) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	wg.Add(1)
	go func() {
		defer wg.Done()
		bWrtr := bufio.NewWriter(rWrtr)
		group := make([]byte, size)
		written := false
		var err error
		for n := 0; ; n++ {
			var cnt int
			cnt, err = io.ReadFull(rdr, group)
			if cnt == 0 {
				break
			}
			if n > 0 {
				sep := byte(' ')
				if n%groupsPerLine == 0 {
					sep = '\n'
				}
				_ = bWrtr.WriteByte(sep)
			}
			written = true
			if _, werr := bWrtr.Write(group[:cnt]); werr != nil {
				err = werr
				break
			}
			if cnt < size {
				break
			}
		}
		if err == nil || err == io.EOF || err == io.ErrUnexpectedEOF {
			if written {
				_ = bWrtr.WriteByte('\n')
			}
			err = bWrtr.Flush()
		}
		rWrtr.CloseWithError(err)
	}()
	return rRdr
}

// writeLetters copies the machine output to w, in groups when a group size
// is configured and as plain lines otherwise.
func writeLetters(w io.Writer, rdr io.Reader) error {
	var err error
	if size := viper.GetInt("group"); size > 0 {
		_, err = io.Copy(w, groupHelper(rdr, size))
	} else {
		_, err = io.Copy(w, lines.SplitToLines(rdr))
	}
	return err
}

// formatGroups splits text into groups of size letters separated by spaces.
func formatGroups(text string, size int) string {
	if size <= 0 || len(text) == 0 {
		return text
	}
	groups := lo.Map(lo.Chunk([]rune(text), size), func(g []rune, _ int) string { return string(g) })
	return strings.Join(groups, " ")
}
