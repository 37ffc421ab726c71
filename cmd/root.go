// Package cmd provides the command-line interface for quizlint with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --questions, etc.) - highest priority
//	2. QUIZLINT_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (QUIZLINT_ROOTS_QUESTIONS, etc.)
//	4. Configuration files (.quizlint.yml) - lowest priority
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	qerr "github.com/quizkit/quizlint/internal/errors"
)

// ErrViolationsFound signals that a check completed and found violations.
// The report has already been written; main maps this to exit code 1.
var ErrViolationsFound = errors.New("violations found")

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quizlint",
	Short: "A convention linter for interview-question corpora",
	Long: `Quizlint validates an interview-question corpus: Markdown question and
answer documents organized by level and topic, plus the standalone example
scripts that accompany them.

Checks:
  • Document schema: top-level heading, numbered items, non-empty bodies
  • Pairing: every question file has an answer file with matching prompts
  • Examples: dependency-free snippets stay framework-free; framework
    examples carry a version/setup note

Quick Start:
  quizlint init                   Scaffold a new corpus
  quizlint check-all              Run every check
  quizlint check-pairing          Check question/answer pairing only
  quizlint watch                  Re-check on file changes
  quizlint serve                  Live report in the browser

Exit codes: 0 clean, 1 violations found, 2 usage error.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps an Execute error to the documented exit codes.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usageErr *qerr.UsageError
	if errors.As(err, &usageErr) {
		return 2
	}
	return 1
}

func init() {
	cobra.OnInitialize(initConfig)

	// Accept underscore spellings (--log_level) alongside the dashed forms
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .quizlint.yml, can also use QUIZLINT_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("questions", "", "questions root directory (default questions/)")
	rootCmd.PersistentFlags().String("answers", "", "answers root directory (default answers/)")
	rootCmd.PersistentFlags().String("examples", "", "examples root directory (default examples/)")

	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("roots.questions", rootCmd.PersistentFlags().Lookup("questions"))
	viper.BindPFlag("roots.answers", rootCmd.PersistentFlags().Lookup("answers"))
	viper.BindPFlag("roots.examples", rootCmd.PersistentFlags().Lookup("examples"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. QUIZLINT_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .quizlint.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("QUIZLINT_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".quizlint")
	}

	viper.SetEnvPrefix("QUIZLINT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Missing or malformed config files degrade to defaults without failing
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
