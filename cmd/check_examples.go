package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quizkit/quizlint/internal/lint"
)

// checkExamplesCmd represents the check-examples command.
var checkExamplesCmd = &cobra.Command{
	Use:   "check-examples [examples]",
	Short: "Check the dependency-free/framework-dependent example split",
	Long: `Check scripts under the examples tree:

- Files under examples/snippets/ must not reference framework vocabulary
  (a configurable denylist of model base classes, DSL calls, and so on)
- Files under examples/rails/ must carry a visible version/setup note

This check is advisory: it only reads and reports, never modifies files.

Examples:
  quizlint check-examples               # Check the configured examples root
  quizlint check-examples --format json # Output violations as JSON
  quizlint check-examples ex/           # Check an explicit examples root`,
	Args: rootArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), lint.Selection{Examples: true}, args)
	},
}

func init() {
	rootCmd.AddCommand(checkExamplesCmd)

	checkExamplesCmd.Flags().
		StringVarP(&checkFormat, "format", "f", "text", "Output format (text, json, yaml)")
}
