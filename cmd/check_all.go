package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quizkit/quizlint/internal/lint"
)

// checkAllCmd represents the check-all command.
var checkAllCmd = &cobra.Command{
	Use:   "check-all [questions [answers [examples]]]",
	Short: "Run every corpus check over a single scan",
	Long: `Run the schema, pairing, and example checks in one pass and merge the
results into a single deterministic report: schema findings first, then
pairing (orphans before prompt mismatches), then examples.

Examples:
  quizlint check-all                    # Check the configured roots
  quizlint check-all --format json      # Output violations as JSON
  quizlint check-all --questions q/     # Override a root directory
  quizlint check-all q/ a/ ex/          # Same overrides, positionally`,
	Args: rootArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), lint.All(), args)
	},
}

func init() {
	rootCmd.AddCommand(checkAllCmd)

	checkAllCmd.Flags().
		StringVarP(&checkFormat, "format", "f", "text", "Output format (text, json, yaml)")
}
