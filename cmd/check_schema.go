package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quizkit/quizlint/internal/lint"
)

// checkSchemaCmd represents the check-schema command.
var checkSchemaCmd = &cobra.Command{
	Use:   "check-schema [questions [answers]]",
	Short: "Check document schema in the question and answer trees",
	Long: `Check every question and answer document against the required shape:

- A top-level heading on the first heading line
- At least one numbered item (### 1. or ### Q1. style markers)
- A non-empty body (or title) for each numbered item

Unreadable files are reported as io-error violations; the scan continues.

Examples:
  quizlint check-schema                 # Check both document trees
  quizlint check-schema --format json   # Output violations as JSON
  quizlint check-schema q/ a/           # Check explicit root directories`,
	Args: rootArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), lint.Selection{Schema: true}, args)
	},
}

func init() {
	rootCmd.AddCommand(checkSchemaCmd)

	checkSchemaCmd.Flags().
		StringVarP(&checkFormat, "format", "f", "text", "Output format (text, json, yaml)")
}
