package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quizkit/quizlint/internal/lint"
)

// checkPairingCmd represents the check-pairing command.
var checkPairingCmd = &cobra.Command{
	Use:   "check-pairing [questions [answers]]",
	Short: "Check that questions and answers pair up with aligned prompts",
	Long: `Check the 1:1 pairing convention between the two document trees:

- Every questions/<level>/<topic>.md has answers/<level>/<topic>.md
- Every answer file has a matching question file
- Every question prompt number appears in the paired answer file

Topic names are normalized before matching (lowercase, trim, separators to
underscores by default; configurable under the normalize config section), so
incidental naming drift does not produce spurious orphans. Answer-only
prompt numbers are reported as informational.

Examples:
  quizlint check-pairing                # Check the configured roots
  quizlint check-pairing --format yaml  # Output violations as YAML
  quizlint check-pairing q/ a/          # Check explicit root directories`,
	Args: rootArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), lint.Selection{Pairing: true}, args)
	},
}

func init() {
	rootCmd.AddCommand(checkPairingCmd)

	checkPairingCmd.Flags().
		StringVarP(&checkFormat, "format", "f", "text", "Output format (text, json, yaml)")
}
