package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quizkit/quizlint/internal/config"
	qerr "github.com/quizkit/quizlint/internal/errors"
	"github.com/quizkit/quizlint/internal/lint"
	"github.com/quizkit/quizlint/internal/report"
)

// checkFormat is shared by the check-* commands; each registers its own
// --format flag pointing at it.
var checkFormat string

// rootArgs bounds the positional root paths a check command accepts. Extra
// arguments are a usage error, not a cobra parse error, so they exit with
// the usage code like every other bad CLI input.
func rootArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return qerr.NewUsageError(args[n], "unexpected argument")
		}
		return nil
	}
}

// applyRootArgs maps positional paths onto the roots the selection scans, in
// the order the command's usage line documents them. Missing positions keep
// the configured roots.
func applyRootArgs(cfg *config.Config, sel lint.Selection, args []string) {
	var targets []*string
	if sel.Schema || sel.Pairing {
		targets = append(targets, &cfg.Roots.Questions, &cfg.Roots.Answers)
	}
	if sel.Examples {
		targets = append(targets, &cfg.Roots.Examples)
	}
	for i, arg := range args {
		if i >= len(targets) {
			return
		}
		*targets[i] = arg
	}
}

// runCheck loads config, validates roots, runs the selected checkers, and
// writes the report. It returns ErrViolationsFound when the corpus is dirty
// so main can map the result to exit code 1.
func runCheck(ctx context.Context, sel lint.Selection, args []string) error {
	format, err := report.ParseFormat(checkFormat)
	if err != nil {
		return qerr.NewUsageError("--format", "%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return qerr.NewUsageError("config", "%v", err)
	}
	applyRootArgs(cfg, sel, args)

	runner := lint.NewRunner(cfg)
	if err := runner.ValidateRoots(sel); err != nil {
		return err
	}

	rep, err := runner.Run(ctx, sel)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if err := rep.Write(os.Stdout, format); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	// Keep stdout machine-readable in structured modes; the summary still
	// reaches the user on stderr.
	if format != report.FormatText {
		fmt.Fprintln(os.Stderr, rep.Summary())
	}

	if rep.HasViolations() {
		return ErrViolationsFound
	}
	return nil
}
