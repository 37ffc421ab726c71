package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quizkit/quizlint/internal/config"
	qerr "github.com/quizkit/quizlint/internal/errors"
	"github.com/quizkit/quizlint/internal/lint"
	"github.com/quizkit/quizlint/internal/report"
	"github.com/quizkit/quizlint/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the corpus and re-run checks on changes",
	Long: `Watch the corpus roots and re-run check-all whenever files change.
Rapid bursts of changes are debounced into a single re-check.

Examples:
  quizlint watch                  # Watch the configured roots
  quizlint watch --verbose        # Print every changed path`,
	RunE: runWatch,
}

var watchVerbose bool

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "Verbose output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return qerr.NewUsageError("config", "%v", err)
	}

	runner := lint.NewRunner(cfg)
	if err := runner.ValidateRoots(lint.All()); err != nil {
		return err
	}

	corpusWatcher, err := watcher.NewCorpusWatcher(time.Duration(cfg.Watch.DebounceMs) * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create corpus watcher: %w", err)
	}
	defer corpusWatcher.Stop()

	corpusWatcher.AddFilter(watcher.NoGitFilter)
	corpusWatcher.AddFilter(watcher.NoHiddenFilter)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	recheck := func() {
		rep, err := runner.Run(ctx, lint.All())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Check failed: %v\n", err)
			return
		}
		if err := rep.Write(os.Stdout, report.FormatText); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
		}
	}

	corpusWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		if watchVerbose {
			fmt.Printf("Corpus changes detected:\n")
			for _, event := range events {
				fmt.Printf("   %s: %s\n", event.Type, event.Path)
			}
		} else {
			fmt.Printf("%d file(s) changed\n", len(events))
		}
		recheck()
		return nil
	})

	fmt.Println("Setting up corpus watching...")
	for _, root := range []string{cfg.Roots.Questions, cfg.Roots.Answers, cfg.Roots.Examples} {
		if err := corpusWatcher.AddRecursive(root); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to watch %s: %v\n", root, err)
		} else {
			fmt.Printf("   - Watching: %s\n", root)
		}
	}

	if err := corpusWatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Println("Performing initial check...")
	recheck()

	// Block until interrupted
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
		fmt.Println("\nShutting down...")
	case <-ctx.Done():
	}

	return nil
}
