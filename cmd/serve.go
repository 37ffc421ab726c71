package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quizkit/quizlint/internal/config"
	qerr "github.com/quizkit/quizlint/internal/errors"
	"github.com/quizkit/quizlint/internal/lint"
	"github.com/quizkit/quizlint/internal/logging"
	"github.com/quizkit/quizlint/internal/server"
	"github.com/quizkit/quizlint/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live violation report in the browser",
	Long: `Start a local HTTP server that renders the current violation report.
The page reloads automatically over a websocket whenever the corpus changes
on disk.

Examples:
  quizlint serve                  # Serve on the configured host/port
  quizlint serve --port 9000      # Override the listen port`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Listen port (overrides config)")
	serveCmd.Flags().String("host", "", "Listen host (overrides config)")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return qerr.NewUsageError("config", "%v", err)
	}

	runner := lint.NewRunner(cfg)
	if err := runner.ValidateRoots(lint.All()); err != nil {
		return err
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(viper.GetString("log-level")),
		Format: "text",
		Output: os.Stderr,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	reportServer := server.NewReportServer(cfg, logger)

	// Initial report before the listener comes up
	rep, err := runner.Run(ctx, lint.All())
	if err != nil {
		return fmt.Errorf("initial check failed: %w", err)
	}
	reportServer.UpdateReport(rep)

	corpusWatcher, err := watcher.NewCorpusWatcher(time.Duration(cfg.Watch.DebounceMs) * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create corpus watcher: %w", err)
	}
	defer corpusWatcher.Stop()

	corpusWatcher.AddFilter(watcher.NoGitFilter)
	corpusWatcher.AddFilter(watcher.NoHiddenFilter)
	corpusWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		rep, err := runner.Run(ctx, lint.All())
		if err != nil {
			logger.Error(ctx, err, "re-check after change")
			return nil
		}
		logger.Info(ctx, "corpus re-checked", "changes", len(events), "violations", rep.Count())
		reportServer.UpdateReport(rep)
		return nil
	})

	for _, root := range []string{cfg.Roots.Questions, cfg.Roots.Answers, cfg.Roots.Examples} {
		if err := corpusWatcher.AddRecursive(root); err != nil {
			logger.Warn(ctx, err, "failed to watch root", "root", root)
		}
	}
	if err := corpusWatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		cancel()
	}()

	fmt.Printf("Serving live report at http://%s\n", reportServer.Addr())
	return reportServer.Start(ctx)
}
