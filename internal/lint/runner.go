// Package lint wires the scanner, registry, and checkers into a single run:
// scan the configured roots, apply the selected checks, and produce an
// ordered report. The CLI commands, watch mode, and serve mode all go
// through the same runner.
package lint

import (
	"context"
	"os"

	"github.com/quizkit/quizlint/internal/checks"
	"github.com/quizkit/quizlint/internal/config"
	qerr "github.com/quizkit/quizlint/internal/errors"
	"github.com/quizkit/quizlint/internal/registry"
	"github.com/quizkit/quizlint/internal/report"
	"github.com/quizkit/quizlint/internal/scanner"
)

// Selection chooses which checkers a run applies.
type Selection struct {
	Schema   bool
	Pairing  bool
	Examples bool
}

// All selects every checker.
func All() Selection {
	return Selection{Schema: true, Pairing: true, Examples: true}
}

// needsDocs reports whether the selection requires scanning the question and
// answer roots.
func (s Selection) needsDocs() bool {
	return s.Schema || s.Pairing
}

// Runner owns the registry and scanner for repeated runs over the same
// corpus. Watch and serve mode reuse one runner across rescans.
type Runner struct {
	cfg      *config.Config
	registry *registry.CorpusRegistry
	checker  *checks.ExampleChecker
}

// NewRunner creates a runner for the configured corpus.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		cfg:      cfg,
		registry: registry.NewCorpusRegistry(),
		checker:  checks.NewExampleChecker(cfg.Examples.Denylist),
	}
}

// Registry exposes the runner's corpus registry for event subscribers.
func (r *Runner) Registry() *registry.CorpusRegistry {
	return r.registry
}

// ValidateRoots checks eagerly that every root the selection needs exists.
// A missing root is a usage error: it aborts before any scanning, per the
// CLI contract, instead of producing an empty clean report.
func (r *Runner) ValidateRoots(sel Selection) error {
	roots := make([]string, 0, 3)
	if sel.needsDocs() {
		roots = append(roots, r.cfg.Roots.Questions, r.cfg.Roots.Answers)
	}
	if sel.Examples {
		roots = append(roots, r.cfg.Roots.Examples)
	}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return qerr.NewUsageError(root, "directory does not exist")
		}
		if !info.IsDir() {
			return qerr.NewUsageError(root, "not a directory")
		}
	}
	return nil
}

// Run scans the corpus and applies the selected checks. Per-file read
// failures surface as io-error violations inside the report; the returned
// error is reserved for scan-level failures and cancellation.
func (r *Runner) Run(ctx context.Context, sel Selection) (*report.Report, error) {
	collector := qerr.NewCollector()

	// Fresh snapshot per run so deletions between runs do not linger.
	r.registry.Clear()

	corpusScanner := scanner.NewCorpusScanner(r.registry, collector, r.cfg.NormalizeOptions())
	defer corpusScanner.Close()

	if sel.needsDocs() {
		if err := corpusScanner.ScanQuestions(ctx, r.cfg.Roots.Questions); err != nil {
			return nil, err
		}
		if err := corpusScanner.ScanAnswers(ctx, r.cfg.Roots.Answers); err != nil {
			return nil, err
		}
	}
	if sel.Examples {
		if err := corpusScanner.ScanExamples(ctx, r.cfg.Roots.Examples); err != nil {
			return nil, err
		}
	}

	// All scan workers have joined; checker input is now an immutable
	// snapshot and result ordering is purely deterministic.
	if sel.Schema {
		for _, doc := range r.registry.Documents() {
			collector.AddAll(checks.Schema(doc))
		}
	}
	if sel.Pairing {
		collector.AddAll(checks.Pairing(r.registry.Questions(), r.registry.Answers()))
	}
	if sel.Examples {
		collector.AddAll(r.checker.CheckAll(r.registry.Scripts()))
	}

	return report.New(collector.Violations()), nil
}
