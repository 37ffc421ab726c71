package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizkit/quizlint/internal/config"
	qerr "github.com/quizkit/quizlint/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// cleanCorpus lays out a minimal corpus that passes every check.
func cleanCorpus(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "questions", "beginner", "blocks.md"),
		"# Beginner: Blocks\n\n### 1. What is a block?\n\nExplain.\n\n### 2. What does yield do?\n\nExplain.\n")
	writeFile(t, filepath.Join(dir, "answers", "beginner", "blocks.md"),
		"# Answers: Blocks\n\n### 1. What is a block?\n\nA chunk of code.\n\n### 2. What does yield do?\n\nCalls the block.\n")
	writeFile(t, filepath.Join(dir, "examples", "snippets", "blocks.rb"),
		"puts [1, 2, 3].map { |x| x * 2 }\n")
	writeFile(t, filepath.Join(dir, "examples", "rails", "model.rb"),
		"# Rails 7.1\nclass User < ApplicationRecord\nend\n")

	return &config.Config{
		Roots: config.RootsConfig{
			Questions: filepath.Join(dir, "questions"),
			Answers:   filepath.Join(dir, "answers"),
			Examples:  filepath.Join(dir, "examples"),
		},
		Normalize: config.NormalizeConfig{Lowercase: true, Trim: true, CollapseSeparators: true},
		Examples:  config.ExamplesConfig{Denylist: config.DefaultDenylist()},
	}
}

func TestRunCleanCorpus(t *testing.T) {
	runner := NewRunner(cleanCorpus(t))

	rep, err := runner.Run(context.Background(), All())
	require.NoError(t, err)
	assert.False(t, rep.HasViolations())
	assert.Equal(t, "no violations found", rep.Summary())
}

func TestRunEmptyCorpus(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"questions", "answers", "examples"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0755))
	}

	cfg := &config.Config{
		Roots: config.RootsConfig{
			Questions: filepath.Join(dir, "questions"),
			Answers:   filepath.Join(dir, "answers"),
			Examples:  filepath.Join(dir, "examples"),
		},
		Examples: config.ExamplesConfig{Denylist: config.DefaultDenylist()},
	}

	runner := NewRunner(cfg)
	rep, err := runner.Run(context.Background(), All())
	require.NoError(t, err)
	assert.False(t, rep.HasViolations())
	assert.Equal(t, "no violations found", rep.Summary())
}

func TestRunSchemaViolations(t *testing.T) {
	cfg := cleanCorpus(t)
	writeFile(t, filepath.Join(cfg.Roots.Questions, "beginner", "broken.md"),
		"no heading, no items, just prose\n")
	writeFile(t, filepath.Join(cfg.Roots.Answers, "beginner", "broken.md"),
		"# Answers: Broken\n\n### 1. Q\n\nA.\n")

	runner := NewRunner(cfg)
	rep, err := runner.Run(context.Background(), Selection{Schema: true})
	require.NoError(t, err)

	reasons := make([]string, 0, rep.Count())
	for _, v := range rep.Violations() {
		reasons = append(reasons, v.Reason)
	}
	assert.Contains(t, reasons, "heading missing")
	assert.Contains(t, reasons, "no numbered items found")
}

func TestRunPairingViolations(t *testing.T) {
	cfg := cleanCorpus(t)
	writeFile(t, filepath.Join(cfg.Roots.Questions, "advanced", "gc.md"),
		"# Advanced: GC\n\n### 1. Describe the GC.\n\nExplain.\n")

	runner := NewRunner(cfg)
	rep, err := runner.Run(context.Background(), Selection{Pairing: true})
	require.NoError(t, err)

	require.Equal(t, 1, rep.Count())
	v := rep.Violations()[0]
	assert.Equal(t, qerr.CheckerPairing, v.Checker)
	assert.Equal(t, "orphan question: no answer file for topic gc, level advanced", v.Reason)
}

func TestRunPairingTopicNormalization(t *testing.T) {
	cfg := cleanCorpus(t)
	// Different stem spellings that normalize to the same topic still pair.
	writeFile(t, filepath.Join(cfg.Roots.Questions, "intermediate", "Error-Handling.md"),
		"# Questions\n\n### 1. Q\n\nBody.\n")
	writeFile(t, filepath.Join(cfg.Roots.Answers, "intermediate", "error_handling.md"),
		"# Answers\n\n### 1. Q\n\nA.\n")

	runner := NewRunner(cfg)
	rep, err := runner.Run(context.Background(), Selection{Pairing: true})
	require.NoError(t, err)
	assert.False(t, rep.HasViolations())
}

func TestRunDuplicateTopicSpellings(t *testing.T) {
	cfg := cleanCorpus(t)
	// Two question spellings collapsing to one topic must surface as a
	// duplicate, not as a phantom pairing mismatch against the answer.
	writeFile(t, filepath.Join(cfg.Roots.Questions, "intermediate", "Error-Handling.md"),
		"# Questions\n\n### 1. Q\n\nBody.\n")
	writeFile(t, filepath.Join(cfg.Roots.Questions, "intermediate", "error_handling.md"),
		"# Questions\n\n### 1. Q\n\nBody.\n")
	writeFile(t, filepath.Join(cfg.Roots.Answers, "intermediate", "error_handling.md"),
		"# Answers\n\n### 1. Q\n\nA.\n")

	runner := NewRunner(cfg)
	rep, err := runner.Run(context.Background(), Selection{Pairing: true})
	require.NoError(t, err)

	require.Equal(t, 1, rep.Count())
	v := rep.Violations()[0]
	assert.Contains(t, v.Reason, "duplicate topic intermediate/error_handling")
	assert.NotEqual(t, qerr.CheckerPairing, v.Checker)
}

func TestRunExamplesViolations(t *testing.T) {
	cfg := cleanCorpus(t)
	writeFile(t, filepath.Join(cfg.Roots.Examples, "snippets", "leaky.rb"),
		"class Post < ActiveRecord::Base\nend\n")
	writeFile(t, filepath.Join(cfg.Roots.Examples, "rails", "bare.rb"),
		"class Comment < ApplicationRecord\nend\n")

	runner := NewRunner(cfg)
	rep, err := runner.Run(context.Background(), Selection{Examples: true})
	require.NoError(t, err)

	require.Equal(t, 2, rep.Count())
	reasons := []string{rep.Violations()[0].Reason, rep.Violations()[1].Reason}
	assert.Contains(t, reasons, "framework dependency found in dependency-free example")
	assert.Contains(t, reasons, "missing framework version/setup note")
}

func TestRunAllReportOrder(t *testing.T) {
	cfg := cleanCorpus(t)
	writeFile(t, filepath.Join(cfg.Roots.Questions, "beginner", "bare.md"), "prose only\n")
	writeFile(t, filepath.Join(cfg.Roots.Answers, "beginner", "bare.md"),
		"# Answers\n\n### 1. Q\n\nA.\n")
	writeFile(t, filepath.Join(cfg.Roots.Examples, "snippets", "leaky.rb"), "has_many :things\n")

	runner := NewRunner(cfg)
	rep, err := runner.Run(context.Background(), All())
	require.NoError(t, err)

	violations := rep.Violations()
	require.NotEmpty(t, violations)

	// Checker blocks appear in a fixed order: schema, pairing, examples.
	lastRank := -1
	rank := func(c qerr.Checker) int {
		switch c {
		case qerr.CheckerSchema:
			return 0
		case qerr.CheckerPairing:
			return 1
		default:
			return 2
		}
	}
	for _, v := range violations {
		r := rank(v.Checker)
		assert.GreaterOrEqual(t, r, lastRank)
		lastRank = r
	}
}

func TestRunRepeatedIsIdentical(t *testing.T) {
	cfg := cleanCorpus(t)
	writeFile(t, filepath.Join(cfg.Roots.Questions, "advanced", "gc.md"),
		"# Advanced: GC\n\n### 1. Describe the GC.\n\nExplain.\n")
	writeFile(t, filepath.Join(cfg.Roots.Questions, "beginner", "bare.md"), "prose\n")

	runner := NewRunner(cfg)

	first, err := runner.Run(context.Background(), All())
	require.NoError(t, err)
	second, err := runner.Run(context.Background(), All())
	require.NoError(t, err)

	require.Equal(t, first.Count(), second.Count())
	for i := range first.Violations() {
		assert.Equal(t, first.Violations()[i].Reason, second.Violations()[i].Reason)
		assert.Equal(t, first.Violations()[i].File, second.Violations()[i].File)
	}
}

func TestRunPicksUpDeletions(t *testing.T) {
	cfg := cleanCorpus(t)
	orphan := filepath.Join(cfg.Roots.Questions, "advanced", "gc.md")
	writeFile(t, orphan, "# Advanced: GC\n\n### 1. Q\n\nBody.\n")

	runner := NewRunner(cfg)

	rep, err := runner.Run(context.Background(), All())
	require.NoError(t, err)
	assert.True(t, rep.HasViolations())

	require.NoError(t, os.Remove(orphan))

	rep, err = runner.Run(context.Background(), All())
	require.NoError(t, err)
	assert.False(t, rep.HasViolations())
}

func TestValidateRoots(t *testing.T) {
	cfg := cleanCorpus(t)

	runner := NewRunner(cfg)
	assert.NoError(t, runner.ValidateRoots(All()))

	cfg.Roots.Questions = filepath.Join(cfg.Roots.Questions, "missing")
	err := runner.ValidateRoots(All())
	require.Error(t, err)

	var usageErr *qerr.UsageError
	assert.ErrorAs(t, err, &usageErr)
}

func TestValidateRootsSelectionScoped(t *testing.T) {
	cfg := cleanCorpus(t)
	cfg.Roots.Questions = filepath.Join(cfg.Roots.Questions, "missing")

	runner := NewRunner(cfg)

	// Examples-only check does not need the document roots.
	assert.NoError(t, runner.ValidateRoots(Selection{Examples: true}))
	assert.Error(t, runner.ValidateRoots(Selection{Schema: true}))
}

func TestSelectionNeedsDocs(t *testing.T) {
	assert.True(t, Selection{Schema: true}.needsDocs())
	assert.True(t, Selection{Pairing: true}.needsDocs())
	assert.False(t, Selection{Examples: true}.needsDocs())
	assert.True(t, All().needsDocs())
}
