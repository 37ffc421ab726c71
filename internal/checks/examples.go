package checks

import (
	"regexp"
	"strings"

	"github.com/quizkit/quizlint/internal/corpus"
	qerr "github.com/quizkit/quizlint/internal/errors"
)

// ExampleChecker verifies the dependency-free/framework-dependent split of
// the examples tree. The framework vocabulary is configurable; tokens are
// matched as whole words so a denylist entry cannot fire inside an unrelated
// identifier.
type ExampleChecker struct {
	denylist []string
	patterns []*regexp.Regexp
}

// versionNote matches the annotations that count as a version/setup note in
// framework-dependent examples: a version number like "7.1" or the word
// "setup" in any casing. Only comment and heading lines are searched, so a
// numeric literal in code (sleep 0.5) does not pass as an annotation.
var versionNote = regexp.MustCompile(`(?i)\d+\.\d+|\bsetup\b`)

// NewExampleChecker compiles the denylist into word-boundary patterns.
func NewExampleChecker(denylist []string) *ExampleChecker {
	checker := &ExampleChecker{denylist: denylist}
	for _, token := range denylist {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		checker.patterns = append(checker.patterns,
			regexp.MustCompile(`\b`+regexp.QuoteMeta(token)+`\b`))
	}
	return checker
}

// Denylist returns the configured framework vocabulary.
func (c *ExampleChecker) Denylist() []string {
	return c.denylist
}

// Check validates one example script against its category's contract.
func (c *ExampleChecker) Check(script *corpus.ExampleScript) []qerr.Violation {
	switch script.Category {
	case corpus.CategorySnippet:
		return c.checkSnippet(script)
	case corpus.CategoryFramework:
		return c.checkFramework(script)
	default:
		return nil
	}
}

// CheckAll validates every script, returning violations in script order.
func (c *ExampleChecker) CheckAll(scripts []*corpus.ExampleScript) []qerr.Violation {
	violations := make([]qerr.Violation, 0)
	for _, script := range scripts {
		violations = append(violations, c.Check(script)...)
	}
	return violations
}

// checkSnippet rejects dependency-free scripts that reach for framework
// vocabulary. One violation per file is enough; the first matched token is
// representative.
func (c *ExampleChecker) checkSnippet(script *corpus.ExampleScript) []qerr.Violation {
	for _, pattern := range c.patterns {
		if pattern.MatchString(script.Content) {
			return []qerr.Violation{{
				Checker:  qerr.CheckerExamples,
				File:     script.FilePath,
				Reason:   "framework dependency found in dependency-free example",
				Kind:     qerr.KindContent,
				Severity: qerr.SeverityError,
			}}
		}
	}
	return nil
}

// checkFramework requires a visible version/setup annotation in a comment or
// heading line of the script.
func (c *ExampleChecker) checkFramework(script *corpus.ExampleScript) []qerr.Violation {
	for _, line := range strings.Split(script.Content, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if versionNote.MatchString(line) {
			return nil
		}
	}
	return []qerr.Violation{{
		Checker:  qerr.CheckerExamples,
		File:     script.FilePath,
		Reason:   "missing framework version/setup note",
		Kind:     qerr.KindContent,
		Severity: qerr.SeverityError,
	}}
}
