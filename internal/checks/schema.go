// Package checks implements the three corpus convention checkers: document
// schema, question/answer pairing, and the example-script split. Checkers
// are pure functions over registry snapshots; they return violation lists
// and never fail.
package checks

import (
	"fmt"

	"github.com/quizkit/quizlint/internal/corpus"
	qerr "github.com/quizkit/quizlint/internal/errors"
)

// Schema verifies a single document against the required shape: a top-level
// heading, at least one numbered item, and a non-empty body per item. A file
// with no recognizable structure yields violations, never an error.
func Schema(doc *corpus.Document) []qerr.Violation {
	violations := make([]qerr.Violation, 0)

	if doc.Heading == "" {
		violations = append(violations, qerr.Violation{
			Checker:  qerr.CheckerSchema,
			File:     doc.FilePath,
			Reason:   "heading missing",
			Kind:     qerr.KindContent,
			Severity: qerr.SeverityError,
		})
	}

	if len(doc.Prompts) == 0 {
		violations = append(violations, qerr.Violation{
			Checker:  qerr.CheckerSchema,
			File:     doc.FilePath,
			Reason:   "no numbered items found",
			Kind:     qerr.KindContent,
			Severity: qerr.SeverityError,
		})
		return violations
	}

	seen := make(map[int]bool, len(doc.Prompts))
	for _, prompt := range doc.Prompts {
		if !prompt.HasBody() && prompt.Title == "" {
			violations = append(violations, qerr.Violation{
				Checker:  qerr.CheckerSchema,
				File:     doc.FilePath,
				Item:     prompt.Number,
				Reason:   fmt.Sprintf("item %d has empty body", prompt.Number),
				Kind:     qerr.KindContent,
				Severity: qerr.SeverityError,
			})
		}
		if seen[prompt.Number] {
			violations = append(violations, qerr.Violation{
				Checker:  qerr.CheckerSchema,
				File:     doc.FilePath,
				Item:     prompt.Number,
				Reason:   fmt.Sprintf("duplicate item number %d", prompt.Number),
				Kind:     qerr.KindContent,
				Severity: qerr.SeverityWarning,
			})
		}
		seen[prompt.Number] = true
	}

	return violations
}
