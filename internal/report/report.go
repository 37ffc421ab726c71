// Package report renders collected violations in the supported output
// formats. Rendering is deterministic: identical violation sets always
// produce byte-identical output, so repeated runs over an unchanged corpus
// can be compared directly.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	qerr "github.com/quizkit/quizlint/internal/errors"
	"gopkg.in/yaml.v3"
)

// Format selects the report output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json, yaml)", s)
	}
}

// Record is the serialized shape of one violation.
type Record struct {
	File    string `json:"file" yaml:"file"`
	Item    int    `json:"item" yaml:"item"`
	Reason  string `json:"reason" yaml:"reason"`
	Checker string `json:"checker" yaml:"checker"`
	Kind    string `json:"kind" yaml:"kind"`
}

// Report holds a deterministically ordered violation list ready to render.
type Report struct {
	violations []qerr.Violation
}

// checkerRank fixes the relative order of the three checkers in merged
// reports: schema findings, then pairing, then examples.
func checkerRank(c qerr.Checker) int {
	switch c {
	case qerr.CheckerSchema:
		return 0
	case qerr.CheckerPairing:
		return 1
	case qerr.CheckerExamples:
		return 2
	default:
		return 3
	}
}

// New builds a report from collected violations, imposing the deterministic
// ordering. Checkers emit content violations in a meaningful order already
// (document order, or the pairing checker's orphans-then-prompts rule), so
// the sort is stable and only groups by checker and rank. io-error
// violations may arrive in worker completion order and are additionally
// ordered by file.
func New(violations []qerr.Violation) *Report {
	sorted := make([]qerr.Violation, len(violations))
	copy(sorted, violations)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if checkerRank(a.Checker) != checkerRank(b.Checker) {
			return checkerRank(a.Checker) < checkerRank(b.Checker)
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		if a.Kind == qerr.KindIO && b.Kind == qerr.KindIO {
			return a.File < b.File
		}
		return false
	})

	return &Report{violations: sorted}
}

// Violations returns the ordered violation list.
func (r *Report) Violations() []qerr.Violation {
	return r.violations
}

// Count returns the number of violations in the report.
func (r *Report) Count() int {
	return len(r.violations)
}

// HasViolations reports whether the report contains any violations.
func (r *Report) HasViolations() bool {
	return len(r.violations) > 0
}

// Summary returns the one-line summary printed after the detail list.
func (r *Report) Summary() string {
	switch n := len(r.violations); n {
	case 0:
		return "no violations found"
	case 1:
		return "1 violation found"
	default:
		return fmt.Sprintf("%d violations found", n)
	}
}

// Records converts the ordered violations to their serialized shape.
func (r *Report) Records() []Record {
	records := make([]Record, 0, len(r.violations))
	for _, v := range r.violations {
		records = append(records, Record{
			File:    v.File,
			Item:    v.Item,
			Reason:  v.Reason,
			Checker: string(v.Checker),
			Kind:    string(v.Kind),
		})
	}
	return records
}

// Write renders the report in the given format.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatYAML:
		return r.WriteYAML(w)
	default:
		return r.WriteText(w)
	}
}

// WriteText prints one line per violation as "<file>:<item-or-blank>: <reason>"
// followed by the summary line.
func (r *Report) WriteText(w io.Writer) error {
	for _, v := range r.violations {
		item := ""
		if v.Item > 0 {
			item = fmt.Sprintf("%d", v.Item)
		}
		if _, err := fmt.Fprintf(w, "%s:%s: %s\n", v.File, item, v.Reason); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, r.Summary())
	return err
}

// WriteJSON emits the violations as an indented JSON array.
func (r *Report) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.Records())
}

// WriteYAML emits the violations as a YAML sequence.
func (r *Report) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(r.Records())
}
