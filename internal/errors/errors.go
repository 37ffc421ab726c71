package errors

import (
	"fmt"
	"sync"
	"time"
)

// Checker names the convention check a violation came from.
type Checker string

const (
	CheckerSchema   Checker = "schema"
	CheckerPairing  Checker = "pairing"
	CheckerExamples Checker = "examples"
)

// Kind classifies a violation. Content violations are expected findings;
// io-error marks files that could not be read and must never abort a scan.
type Kind string

const (
	KindContent Kind = "content"
	KindIO      Kind = "io-error"
)

// Severity represents the severity of a violation
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Violation is a single convention breach. Violations are reports, not
// failures: a run collects every violation it finds and keeps going.
type Violation struct {
	Checker Checker `json:"checker"`
	File    string  `json:"file"`
	// Item is the numbered prompt the violation refers to, 0 when the
	// violation concerns the whole file.
	Item   int    `json:"item"`
	Reason string `json:"reason"`
	Kind   Kind   `json:"kind"`
	// Rank orders violations within a checker before file/item ordering
	// applies; the pairing checker uses it to keep orphans ahead of
	// unanswered prompts.
	Rank      int       `json:"-"`
	Severity  Severity  `json:"-"`
	Timestamp time.Time `json:"-"`
}

// Error implements the error interface
func (v *Violation) Error() string {
	if v.Item > 0 {
		return fmt.Sprintf("%s:%d: %s", v.File, v.Item, v.Reason)
	}
	return fmt.Sprintf("%s:: %s", v.File, v.Reason)
}

// NewIOViolation wraps a per-file read failure as an io-error violation so
// one unreadable file cannot abort the run.
func NewIOViolation(checker Checker, file string, err error) Violation {
	return Violation{
		Checker:  checker,
		File:     file,
		Reason:   fmt.Sprintf("cannot read file: %v", err),
		Kind:     KindIO,
		Rank:     -1,
		Severity: SeverityError,
	}
}

// Collector accumulates violations from concurrent checker workers.
type Collector struct {
	violations []Violation
	errors     []error
	mutex      sync.RWMutex
}

// NewCollector creates a new violation collector
func NewCollector() *Collector {
	return &Collector{
		violations: make([]Violation, 0),
		errors:     make([]error, 0),
	}
}

// Add adds a violation to the collector
func (c *Collector) Add(v Violation) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	v.Timestamp = time.Now()
	c.violations = append(c.violations, v)
}

// AddAll adds a batch of violations to the collector
func (c *Collector) AddAll(vs []Violation) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	now := time.Now()
	for _, v := range vs {
		v.Timestamp = now
		c.violations = append(c.violations, v)
	}
}

// AddError records a general (non-violation) error
func (c *Collector) AddError(err error) {
	if err == nil {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.errors = append(c.errors, err)
}

// Violations returns a copy of all collected violations
func (c *Collector) Violations() []Violation {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	result := make([]Violation, len(c.violations))
	copy(result, c.violations)
	return result
}

// Errors returns all collected general errors
func (c *Collector) Errors() []error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	result := make([]error, len(c.errors))
	copy(result, c.errors)
	return result
}

// HasViolations returns true if any violations were collected
func (c *Collector) HasViolations() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.violations) > 0
}

// Count returns the number of collected violations
func (c *Collector) Count() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.violations)
}

// Clear clears all collected violations and errors
func (c *Collector) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.violations = c.violations[:0]
	c.errors = c.errors[:0]
}

// ByFile returns violations for a specific file
func (c *Collector) ByFile(file string) []Violation {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	var out []Violation
	for _, v := range c.violations {
		if v.File == file {
			out = append(out, v)
		}
	}
	return out
}

// ByChecker returns violations reported by a specific checker
func (c *Collector) ByChecker(checker Checker) []Violation {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	var out []Violation
	for _, v := range c.violations {
		if v.Checker == checker {
			out = append(out, v)
		}
	}
	return out
}
