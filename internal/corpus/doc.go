// Package corpus defines the domain model for an interview-question corpus:
// question and answer documents keyed by level and topic, and the standalone
// example scripts that accompany them. Documents are immutable snapshots of
// files on disk; all mutation happens through re-scanning.
package corpus

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DocKind distinguishes question documents from answer documents.
type DocKind int

const (
	KindQuestion DocKind = iota
	KindAnswer
)

// String returns the string representation of the document kind
func (k DocKind) String() string {
	switch k {
	case KindQuestion:
		return "question"
	case KindAnswer:
		return "answer"
	default:
		return "unknown"
	}
}

// Level is one of the fixed content tiers of the corpus.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelRails        Level = "rails"
)

// Levels returns all known levels in their canonical order.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelRails}
}

// ParseLevel maps a directory name to a Level. The boolean reports whether
// the name is a recognized tier.
func ParseLevel(name string) (Level, bool) {
	switch Level(name) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelRails:
		return Level(name), true
	default:
		return "", false
	}
}

// DocKey identifies a question/answer pair. Topic is stored in normalized
// form so that incidental naming drift between the two trees still matches.
type DocKey struct {
	Level Level
	Topic string
}

// String returns "level/topic" for logs and violation messages.
func (k DocKey) String() string {
	return fmt.Sprintf("%s/%s", k.Level, k.Topic)
}

// Prompt is one numbered item inside a document.
type Prompt struct {
	// Number is the item number as written in the source (### 3. or ### Q3.)
	Number int
	// Title is the text following the number on the marker line
	Title string
	// Body is the raw text between this marker and the next one
	Body string
	// HasCode reports whether the body contains at least one fenced block
	HasCode bool
}

// HasBody reports whether the prompt body contains non-whitespace text.
func (p Prompt) HasBody() bool {
	return strings.TrimSpace(p.Body) != ""
}

// Document is the parsed form of a single question or answer file.
type Document struct {
	Kind     DocKind
	Key      DocKey
	FilePath string
	// Heading is the text of the first top-level heading, empty when absent
	Heading string
	Prompts []Prompt
	Hash    string
	LastMod time.Time
}

// PromptNumbers returns the sorted set of item numbers in the document.
func (d *Document) PromptNumbers() []int {
	seen := make(map[int]bool, len(d.Prompts))
	nums := make([]int, 0, len(d.Prompts))
	for _, p := range d.Prompts {
		if !seen[p.Number] {
			seen[p.Number] = true
			nums = append(nums, p.Number)
		}
	}
	sort.Ints(nums)
	return nums
}

// HasPrompt reports whether the document contains an item with the number.
func (d *Document) HasPrompt(n int) bool {
	for _, p := range d.Prompts {
		if p.Number == n {
			return true
		}
	}
	return false
}

// ScriptCategory tags an example script by which examples subtree it lives in.
type ScriptCategory int

const (
	// CategorySnippet marks dependency-free scripts under examples/snippets
	CategorySnippet ScriptCategory = iota
	// CategoryFramework marks framework-dependent scripts under examples/rails
	CategoryFramework
)

// String returns the string representation of the script category
func (c ScriptCategory) String() string {
	switch c {
	case CategorySnippet:
		return "snippet"
	case CategoryFramework:
		return "framework"
	default:
		return "unknown"
	}
}

// ExampleScript is a standalone runnable file under the examples tree.
// Content is retained because the example checker scans it for framework
// vocabulary and setup annotations; scripts are small by convention.
type ExampleScript struct {
	FilePath string
	Category ScriptCategory
	Content  string
	Hash     string
	LastMod  time.Time
}
