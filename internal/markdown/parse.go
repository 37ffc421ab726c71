// Package markdown parses corpus documents into their structural shape: the
// top-level heading and the ordered list of numbered items with their bodies.
//
// The parser is deliberately forgiving: it never returns an error. Malformed
// input yields a Doc with whatever structure could be recovered, and the
// schema checker decides what counts as a violation. Parsing is a pure
// function of the byte content, so it is safe to call from scanner workers
// concurrently.
package markdown

import (
	"regexp"
	"strings"
)

// Item is one numbered entry in a document, e.g. "### 4. What is a Proc?".
type Item struct {
	// Number is the item number as written in the marker line
	Number int
	// Title is the remainder of the marker line after the number
	Title string
	// Body is the raw text between this marker and the next structural line
	Body string
	// HasCode reports whether the body contains at least one fenced block
	HasCode bool
	// Line is the 1-based line number of the marker, for violation messages
	Line int
}

// Doc is the parsed structural view of a corpus document.
type Doc struct {
	// Heading is the text of the first top-level (#) heading, empty if none
	Heading string
	// HeadingLine is the 1-based line of the heading, 0 when absent
	HeadingLine int
	Items       []Item
}

// itemMarker matches the numbered item markers the corpus uses:
// "### 3. ..." and "### Q3. ..." with an optional trailing dot or paren.
var itemMarker = regexp.MustCompile(`^###\s+[Qq]?(\d+)[.)]?\s*(.*)$`)

// Parse extracts the structural shape of a document. It always succeeds; a
// document with no recognizable structure parses to an empty Doc.
func Parse(content []byte) *Doc {
	doc := &Doc{}
	lines := strings.Split(string(content), "\n")

	var current *Item
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.Join(body, "\n")
		current.HasCode = strings.Contains(current.Body, "```")
		doc.Items = append(doc.Items, *current)
		current = nil
		body = nil
	}

	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Fenced blocks may contain lines that look like markers; track the
		// fence state so items inside code samples are not split.
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}
		if inFence && !strings.HasPrefix(trimmed, "```") {
			if current != nil {
				body = append(body, line)
			}
			continue
		}

		if doc.Heading == "" && doc.HeadingLine == 0 &&
			strings.HasPrefix(trimmed, "# ") {
			doc.Heading = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
			doc.HeadingLine = i + 1
			continue
		}

		if m := itemMarker.FindStringSubmatch(trimmed); m != nil {
			flush()
			number := parseInt(m[1])
			current = &Item{
				Number: number,
				Title:  strings.TrimSpace(m[2]),
				Line:   i + 1,
			}
			continue
		}

		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return doc
}

// HasBody reports whether the item body contains any non-whitespace text.
func (it Item) HasBody() bool {
	return strings.TrimSpace(it.Body) != ""
}

func parseInt(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
