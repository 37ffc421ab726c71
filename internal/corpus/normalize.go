package corpus

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeOptions controls how raw topic names (filename stems) are folded
// into DocKey topics before pairing. The corpus convention is snake_case, but
// nothing enforces it at the filesystem level, so each rule is configurable
// rather than hard-coded.
type NormalizeOptions struct {
	// Lowercase folds the topic to lower case
	Lowercase bool
	// Trim removes leading and trailing whitespace
	Trim bool
	// CollapseSeparators rewrites runs of whitespace and dashes to a single
	// underscore and collapses repeated underscores
	CollapseSeparators bool
}

// DefaultNormalize returns the normalization applied when the config file
// does not say otherwise: all rules on.
func DefaultNormalize() NormalizeOptions {
	return NormalizeOptions{
		Lowercase:          true,
		Trim:               true,
		CollapseSeparators: true,
	}
}

var lowerCaser = cases.Lower(language.Und)

// Topic normalizes a raw topic name according to the options. The result is
// what gets stored in DocKey.Topic, so two files whose stems normalize to the
// same string are treated as the same topic.
func (o NormalizeOptions) Topic(raw string) string {
	topic := raw
	if o.Trim {
		topic = strings.TrimSpace(topic)
	}
	if o.Lowercase {
		topic = lowerCaser.String(topic)
	}
	if o.CollapseSeparators {
		topic = collapseSeparators(topic)
	}
	return topic
}

func collapseSeparators(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '-', '_':
			return true
		}
		return false
	})
	return strings.Join(fields, "_")
}
