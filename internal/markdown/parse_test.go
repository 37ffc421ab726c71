package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWellFormedDocument(t *testing.T) {
	content := []byte(`# Beginner Questions: Blocks

### 1. What is a block?

Explain in your own words.

### 2. What does yield do?

` + "```ruby\nyield 42\n```" + `
`)

	doc := Parse(content)

	assert.Equal(t, "Beginner Questions: Blocks", doc.Heading)
	assert.Equal(t, 1, doc.HeadingLine)
	require.Len(t, doc.Items, 2)

	assert.Equal(t, 1, doc.Items[0].Number)
	assert.Equal(t, "What is a block?", doc.Items[0].Title)
	assert.True(t, doc.Items[0].HasBody())
	assert.False(t, doc.Items[0].HasCode)
	assert.Equal(t, 3, doc.Items[0].Line)

	assert.Equal(t, 2, doc.Items[1].Number)
	assert.True(t, doc.Items[1].HasCode)
}

func TestParseMarkerVariants(t *testing.T) {
	testCases := []struct {
		name   string
		line   string
		number int
		title  string
	}{
		{"dot", "### 3. What is a Proc?", 3, "What is a Proc?"},
		{"paren", "### 3) What is a Proc?", 3, "What is a Proc?"},
		{"q prefix", "### Q3. What is a Proc?", 3, "What is a Proc?"},
		{"lowercase q", "### q3. What is a Proc?", 3, "What is a Proc?"},
		{"no punctuation", "### 3 What is a Proc?", 3, "What is a Proc?"},
		{"no title", "### 12.", 12, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := Parse([]byte(tc.line + "\n"))
			require.Len(t, doc.Items, 1)
			assert.Equal(t, tc.number, doc.Items[0].Number)
			assert.Equal(t, tc.title, doc.Items[0].Title)
		})
	}
}

func TestParseNonMarkerHeadings(t *testing.T) {
	content := []byte(`# Title

## Section

### Not numbered

### 1. Real item
`)

	doc := Parse(content)

	require.Len(t, doc.Items, 1)
	assert.Equal(t, 1, doc.Items[0].Number)
}

func TestParseMarkerInsideFence(t *testing.T) {
	content := []byte("# Doc\n\n### 1. Show a heredoc\n\n```ruby\ntext = <<~MD\n### 2. this is sample markdown\nMD\n```\n\n### 2. Next item\n\nBody.\n")

	doc := Parse(content)

	require.Len(t, doc.Items, 2)
	assert.Equal(t, 1, doc.Items[0].Number)
	assert.Equal(t, 2, doc.Items[1].Number)
	assert.Contains(t, doc.Items[0].Body, "this is sample markdown")
	assert.True(t, doc.Items[0].HasCode)
}

func TestParseNoHeading(t *testing.T) {
	doc := Parse([]byte("### 1. Orphan item\n\nBody.\n"))

	assert.Empty(t, doc.Heading)
	assert.Zero(t, doc.HeadingLine)
	require.Len(t, doc.Items, 1)
}

func TestParseOnlyFirstTopLevelHeading(t *testing.T) {
	doc := Parse([]byte("# First\n\n# Second\n"))

	assert.Equal(t, "First", doc.Heading)
	assert.Equal(t, 1, doc.HeadingLine)
}

func TestParseEmptyContent(t *testing.T) {
	doc := Parse(nil)

	assert.Empty(t, doc.Heading)
	assert.Empty(t, doc.Items)
}

func TestParseProseWithoutStructure(t *testing.T) {
	doc := Parse([]byte("just some text\nwith no structure at all\n"))

	assert.Empty(t, doc.Heading)
	assert.Empty(t, doc.Items)
}

func TestParseDuplicateNumbersPreserved(t *testing.T) {
	content := []byte("# Doc\n\n### 1. First\n\nA.\n\n### 1. Again\n\nB.\n")

	doc := Parse(content)

	require.Len(t, doc.Items, 2)
	assert.Equal(t, 1, doc.Items[0].Number)
	assert.Equal(t, 1, doc.Items[1].Number)
}

func TestParseEmptyBody(t *testing.T) {
	content := []byte("# Doc\n\n### 1. Has title only\n\n### 2. Has body\n\ntext\n")

	doc := Parse(content)

	require.Len(t, doc.Items, 2)
	assert.False(t, doc.Items[0].HasBody())
	assert.True(t, doc.Items[1].HasBody())
}

func TestParseBodySpansUntilNextMarker(t *testing.T) {
	content := []byte("# Doc\n\n### 1. Item\n\nline one\nline two\n\n### 2. Next\n")

	doc := Parse(content)

	require.Len(t, doc.Items, 2)
	assert.Contains(t, doc.Items[0].Body, "line one")
	assert.Contains(t, doc.Items[0].Body, "line two")
	assert.NotContains(t, doc.Items[0].Body, "Next")
}
