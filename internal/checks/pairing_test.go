package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizkit/quizlint/internal/corpus"
	qerr "github.com/quizkit/quizlint/internal/errors"
)

func pairDoc(kind corpus.DocKind, level corpus.Level, topic, path string, numbers ...int) *corpus.Document {
	prompts := make([]corpus.Prompt, 0, len(numbers))
	for _, n := range numbers {
		prompts = append(prompts, corpus.Prompt{Number: n, Title: "t", Body: "b"})
	}
	return &corpus.Document{
		Kind:     kind,
		Key:      corpus.DocKey{Level: level, Topic: topic},
		FilePath: path,
		Prompts:  prompts,
	}
}

func docMap(docs ...*corpus.Document) map[corpus.DocKey]*corpus.Document {
	m := make(map[corpus.DocKey]*corpus.Document, len(docs))
	for _, d := range docs {
		m[d.Key] = d
	}
	return m
}

func TestPairingCleanCorpus(t *testing.T) {
	questions := docMap(
		pairDoc(corpus.KindQuestion, corpus.LevelBeginner, "blocks", "questions/beginner/blocks.md", 1, 2),
	)
	answers := docMap(
		pairDoc(corpus.KindAnswer, corpus.LevelBeginner, "blocks", "answers/beginner/blocks.md", 1, 2),
	)

	assert.Empty(t, Pairing(questions, answers))
}

func TestPairingOrphanQuestion(t *testing.T) {
	questions := docMap(
		pairDoc(corpus.KindQuestion, corpus.LevelBeginner, "blocks", "questions/beginner/blocks.md", 1),
	)
	answers := docMap()

	violations := Pairing(questions, answers)
	require.Len(t, violations, 1)
	assert.Equal(t, qerr.CheckerPairing, violations[0].Checker)
	assert.Equal(t, "questions/beginner/blocks.md", violations[0].File)
	assert.Equal(t, "orphan question: no answer file for topic blocks, level beginner", violations[0].Reason)
	assert.Equal(t, qerr.SeverityError, violations[0].Severity)
}

func TestPairingOrphanAnswer(t *testing.T) {
	questions := docMap()
	answers := docMap(
		pairDoc(corpus.KindAnswer, corpus.LevelAdvanced, "gc", "answers/advanced/gc.md", 1),
	)

	violations := Pairing(questions, answers)
	require.Len(t, violations, 1)
	assert.Equal(t, "orphan answer: no question file for topic gc, level advanced", violations[0].Reason)
}

func TestPairingUnansweredPrompt(t *testing.T) {
	questions := docMap(
		pairDoc(corpus.KindQuestion, corpus.LevelBeginner, "blocks", "questions/beginner/blocks.md", 1, 2, 3),
	)
	answers := docMap(
		pairDoc(corpus.KindAnswer, corpus.LevelBeginner, "blocks", "answers/beginner/blocks.md", 1, 3),
	)

	violations := Pairing(questions, answers)
	require.Len(t, violations, 1)
	assert.Equal(t, 2, violations[0].Item)
	assert.Equal(t, "answers/beginner/blocks.md", violations[0].File)
	assert.Equal(t, "unanswered prompt 2 in topic blocks, level beginner", violations[0].Reason)
	assert.Equal(t, qerr.SeverityError, violations[0].Severity)
}

func TestPairingUnmatchedAnswerPromptIsInformational(t *testing.T) {
	questions := docMap(
		pairDoc(corpus.KindQuestion, corpus.LevelBeginner, "blocks", "questions/beginner/blocks.md", 1),
	)
	answers := docMap(
		pairDoc(corpus.KindAnswer, corpus.LevelBeginner, "blocks", "answers/beginner/blocks.md", 1, 5),
	)

	violations := Pairing(questions, answers)
	require.Len(t, violations, 1)
	assert.Equal(t, 5, violations[0].Item)
	assert.Equal(t, "unmatched answer prompt 5 in topic blocks, level beginner", violations[0].Reason)
	assert.Equal(t, qerr.SeverityInfo, violations[0].Severity)
}

func TestPairingDeterministicOrder(t *testing.T) {
	questions := docMap(
		pairDoc(corpus.KindQuestion, corpus.LevelRails, "ar", "questions/rails/ar.md", 1, 2),
		pairDoc(corpus.KindQuestion, corpus.LevelBeginner, "blocks", "questions/beginner/blocks.md", 1, 2),
		pairDoc(corpus.KindQuestion, corpus.LevelBeginner, "zmisc", "questions/beginner/zmisc.md", 1),
	)
	answers := docMap(
		pairDoc(corpus.KindAnswer, corpus.LevelRails, "ar", "answers/rails/ar.md", 1, 9),
		pairDoc(corpus.KindAnswer, corpus.LevelBeginner, "blocks", "answers/beginner/blocks.md", 1),
		pairDoc(corpus.KindAnswer, corpus.LevelAdvanced, "gc", "answers/advanced/gc.md", 1),
	)

	violations := Pairing(questions, answers)
	require.Len(t, violations, 5)

	// Orphans first, ordered by file path.
	assert.Equal(t, "answers/advanced/gc.md", violations[0].File)
	assert.Contains(t, violations[0].Reason, "orphan answer")
	assert.Equal(t, "questions/beginner/zmisc.md", violations[1].File)
	assert.Contains(t, violations[1].Reason, "orphan question")

	// Then unanswered prompts in level/topic order: beginner before rails.
	assert.Equal(t, "unanswered prompt 2 in topic blocks, level beginner", violations[2].Reason)
	assert.Equal(t, "unanswered prompt 2 in topic ar, level rails", violations[3].Reason)

	// Informational unmatched answer prompts last.
	assert.Equal(t, "unmatched answer prompt 9 in topic ar, level rails", violations[4].Reason)
}

func TestPairingSameTopicDifferentLevels(t *testing.T) {
	// The same topic at two levels is two distinct pairs.
	questions := docMap(
		pairDoc(corpus.KindQuestion, corpus.LevelBeginner, "blocks", "questions/beginner/blocks.md", 1),
		pairDoc(corpus.KindQuestion, corpus.LevelAdvanced, "blocks", "questions/advanced/blocks.md", 1),
	)
	answers := docMap(
		pairDoc(corpus.KindAnswer, corpus.LevelBeginner, "blocks", "answers/beginner/blocks.md", 1),
	)

	violations := Pairing(questions, answers)
	require.Len(t, violations, 1)
	assert.Equal(t, "questions/advanced/blocks.md", violations[0].File)
	assert.Contains(t, violations[0].Reason, "level advanced")
}

func TestLevelRank(t *testing.T) {
	assert.Less(t, levelRank(corpus.LevelBeginner), levelRank(corpus.LevelIntermediate))
	assert.Less(t, levelRank(corpus.LevelIntermediate), levelRank(corpus.LevelAdvanced))
	assert.Less(t, levelRank(corpus.LevelAdvanced), levelRank(corpus.LevelRails))
	assert.Equal(t, len(corpus.Levels()), levelRank(corpus.Level("other")))
}
