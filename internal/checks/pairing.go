package checks

import (
	"fmt"
	"sort"

	"github.com/quizkit/quizlint/internal/corpus"
	qerr "github.com/quizkit/quizlint/internal/errors"
)

// Pairing rank values keep the deterministic report order: orphans come
// before unanswered prompts, which come before informational unmatched
// answer prompts.
const (
	rankOrphan = iota
	rankUnanswered
	rankUnmatched
)

// Pairing verifies the 1:1 question/answer convention across the two trees.
// Keys present in only one tree are orphans; for shared keys, every question
// prompt must have a matching answer prompt. Answer-only prompt numbers are
// reported as informational.
//
// The returned slice is already in deterministic order: orphans sorted by
// file path, then prompt mismatches sorted by level, topic, number.
func Pairing(questions, answers map[corpus.DocKey]*corpus.Document) []qerr.Violation {
	orphans := make([]qerr.Violation, 0)
	violations := make([]qerr.Violation, 0)

	// Symmetric key difference: orphans on either side.
	for key, doc := range questions {
		if _, ok := answers[key]; !ok {
			orphans = append(orphans, qerr.Violation{
				Checker:  qerr.CheckerPairing,
				File:     doc.FilePath,
				Reason:   fmt.Sprintf("orphan question: no answer file for topic %s, level %s", key.Topic, key.Level),
				Kind:     qerr.KindContent,
				Rank:     rankOrphan,
				Severity: qerr.SeverityError,
			})
		}
	}
	for key, doc := range answers {
		if _, ok := questions[key]; !ok {
			orphans = append(orphans, qerr.Violation{
				Checker:  qerr.CheckerPairing,
				File:     doc.FilePath,
				Reason:   fmt.Sprintf("orphan answer: no question file for topic %s, level %s", key.Topic, key.Level),
				Kind:     qerr.KindContent,
				Rank:     rankOrphan,
				Severity: qerr.SeverityError,
			})
		}
	}

	// Shared keys in deterministic order for the prompt-set comparison.
	shared := make([]corpus.DocKey, 0, len(questions))
	for key := range questions {
		if _, ok := answers[key]; ok {
			shared = append(shared, key)
		}
	}
	sort.Slice(shared, func(i, j int) bool {
		if shared[i].Level != shared[j].Level {
			return levelRank(shared[i].Level) < levelRank(shared[j].Level)
		}
		return shared[i].Topic < shared[j].Topic
	})

	for _, key := range shared {
		question := questions[key]
		answer := answers[key]

		for _, n := range question.PromptNumbers() {
			if !answer.HasPrompt(n) {
				violations = append(violations, qerr.Violation{
					Checker:  qerr.CheckerPairing,
					File:     answer.FilePath,
					Item:     n,
					Reason:   fmt.Sprintf("unanswered prompt %d in topic %s, level %s", n, key.Topic, key.Level),
					Kind:     qerr.KindContent,
					Rank:     rankUnanswered,
					Severity: qerr.SeverityError,
				})
			}
		}
		for _, n := range answer.PromptNumbers() {
			if !question.HasPrompt(n) {
				violations = append(violations, qerr.Violation{
					Checker:  qerr.CheckerPairing,
					File:     answer.FilePath,
					Item:     n,
					Reason:   fmt.Sprintf("unmatched answer prompt %d in topic %s, level %s", n, key.Topic, key.Level),
					Kind:     qerr.KindContent,
					Rank:     rankUnmatched,
					Severity: qerr.SeverityInfo,
				})
			}
		}
	}

	// Orphans are ordered by path. The prompt mismatches were generated in
	// level/topic/number order; the stable sort only moves the
	// informational unmatched prompts behind the unanswered ones.
	sort.SliceStable(orphans, func(i, j int) bool {
		return orphans[i].File < orphans[j].File
	})
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Rank < violations[j].Rank
	})

	return append(orphans, violations...)
}

// levelRank orders levels beginner < intermediate < advanced < rails, the
// canonical tier order, rather than alphabetically.
func levelRank(level corpus.Level) int {
	for i, l := range corpus.Levels() {
		if l == level {
			return i
		}
	}
	return len(corpus.Levels())
}
