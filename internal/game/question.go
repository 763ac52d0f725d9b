package game

import (
	"fmt"
	"strings"

	"line-trivia-bot/internal/arabic"
)

// MatchStrategy selects how a submitted answer is compared against the
// accepted answers of a question.
type MatchStrategy int

const (
	// MatchExact accepts only a normalized exact match.
	MatchExact MatchStrategy = iota

	// MatchContains additionally accepts substring containment in
	// either direction. Used by banks where partial answers are fine
	// (song-artist guessing); opt-in per source, never the default.
	MatchContains
)

// Outcome is the result of matching a submitted answer.
type Outcome int

const (
	// OutcomeWrong means the answer does not match.
	OutcomeWrong Outcome = iota

	// OutcomeCorrect means the answer matches an accepted form.
	OutcomeCorrect

	// OutcomeAlreadyUsed means the answer would match but was already
	// played earlier in the session (chain-words).
	OutcomeAlreadyUsed
)

// CheckFunc replaces the default accepted-answers comparison for
// open-ended questions (category+letter, chain-words). It receives the
// raw submission and its normalized form.
type CheckFunc func(raw, normalized string) Outcome

// FeedbackFunc produces extra per-answer text attached to a correct
// result (e.g. the compatibility percentage, the next chain letter).
type FeedbackFunc func(raw, normalized string) string

// Question is a single round's prompt with its accepted answers.
// Questions are immutable once produced by a source; the session
// discards them when the round ends.
type Question struct {
	Prompt     string
	Accepted   []string
	Hint       string
	Category   string
	Difficulty int
	Strategy   MatchStrategy

	// Check, when set, overrides the Accepted comparison entirely.
	Check CheckFunc

	// Feedback, when set, supplies extra text for correct results.
	Feedback FeedbackFunc
}

// NewQuestion builds a question with the default exact strategy.
// Returns ErrNoAcceptedAnswers when accepted is empty.
func NewQuestion(prompt string, accepted []string) (*Question, error) {
	if len(accepted) == 0 {
		return nil, ErrNoAcceptedAnswers
	}
	return &Question{Prompt: prompt, Accepted: accepted}, nil
}

// Match evaluates a submitted answer against the question.
func (q *Question) Match(text string) Outcome {
	norm := arabic.Normalize(text)
	if q.Check != nil {
		return q.Check(text, norm)
	}
	if norm == "" {
		return OutcomeWrong
	}

	for _, a := range q.Accepted {
		na := arabic.Normalize(a)
		if na == "" {
			continue
		}
		if na == norm {
			return OutcomeCorrect
		}
		if q.Strategy == MatchContains &&
			(strings.Contains(na, norm) || strings.Contains(norm, na)) {
			return OutcomeCorrect
		}
	}
	return OutcomeWrong
}

// HintText returns the question's hint, deriving a generic one from the
// first accepted answer (first letter, plus letter count for answers
// longer than two letters) when none was authored.
func (q *Question) HintText() string {
	if q.Hint != "" {
		return q.Hint
	}
	if len(q.Accepted) == 0 {
		return ""
	}

	first := arabic.FirstLetter(q.Accepted[0])
	count := arabic.LetterCount(q.Accepted[0])
	if count > 2 {
		return fmt.Sprintf("يبدأ بحرف %s وعدد حروفه %d", first, count)
	}
	return fmt.Sprintf("يبدأ بحرف %s", first)
}

// RevealText formats all accepted answers for a forced reveal.
func (q *Question) RevealText() string {
	return strings.Join(q.Accepted, " أو ")
}

// FeedbackText returns the per-answer feedback, or empty when the
// question has none.
func (q *Question) FeedbackText(text string) string {
	if q.Feedback == nil {
		return ""
	}
	return q.Feedback(text, arabic.Normalize(text))
}
