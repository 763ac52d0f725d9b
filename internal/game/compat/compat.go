// Package compat implements the compatibility-percentage game: the
// player sends two names joined by "و" and gets a deterministic
// percentage in [50,99]. The result is symmetric in the two names.
package compat

import (
	"fmt"
	"hash/fnv"
	"strings"

	"line-trivia-bot/internal/arabic"
	"line-trivia-bot/internal/game"
)

// Score range: a hashed base in [50,90] plus a shared-letters bonus of
// at most 9, so the total never exceeds 99.
const (
	minScore   = 50
	baseSpread = 41
	maxBonus   = 9
)

// Score derives the compatibility percentage for a pair of names. The
// pair is normalized and sorted before hashing, so Score(a, b) equals
// Score(b, a) for all inputs.
func Score(a, b string) int {
	na, nb := arabic.Normalize(a), arabic.Normalize(b)
	if nb < na {
		na, nb = nb, na
	}

	h := fnv.New32a()
	h.Write([]byte(na))
	h.Write([]byte{0})
	h.Write([]byte(nb))
	score := minScore + int(h.Sum32()%baseSpread)

	bonus := sharedLetters(na, nb)
	if bonus > maxBonus {
		bonus = maxBonus
	}
	if score+bonus > 99 {
		return 99
	}
	return score + bonus
}

// Parse splits a submission into the two names around the conjunction
// "و". Returns false when the text does not contain two names.
func Parse(text string) (string, string, bool) {
	norm := arabic.Normalize(text)
	parts := strings.SplitN(norm, " و ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}

// Source produces the single compatibility prompt; any submission with
// two names is "correct" and the percentage rides in the feedback.
type Source struct{}

// New creates a compatibility source.
func New() *Source {
	return &Source{}
}

// Next returns the compatibility prompt.
func (s *Source) Next(round int) (*game.Question, error) {
	return &game.Question{
		Prompt:   "اكتب اسمين بينهما حرف و، مثال: أحمد و سارة",
		Accepted: []string{"اسمان بينهما و"},
		Check: func(raw, normalized string) game.Outcome {
			if _, _, ok := Parse(raw); ok {
				return game.OutcomeCorrect
			}
			return game.OutcomeWrong
		},
		Feedback: func(raw, normalized string) string {
			a, b, ok := Parse(raw)
			if !ok {
				return ""
			}
			return fmt.Sprintf("نسبة التوافق بين %s و%s هي %d٪", a, b, Score(a, b))
		},
	}, nil
}

func sharedLetters(a, b string) int {
	seen := make(map[rune]struct{})
	for _, r := range a {
		if r != ' ' {
			seen[r] = struct{}{}
		}
	}
	shared := 0
	for _, r := range b {
		if _, ok := seen[r]; ok {
			shared++
			delete(seen, r)
		}
	}
	return shared
}
