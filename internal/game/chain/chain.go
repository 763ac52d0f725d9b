// Package chain implements the chain-words game: every accepted word
// becomes the previous word, and the next word must start with its
// last letter. A word already played in the session is rejected with a
// distinct "already used" outcome rather than a plain wrong answer.
package chain

import (
	"errors"
	"fmt"
	"math/rand"

	"line-trivia-bot/internal/arabic"
	"line-trivia-bot/internal/game"
)

// ErrEmptyPool is returned when a source is created without start words.
var ErrEmptyPool = errors.New("chain start-word pool is empty")

// DefaultStartWords seed the chain's first round.
var DefaultStartWords = []string{"بحر", "قمر", "شمس", "كتاب", "نجم", "ورد"}

// Config holds the start-word pool and seed.
type Config struct {
	StartWords []string
	Seed       int64 // 0 = time-seeded
}

// Source keeps the chain state: the previous word and the set of words
// already used in this session.
type Source struct {
	prev  string
	used  map[string]struct{}
	words []string
	cycle *game.Cycle
}

// New creates a chain source; a nil config uses the default starters.
func New(cfg *Config) (*Source, error) {
	words := DefaultStartWords
	var seed int64
	if cfg != nil {
		if len(cfg.StartWords) > 0 {
			words = cfg.StartWords
		}
		seed = cfg.Seed
	}
	if len(words) == 0 {
		return nil, ErrEmptyPool
	}
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Source{
		used:  make(map[string]struct{}),
		words: words,
		cycle: game.NewCycle(rng, len(words)),
	}, nil
}

// Next asks for a word starting with the chain's required letter. The
// first round draws a start word from the pool.
func (s *Source) Next(round int) (*game.Question, error) {
	if s.prev == "" {
		s.prev = s.words[s.cycle.Next()]
		s.used[arabic.Normalize(s.prev)] = struct{}{}
	}
	required := RequiredLetter(s.prev)

	return &game.Question{
		Prompt:   fmt.Sprintf("الكلمة: %s — هات كلمة تبدأ بحرف %s", s.prev, required),
		Accepted: []string{"كلمة تبدأ بحرف " + required},
		Hint:     "تبدأ بحرف " + required,
		Check:    s.check(required),
		Feedback: s.feedback(),
	}, nil
}

// check accepts any unused word of two or more letters starting with
// the required letter. On acceptance it records the word and makes it
// the new previous word; the engine calls Match exactly once per
// submission and only advances on a correct outcome, so mutating here
// is safe.
func (s *Source) check(required string) game.CheckFunc {
	return func(raw, normalized string) game.Outcome {
		runes := []rune(normalized)
		if len(runes) < 2 {
			return game.OutcomeWrong
		}
		if string(runes[0]) != arabic.Normalize(required) {
			return game.OutcomeWrong
		}
		if _, played := s.used[normalized]; played {
			return game.OutcomeAlreadyUsed
		}
		s.used[normalized] = struct{}{}
		s.prev = raw
		return game.OutcomeCorrect
	}
}

func (s *Source) feedback() game.FeedbackFunc {
	return func(raw, normalized string) string {
		return "الحرف التالي: " + RequiredLetter(raw)
	}
}

// RequiredLetter derives the chain letter from a word's last letter:
// diacritics are ignored, a trailing taa marbuta chains as taa, and
// letter variants fold to their canonical forms.
func RequiredLetter(word string) string {
	var last rune
	for _, r := range word {
		if (r >= 0x064B && r <= 0x065F) || r == 0x0670 || r == ' ' {
			continue
		}
		last = r
	}
	if last == 0 {
		return ""
	}
	if last == 'ة' {
		return "ت"
	}
	return arabic.Normalize(string(last))
}
