// Package scramble implements the scrambled-word game: a word from a
// pool is shown with its letters permuted; the original word is the
// only accepted answer.
package scramble

import (
	"errors"
	"math/rand"
	"strings"

	"line-trivia-bot/internal/game"
)

// ErrEmptyPool is returned when a source is created without words.
var ErrEmptyPool = errors.New("scramble word pool is empty")

// scrambleRetries bounds the permutation attempts before falling back
// to a full reversal.
const scrambleRetries = 10

// DefaultWords is the built-in word pool.
var DefaultWords = []string{
	"مدرسة", "كتاب", "شمس", "قمر", "بحر", "جبل", "نهر", "سماء",
	"زهرة", "طائر", "حصان", "سفينة", "مطر", "نجمة", "صحراء", "غابة",
	"مفتاح", "نافذة", "حديقة", "عصفور",
}

// Config holds the pool and seed for a source.
type Config struct {
	Words []string
	Seed  int64 // 0 = time-seeded
}

// Source serves scrambled words from a shuffled pool.
type Source struct {
	words []string
	rng   *rand.Rand
	cycle *game.Cycle
}

// New creates a scrambled-word source; a nil config or empty pool uses
// the default word list.
func New(cfg *Config) (*Source, error) {
	words := DefaultWords
	var seed int64
	if cfg != nil {
		if len(cfg.Words) > 0 {
			words = cfg.Words
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
	return &Source{words: words, rng: rng, cycle: game.NewCycle(rng, len(words))}, nil
}

// Next picks the next word and presents its scrambled letters.
func (s *Source) Next(round int) (*game.Question, error) {
	word := s.words[s.cycle.Next()]
	return &game.Question{
		Prompt:   "رتب الحروف: " + spaced(Scramble(s.rng, word)),
		Accepted: []string{word},
		Strategy: game.MatchExact,
	}, nil
}

// Scramble permutes the letters of word, retrying a bounded number of
// times until the permutation differs from the original, then falling
// back to a full reversal. Words shorter than two letters are returned
// unchanged.
func Scramble(rng *rand.Rand, word string) string {
	runes := []rune(word)
	if len(runes) < 2 {
		return word
	}

	for i := 0; i < scrambleRetries; i++ {
		shuffled := make([]rune, len(runes))
		copy(shuffled, runes)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if string(shuffled) != word {
			return string(shuffled)
		}
	}

	// All retries produced the original (e.g. repeated letters).
	reversed := make([]rune, len(runes))
	for i, r := range runes {
		reversed[len(runes)-1-i] = r
	}
	return string(reversed)
}

func spaced(word string) string {
	parts := make([]string, 0, len(word))
	for _, r := range word {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, " ")
}
