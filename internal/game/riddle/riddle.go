// Package riddle implements a fixed-bank question source: a pool of
// authored (prompt, answers, hint) items served in shuffled order. It
// backs both the intelligence-questions game and the song-guessing
// game, which differ only in bank content and matching strategy.
package riddle

import (
	"errors"
	"math/rand"

	"line-trivia-bot/internal/game"
)

// ErrEmptyBank is returned when a source is created without items.
var ErrEmptyBank = errors.New("riddle bank is empty")

// Item is one authored question in a bank.
type Item struct {
	Prompt  string
	Answers []string
	Hint    string
}

// Config holds the bank and matching policy for a source.
type Config struct {
	Items    []Item
	Strategy game.MatchStrategy
	Seed     int64 // 0 = time-seeded
}

// Source serves bank items in shuffled order, reshuffling once the
// bank is exhausted so long sessions never run dry.
type Source struct {
	items    []Item
	strategy game.MatchStrategy
	cycle    *game.Cycle
}

// New creates a source over the configured bank.
func New(cfg *Config) (*Source, error) {
	if cfg == nil || len(cfg.Items) == 0 {
		return nil, ErrEmptyBank
	}
	rng := rand.New(rand.NewSource(seedOf(cfg.Seed)))
	return &Source{
		items:    cfg.Items,
		strategy: cfg.Strategy,
		cycle:    game.NewCycle(rng, len(cfg.Items)),
	}, nil
}

// Next returns the next bank item as a question.
func (s *Source) Next(round int) (*game.Question, error) {
	item := s.items[s.cycle.Next()]
	if len(item.Answers) == 0 {
		return nil, game.ErrNoAcceptedAnswers
	}
	return &game.Question{
		Prompt:   item.Prompt,
		Accepted: item.Answers,
		Hint:     item.Hint,
		Strategy: s.strategy,
	}, nil
}

func seedOf(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return rand.Int63()
}
