// Package stroop implements the word-color mismatch game: a color name
// is shown rendered "in" a possibly different color (an emoji swatch in
// chat), and the correct answer is the rendered color, not the word.
package stroop

import (
	"fmt"
	"math/rand"

	"line-trivia-bot/internal/game"
)

// MismatchProbability is the chance that the swatch differs from the
// word. The skew toward mismatches is the point of the game.
const MismatchProbability = 0.7

// Color pairs a color name with its chat swatch.
type Color struct {
	Name   string
	Swatch string
}

// DefaultColors is the built-in palette.
var DefaultColors = []Color{
	{Name: "أحمر", Swatch: "🔴"},
	{Name: "أزرق", Swatch: "🔵"},
	{Name: "أخضر", Swatch: "🟢"},
	{Name: "أصفر", Swatch: "🟡"},
	{Name: "أسود", Swatch: "⚫"},
	{Name: "أبيض", Swatch: "⚪"},
}

// Config holds the palette and seed.
type Config struct {
	Colors []Color
	Seed   int64 // 0 = time-seeded
}

// Source generates mismatch questions.
type Source struct {
	colors []Color
	rng    *rand.Rand
}

// New creates a stroop source; a nil config uses the default palette.
func New(cfg *Config) *Source {
	colors := DefaultColors
	var seed int64
	if cfg != nil {
		if len(cfg.Colors) > 0 {
			colors = cfg.Colors
		}
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Source{colors: colors, rng: rand.New(rand.NewSource(seed))}
}

// Next draws a word and a rendered color. With probability
// MismatchProbability the two differ; the rendered color is the answer
// either way.
func (s *Source) Next(round int) (*game.Question, error) {
	word := s.colors[s.rng.Intn(len(s.colors))]
	rendered := word
	if s.rng.Float64() < MismatchProbability && len(s.colors) > 1 {
		for rendered.Name == word.Name {
			rendered = s.colors[s.rng.Intn(len(s.colors))]
		}
	}

	return &game.Question{
		Prompt:   fmt.Sprintf("ما لون المربع؟ %s %s", rendered.Swatch, word.Name),
		Accepted: []string{rendered.Name},
		Hint:     "انظر للمربع لا للكلمة",
		Strategy: game.MatchExact,
	}, nil
}
