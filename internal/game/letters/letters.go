// Package letters implements the category+letter game (human, animal,
// plant, object, country). There is no closed answer set and no
// dictionary: any word of at least two letters whose normalized first
// letter matches is accepted.
package letters

import (
	"fmt"
	"math/rand"

	"line-trivia-bot/internal/arabic"
	"line-trivia-bot/internal/game"
)

// DefaultCategories are the classic five.
var DefaultCategories = []string{"انسان", "حيوان", "نبات", "جماد", "بلاد"}

// defaultLetters are common Arabic initial letters; rare initials
// (like ء) are left out to keep rounds answerable.
var defaultLetters = []rune("ابتجحخدرزسشصطعفقكلمنهوي")

// Config holds the category and letter pools.
type Config struct {
	Categories []string
	Letters    []rune
	Seed       int64 // 0 = time-seeded
}

// Source generates category+letter questions.
type Source struct {
	categories []string
	letters    []rune
	rng        *rand.Rand
}

// New creates a category+letter source; nil config uses the defaults.
func New(cfg *Config) *Source {
	categories := DefaultCategories
	letterPool := defaultLetters
	var seed int64
	if cfg != nil {
		if len(cfg.Categories) > 0 {
			categories = cfg.Categories
		}
		if len(cfg.Letters) > 0 {
			letterPool = cfg.Letters
		}
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Source{
		categories: categories,
		letters:    letterPool,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Next picks a category and a letter. The check is open-ended: first
// normalized letter plus a minimum length of two.
func (s *Source) Next(round int) (*game.Question, error) {
	category := s.categories[s.rng.Intn(len(s.categories))]
	letter := string(s.letters[s.rng.Intn(len(s.letters))])

	return &game.Question{
		Prompt:   fmt.Sprintf("%s بحرف %s", category, letter),
		Accepted: []string{fmt.Sprintf("أي %s يبدأ بحرف %s", category, letter)},
		Hint:     "يبدأ بحرف " + letter,
		Category: category,
		Check:    CheckFirstLetter(letter),
	}, nil
}

// CheckFirstLetter builds the open-ended acceptance check for a letter.
func CheckFirstLetter(letter string) game.CheckFunc {
	want := arabic.Normalize(letter)
	return func(raw, normalized string) game.Outcome {
		runes := []rune(normalized)
		if len(runes) < 2 {
			return game.OutcomeWrong
		}
		if string(runes[0]) != want {
			return game.OutcomeWrong
		}
		return game.OutcomeCorrect
	}
}
