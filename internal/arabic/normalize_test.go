package arabic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// TestNormalize covers the canonicalization rules with concrete cases.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"whitespace only", "   \t ", ""},
		{"trims and collapses spaces", "  قط   صغير  ", "قط صغير"},
		{"lower-cases latin", "  Hello World ", "hello world"},
		{"strips tashkil", "مُحَمَّد", "محمد"},
		{"hamza alif folds", "أحمد", "احمد"},
		{"alif madda folds", "آمال", "امال"},
		{"hamza under alif folds", "إبرة", "ابره"},
		{"taa marbuta folds", "قطة", "قطه"},
		{"alif maqsura folds", "مصطفى", "مصطفي"},
		{"hamza on waw folds", "مؤمن", "مومن"},
		{"hamza on yaa folds", "بئر", "بير"},
		{"digits untouched", "10", "10"},
		{"dagger alif stripped", "رحمٰن", "رحمن"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

// TestNormalizeEquivalenceClasses checks that variant spellings of the
// same word normalize to the same form.
func TestNormalizeEquivalenceClasses(t *testing.T) {
	pairs := [][2]string{
		{"أحمد", "احمد"},
		{"مُحَمَّد", "محمد"},
		{"قِطَّة", "قطه"},
		{"هدى", "هدي"},
	}

	for _, p := range pairs {
		assert.Equal(t, Normalize(p[0]), Normalize(p[1]),
			"%q and %q should normalize identically", p[0], p[1])
	}
}

// TestNormalizeIdempotenceProperty checks that normalizing an already
// normalized string is a no-op for arbitrary input.
func TestNormalizeIdempotenceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent: %q -> %q -> %q", s, once, twice)
		}
	})
}

// TestNormalizeNeverPanicsProperty checks total behavior on arbitrary
// byte sequences, including invalid UTF-8.
func TestNormalizeNeverPanicsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOf(rapid.Byte()).Draw(t, "raw")
		_ = Normalize(string(raw))
	})
}

func TestFirstLetter(t *testing.T) {
	assert.Equal(t, "ا", FirstLetter("أرنب"))
	assert.Equal(t, "ق", FirstLetter("  قلم"))
	assert.Equal(t, "", FirstLetter("  "))
}

func TestLetterCount(t *testing.T) {
	assert.Equal(t, 4, LetterCount("مُحَمَّد"))
	assert.Equal(t, 0, LetterCount(""))
}
