package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"line-trivia-bot/internal/game"
)

// TestScoreSymmetricProperty checks that the percentage is symmetric in
// the two names and always lands in [50,99].
func TestScoreSymmetricProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.StringMatching(`[ابتجحدرسصطعفقكلمنهوي]{1,12}`).Draw(t, "a")
		b := rapid.StringMatching(`[ابتجحدرسصطعفقكلمنهوي]{1,12}`).Draw(t, "b")

		ab := Score(a, b)
		ba := Score(b, a)
		if ab != ba {
			t.Fatalf("Score(%q, %q) = %d but Score(%q, %q) = %d", a, b, ab, b, a, ba)
		}
		if ab < 50 || ab > 99 {
			t.Fatalf("Score(%q, %q) = %d outside [50,99]", a, b, ab)
		}

		// Same pair, same percentage, every time.
		if again := Score(a, b); again != ab {
			t.Fatalf("Score not deterministic: %d then %d", ab, again)
		}
	})
}

func TestScoreNormalizesNames(t *testing.T) {
	assert.Equal(t, Score("أحمد", "سارة"), Score("احمد", "ساره"),
		"letter variants fold to the same pair")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		a, b string
		ok   bool
	}{
		{"two names", "أحمد و سارة", "احمد", "ساره", true},
		{"extra spaces", "  أحمد   و   سارة ", "احمد", "ساره", true},
		{"single name", "أحمد", "", "", false},
		{"missing second name", "أحمد و", "", "", false},
		{"missing first name", "و سارة", "", "", false},
		{"attached waw is part of the name", "أحمد وسارة", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, ok := Parse(tt.text)
			if ok != tt.ok || a != tt.a || b != tt.b {
				t.Errorf("Parse(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.text, a, b, ok, tt.a, tt.b, tt.ok)
			}
		})
	}
}

func TestNextChecksAndFeedsBack(t *testing.T) {
	src := New()
	q, err := src.Next(1)
	require.NoError(t, err)

	assert.Equal(t, game.OutcomeCorrect, q.Match("أحمد و سارة"))
	assert.Equal(t, game.OutcomeWrong, q.Match("أحمد"))

	feedback := q.FeedbackText("أحمد و سارة")
	assert.Contains(t, feedback, "نسبة التوافق")
	assert.Contains(t, feedback, "٪")
}
