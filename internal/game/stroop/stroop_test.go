package stroop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-trivia-bot/internal/game"
)

func swatchOf(name string) string {
	for _, c := range DefaultColors {
		if c.Name == name {
			return c.Swatch
		}
	}
	return ""
}

func TestNextAnswerIsRenderedColor(t *testing.T) {
	src := New(&Config{Seed: 21})

	for round := 1; round <= 50; round++ {
		q, err := src.Next(round)
		require.NoError(t, err)
		require.Len(t, q.Accepted, 1)

		answer := q.Accepted[0]
		swatch := swatchOf(answer)
		require.NotEmpty(t, swatch, "answer %q is not in the palette", answer)

		// The prompt shows the answer's swatch, whatever word it names.
		assert.Contains(t, q.Prompt, swatch)
		assert.Equal(t, game.OutcomeCorrect, q.Match(answer))
	}
}

func TestNextMixesMatchesAndMismatches(t *testing.T) {
	src := New(&Config{Seed: 21})

	mismatches := 0
	const draws = 100
	for i := 0; i < draws; i++ {
		q, err := src.Next(i + 1)
		require.NoError(t, err)

		// The displayed word is the trailing token of the prompt.
		fields := strings.Fields(q.Prompt)
		word := fields[len(fields)-1]
		if word != q.Accepted[0] {
			mismatches++
		}
	}

	assert.Greater(t, mismatches, draws/4, "mismatch skew missing")
	assert.Less(t, mismatches, draws, "all draws mismatched")
}

func TestNewSingleColorNeverMismatches(t *testing.T) {
	src := New(&Config{Colors: []Color{{Name: "أحمر", Swatch: "🔴"}}, Seed: 3})

	q, err := src.Next(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"أحمر"}, q.Accepted)
}
