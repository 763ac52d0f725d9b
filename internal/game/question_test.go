package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionMatchExact(t *testing.T) {
	q := &Question{Prompt: "من هو؟", Accepted: []string{"أحمد", "إبراهيم"}}

	tests := []struct {
		name     string
		text     string
		expected Outcome
	}{
		{"exact form", "أحمد", OutcomeCorrect},
		{"hamza folded", "احمد", OutcomeCorrect},
		{"second accepted answer", "ابراهيم", OutcomeCorrect},
		{"with diacritics", "أَحْمَد", OutcomeCorrect},
		{"extra whitespace", "  أحمد  ", OutcomeCorrect},
		{"wrong word", "خالد", OutcomeWrong},
		{"partial not accepted", "أحم", OutcomeWrong},
		{"empty", "", OutcomeWrong},
		{"whitespace only", "   ", OutcomeWrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := q.Match(tt.text); got != tt.expected {
				t.Errorf("Match(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestQuestionMatchContains(t *testing.T) {
	q := &Question{
		Prompt:   "من المغني؟",
		Accepted: []string{"محمد عبده"},
		Strategy: MatchContains,
	}

	assert.Equal(t, OutcomeCorrect, q.Match("محمد عبده"))
	assert.Equal(t, OutcomeCorrect, q.Match("عبده"), "partial of accepted")
	assert.Equal(t, OutcomeCorrect, q.Match("الفنان محمد عبده"), "accepted inside submission")
	assert.Equal(t, OutcomeWrong, q.Match("راشد"))
	assert.Equal(t, OutcomeWrong, q.Match(""), "empty never matches by containment")
}

func TestQuestionCheckOverride(t *testing.T) {
	q := &Question{
		Prompt:   "حيوان بحرف ب",
		Accepted: []string{"لن يستخدم"},
		Check: func(raw, normalized string) Outcome {
			if normalized == "بطه" {
				return OutcomeCorrect
			}
			return OutcomeWrong
		},
	}

	assert.Equal(t, OutcomeCorrect, q.Match("بطة"), "check sees the normalized form")
	assert.Equal(t, OutcomeWrong, q.Match("لن يستخدم"), "accepted list is bypassed")
}

func TestQuestionHintText(t *testing.T) {
	authored := &Question{Accepted: []string{"قمر"}, Hint: "يضيء ليلاً"}
	assert.Equal(t, "يضيء ليلاً", authored.HintText())

	derived := &Question{Accepted: []string{"مدرسة"}}
	assert.Equal(t, "يبدأ بحرف م وعدد حروفه 5", derived.HintText())

	short := &Question{Accepted: []string{"يد"}}
	assert.Equal(t, "يبدأ بحرف ي", short.HintText())

	empty := &Question{}
	assert.Equal(t, "", empty.HintText())
}

func TestQuestionRevealText(t *testing.T) {
	q := &Question{Accepted: []string{"دبوس", "مسمار", "إبرة"}}
	assert.Equal(t, "دبوس أو مسمار أو إبرة", q.RevealText())
}

func TestQuestionFeedbackText(t *testing.T) {
	q := &Question{
		Feedback: func(raw, normalized string) string {
			return "التالي: " + normalized
		},
	}
	assert.Equal(t, "التالي: كلمه", q.FeedbackText("كلمة"))

	none := &Question{}
	assert.Equal(t, "", none.FeedbackText("كلمة"))
}

func TestNewQuestion(t *testing.T) {
	q, err := NewQuestion("سؤال", []string{"جواب"})
	require.NoError(t, err)
	assert.Equal(t, "سؤال", q.Prompt)

	_, err = NewQuestion("سؤال", nil)
	assert.ErrorIs(t, err, ErrNoAcceptedAnswers)
}

func TestCycleCoversAllIndices(t *testing.T) {
	const n = 7
	c := NewCycle(rand.New(rand.NewSource(1)), n)

	// Two full passes: every index appears exactly once per pass.
	for pass := 0; pass < 2; pass++ {
		seen := make(map[int]bool, n)
		for i := 0; i < n; i++ {
			idx := c.Next()
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, n)
			require.False(t, seen[idx], "index %d repeated within a pass", idx)
			seen[idx] = true
		}
	}
}

func TestCycleSingleItem(t *testing.T) {
	c := NewCycle(rand.New(rand.NewSource(1)), 1)
	for i := 0; i < 5; i++ {
		assert.Zero(t, c.Next())
	}
}
