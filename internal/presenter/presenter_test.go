package presenter

import (
	"testing"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-trivia-bot/internal/game"
)

func textOf(t *testing.T, msgs []linebot.SendingMessage) string {
	t.Helper()
	require.Len(t, msgs, 1)
	msg, ok := msgs[0].(*linebot.TextMessage)
	require.True(t, ok, "expected a text message")
	return msg.Text
}

func TestTextPresenterQuestion(t *testing.T) {
	p := NewTextPresenter()
	text := textOf(t, p.Render(game.Result{
		Kind:      game.ResultQuestion,
		Question:  &game.Question{Prompt: "ما الذي له رأس ولا عين له؟"},
		Round:     2,
		MaxRounds: 5,
	}))

	assert.Contains(t, text, "الجولة 2 من 5")
	assert.Contains(t, text, "ما الذي له رأس ولا عين له؟")
}

func TestTextPresenterCorrectWithNextQuestion(t *testing.T) {
	p := NewTextPresenter()
	text := textOf(t, p.Render(game.Result{
		Kind:      game.ResultCorrect,
		Points:    15,
		Question:  &game.Question{Prompt: "السؤال التالي"},
		Round:     3,
		MaxRounds: 5,
	}))

	assert.Contains(t, text, "+15")
	assert.Contains(t, text, "السؤال التالي")
}

func TestTextPresenterGameOverStandings(t *testing.T) {
	p := NewTextPresenter()
	text := textOf(t, p.Render(game.Result{
		Kind:     game.ResultGameOver,
		GameOver: true,
		Standings: []game.Standing{
			{UserID: "u1", DisplayName: "أحمد", Points: 40, CorrectCount: 3},
			{UserID: "u2", DisplayName: "سارة", Points: 25, CorrectCount: 2},
		},
	}))

	assert.Contains(t, text, "انتهت اللعبة")
	assert.Contains(t, text, "🥇 أحمد")
	assert.Contains(t, text, "🥈 سارة")
	assert.Contains(t, text, "40")
}

func TestTextPresenterError(t *testing.T) {
	p := NewTextPresenter()
	text := textOf(t, p.Render(game.Result{
		Kind:    game.ResultError,
		Err:     game.ErrAlreadyAnswered,
		Message: "لقد أجبت في هذه الجولة",
	}))
	assert.Equal(t, "لقد أجبت في هذه الجولة", text)
}

func TestFlexPresenterQuestionCard(t *testing.T) {
	p := NewFlexPresenter()
	msgs := p.Render(game.Result{
		Kind:      game.ResultQuestion,
		Question:  &game.Question{Prompt: "رتب الحروف: ب ا ت ك"},
		Round:     1,
		MaxRounds: 5,
	})

	require.Len(t, msgs, 1)
	flex, ok := msgs[0].(*linebot.FlexMessage)
	require.True(t, ok, "expected a flex message")
	assert.Equal(t, "رتب الحروف: ب ا ت ك", flex.AltText)
}

func TestFlexPresenterCorrectCarriesNextQuestion(t *testing.T) {
	p := NewFlexPresenter()
	msgs := p.Render(game.Result{
		Kind:      game.ResultCorrect,
		Points:    13,
		Question:  &game.Question{Prompt: "التالي"},
		Round:     2,
		MaxRounds: 5,
	})
	assert.Len(t, msgs, 2, "score card plus next question card")
}

func TestFlexPresenterFallsBackToText(t *testing.T) {
	p := NewFlexPresenter()
	msgs := p.Render(game.Result{
		Kind:    game.ResultIncorrect,
		Message: "اجابة خاطئة",
	})
	text := textOf(t, msgs)
	assert.Contains(t, text, "اجابة خاطئة")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "نقاط أحمد: 42", FormatPoints("أحمد", 42))
	assert.Contains(t, FormatTop(nil), "لا يوجد متصدرون")
	assert.Contains(t, FormatTop([]string{"1. أحمد — 10 نقطة"}), "الصدارة")
}
