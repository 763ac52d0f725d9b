// Package presenter turns engine results into LINE messages. The
// engine never builds presentation markup; everything user-visible
// funnels through a Presenter.
package presenter

import (
	"fmt"
	"strings"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"line-trivia-bot/internal/game"
)

// Presenter renders a Result into reply messages.
type Presenter interface {
	Render(res game.Result) []linebot.SendingMessage
}

// TextPresenter renders plain text replies.
type TextPresenter struct{}

// NewTextPresenter creates a plain-text presenter.
func NewTextPresenter() *TextPresenter {
	return &TextPresenter{}
}

// Render implements Presenter.
func (p *TextPresenter) Render(res game.Result) []linebot.SendingMessage {
	text := renderText(res)
	if text == "" {
		return nil
	}
	return []linebot.SendingMessage{linebot.NewTextMessage(text)}
}

// renderText builds the textual body shared by both presenters.
func renderText(res game.Result) string {
	var lines []string

	switch res.Kind {
	case game.ResultQuestion:
		if res.Message != "" {
			lines = append(lines, res.Message)
		}
		lines = appendQuestion(lines, res)

	case game.ResultCorrect:
		lines = append(lines, fmt.Sprintf("اجابة صحيحة! +%d نقطة", res.Points))
		if res.Message != "" {
			lines = append(lines, res.Message)
		}
		if res.GameOver {
			lines = append(lines, "", "انتهت اللعبة!")
			lines = append(lines, formatStandings(res.Standings)...)
		} else {
			lines = appendQuestion(lines, res)
		}

	case game.ResultIncorrect:
		lines = append(lines, res.Message)
		if res.GameOver {
			lines = append(lines, "", "انتهت اللعبة!")
			lines = append(lines, formatStandings(res.Standings)...)
		} else if res.Question != nil {
			lines = appendQuestion(lines, res)
		}

	case game.ResultGameOver:
		if res.Message != "" {
			lines = append(lines, res.Message)
		}
		lines = append(lines, "انتهت اللعبة!")
		lines = append(lines, formatStandings(res.Standings)...)

	case game.ResultError:
		if res.Message == "" {
			return "حدث خطأ، حاول مرة أخرى"
		}
		lines = append(lines, res.Message)
		if res.GameOver && len(res.Standings) > 0 {
			lines = append(lines, "", "انتهت اللعبة!")
			lines = append(lines, formatStandings(res.Standings)...)
		}
	}

	return strings.Join(lines, "\n")
}

func appendQuestion(lines []string, res game.Result) []string {
	if res.Question == nil {
		return lines
	}
	if res.Round > 0 && res.MaxRounds > 0 {
		lines = append(lines, fmt.Sprintf("الجولة %d من %d", res.Round, res.MaxRounds))
	}
	return append(lines, res.Question.Prompt)
}

// formatStandings renders a leaderboard, medals for the top three.
func formatStandings(standings []game.Standing) []string {
	if len(standings) == 0 {
		return []string{"لا يوجد لاعبون"}
	}

	medals := []string{"🥇", "🥈", "🥉"}
	lines := make([]string, 0, len(standings))
	for i, st := range standings {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		lines = append(lines, fmt.Sprintf("%s %s — %d نقطة (%d صحيحة)",
			rank, st.DisplayName, st.Points, st.CorrectCount))
	}
	return lines
}

// FormatPoints renders a user's durable points total.
func FormatPoints(displayName string, total int64) string {
	return fmt.Sprintf("نقاط %s: %d", displayName, total)
}

// FormatLeaderboard renders the live cross-session leaderboard.
func FormatLeaderboard(standings []game.Standing) string {
	return "المتصدرون الآن:\n" + strings.Join(formatStandings(standings), "\n")
}

// FormatTop renders the durable leaderboard rows.
func FormatTop(rows []string) string {
	if len(rows) == 0 {
		return "لا يوجد متصدرون بعد"
	}
	return "الصدارة:\n" + strings.Join(rows, "\n")
}
