package presenter

import (
	"fmt"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"line-trivia-bot/internal/game"
)

// Card colors.
const (
	colorHeader  = "#1F6FEB"
	colorCorrect = "#2EA043"
	colorWrong   = "#D1242F"
	colorText    = "#1F2328"
	colorMuted   = "#656D76"
)

// FlexPresenter renders Flex Message cards, falling back to plain text
// for results that don't warrant a card.
type FlexPresenter struct{}

// NewFlexPresenter creates a Flex card presenter.
func NewFlexPresenter() *FlexPresenter {
	return &FlexPresenter{}
}

// Render implements Presenter.
func (p *FlexPresenter) Render(res game.Result) []linebot.SendingMessage {
	switch res.Kind {
	case game.ResultQuestion:
		if res.Question == nil {
			return textFallback(res)
		}
		return []linebot.SendingMessage{p.questionCard(res)}

	case game.ResultCorrect:
		msgs := []linebot.SendingMessage{p.scoreCard(res)}
		if res.GameOver {
			msgs = append(msgs, p.leaderboardCard(res.Standings))
		} else if res.Question != nil {
			msgs = append(msgs, p.questionCard(res))
		}
		return msgs

	case game.ResultGameOver:
		msgs := []linebot.SendingMessage{}
		if res.Message != "" {
			msgs = append(msgs, linebot.NewTextMessage(res.Message))
		}
		return append(msgs, p.leaderboardCard(res.Standings))

	default:
		return textFallback(res)
	}
}

func textFallback(res game.Result) []linebot.SendingMessage {
	text := renderText(res)
	if text == "" {
		return nil
	}
	return []linebot.SendingMessage{linebot.NewTextMessage(text)}
}

// questionCard is the round card: header with round progress, body
// with the prompt and any message (hint, reveal).
func (p *FlexPresenter) questionCard(res game.Result) linebot.SendingMessage {
	body := []linebot.FlexComponent{
		&linebot.TextComponent{
			Type:   linebot.FlexComponentTypeText,
			Text:   res.Question.Prompt,
			Wrap:   true,
			Weight: linebot.FlexTextWeightTypeBold,
			Size:   linebot.FlexTextSizeTypeLg,
			Color:  colorText,
			Align:  linebot.FlexComponentAlignTypeCenter,
		},
	}
	if res.Message != "" {
		body = append(body, &linebot.TextComponent{
			Type:  linebot.FlexComponentTypeText,
			Text:  res.Message,
			Wrap:  true,
			Size:  linebot.FlexTextSizeTypeSm,
			Color: colorMuted,
			Align: linebot.FlexComponentAlignTypeCenter,
		})
	}

	header := "سؤال"
	if res.Round > 0 && res.MaxRounds > 0 {
		header = fmt.Sprintf("الجولة %d من %d", res.Round, res.MaxRounds)
	}

	return linebot.NewFlexMessage(res.Question.Prompt, bubble(header, colorHeader, body))
}

// scoreCard announces the points for a correct answer.
func (p *FlexPresenter) scoreCard(res game.Result) linebot.SendingMessage {
	body := []linebot.FlexComponent{
		&linebot.TextComponent{
			Type:   linebot.FlexComponentTypeText,
			Text:   fmt.Sprintf("+%d نقطة", res.Points),
			Weight: linebot.FlexTextWeightTypeBold,
			Size:   linebot.FlexTextSizeTypeXl,
			Color:  colorCorrect,
			Align:  linebot.FlexComponentAlignTypeCenter,
		},
	}
	if res.Message != "" {
		body = append(body, &linebot.TextComponent{
			Type:  linebot.FlexComponentTypeText,
			Text:  res.Message,
			Wrap:  true,
			Size:  linebot.FlexTextSizeTypeSm,
			Color: colorText,
			Align: linebot.FlexComponentAlignTypeCenter,
		})
	}
	return linebot.NewFlexMessage("اجابة صحيحة!", bubble("اجابة صحيحة!", colorCorrect, body))
}

// leaderboardCard renders the final standings.
func (p *FlexPresenter) leaderboardCard(standings []game.Standing) linebot.SendingMessage {
	body := make([]linebot.FlexComponent, 0, len(standings)+1)
	for _, line := range formatStandings(standings) {
		body = append(body, &linebot.TextComponent{
			Type:  linebot.FlexComponentTypeText,
			Text:  line,
			Wrap:  true,
			Size:  linebot.FlexTextSizeTypeMd,
			Color: colorText,
		})
	}
	return linebot.NewFlexMessage("انتهت اللعبة!", bubble("النتائج النهائية", colorHeader, body))
}

func bubble(header, headerColor string, body []linebot.FlexComponent) *linebot.BubbleContainer {
	return &linebot.BubbleContainer{
		Type: linebot.FlexContainerTypeBubble,
		Header: &linebot.BoxComponent{
			Type:   linebot.FlexComponentTypeBox,
			Layout: linebot.FlexBoxLayoutTypeVertical,
			Contents: []linebot.FlexComponent{
				&linebot.TextComponent{
					Type:   linebot.FlexComponentTypeText,
					Text:   header,
					Weight: linebot.FlexTextWeightTypeBold,
					Size:   linebot.FlexTextSizeTypeMd,
					Color:  "#FFFFFF",
					Align:  linebot.FlexComponentAlignTypeCenter,
				},
			},
			BackgroundColor: headerColor,
		},
		Body: &linebot.BoxComponent{
			Type:     linebot.FlexComponentTypeBox,
			Layout:   linebot.FlexBoxLayoutTypeVertical,
			Spacing:  linebot.FlexComponentSpacingTypeMd,
			Contents: body,
		},
	}
}
