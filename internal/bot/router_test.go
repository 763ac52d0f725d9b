package bot

import (
	"context"
	"testing"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-trivia-bot/internal/config"
	"line-trivia-bot/internal/game"
	"line-trivia-bot/internal/points"
	"line-trivia-bot/internal/presenter"
)

// stubSource answers every round with the same word.
type stubSource struct{}

func (stubSource) Next(round int) (*game.Question, error) {
	return &game.Question{Prompt: "السؤال", Accepted: []string{"جواب"}}, nil
}

func newTestBot(t *testing.T) (*Bot, *points.MemoryStore) {
	t.Helper()

	registry := game.NewRegistry()
	require.NoError(t, registry.RegisterKind("riddle", func() game.QuestionSource {
		return stubSource{}
	}, game.SessionConfig{MaxRounds: 1}))

	store := points.NewMemoryStore()
	b := &Bot{
		registry:  registry,
		points:    store,
		presenter: presenter.NewTextPresenter(),
		vocab: newVocabulary(config.CommandsConfig{
			Games:  map[string]string{"ذكاء": "riddle"},
			Hint:   []string{"لمحه"},
			Reveal: []string{"جاوب"},
			Stop:   []string{"ايقاف"},
			Points: []string{"نقاطي"},
			Top:    []string{"الصداره"},
			Live:   []string{"المتصدرون"},
		}),
	}
	return b, store
}

func textOf(t *testing.T, msgs []linebot.SendingMessage) string {
	t.Helper()
	require.NotEmpty(t, msgs)
	msg, ok := msgs[0].(*linebot.TextMessage)
	require.True(t, ok)
	return msg.Text
}

func TestRouteStartWordStartsGame(t *testing.T) {
	b, _ := newTestBot(t)
	ctx := context.Background()

	replies := b.route(ctx, "room1", "u1", "أحمد", "ذكاء")
	assert.Contains(t, textOf(t, replies), "السؤال")

	_, live := b.registry.Get("room1")
	assert.True(t, live)
}

func TestRouteStartWordNormalized(t *testing.T) {
	b, _ := newTestBot(t)

	// Diacritics and hamza variants still trigger the start word.
	replies := b.route(context.Background(), "room1", "u1", "أحمد", "ذَكاء")
	assert.Contains(t, textOf(t, replies), "السؤال")
}

func TestRouteAnswerScoresAndRecordsPoints(t *testing.T) {
	b, store := newTestBot(t)
	ctx := context.Background()

	b.route(ctx, "room1", "u1", "أحمد", "ذكاء")
	replies := b.route(ctx, "room1", "u1", "أحمد", "جواب")
	text := textOf(t, replies)
	assert.Contains(t, text, "اجابة صحيحة")
	assert.Contains(t, text, "انتهت اللعبة")

	// The round award and the perfect-game bonus both reach the ledger.
	total, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 15+game.DefaultPerfectBonus, total)
}

func TestRouteSilenceWithoutSession(t *testing.T) {
	b, _ := newTestBot(t)
	ctx := context.Background()

	assert.Nil(t, b.route(ctx, "room1", "u1", "أحمد", "كلام عابر"))
	assert.Nil(t, b.route(ctx, "room1", "u1", "أحمد", "لمحه"))
	assert.Nil(t, b.route(ctx, "room1", "u1", "أحمد", "ايقاف"))
}

func TestRouteHintAndStop(t *testing.T) {
	b, _ := newTestBot(t)
	ctx := context.Background()

	b.route(ctx, "room1", "u1", "أحمد", "ذكاء")

	replies := b.route(ctx, "room1", "u1", "أحمد", "لمحه")
	assert.Contains(t, textOf(t, replies), "لمحة")

	replies = b.route(ctx, "room1", "u1", "أحمد", "ايقاف")
	assert.Contains(t, textOf(t, replies), "انتهت اللعبة")

	_, live := b.registry.Get("room1")
	assert.False(t, live)
}

func TestRoutePointsAndTop(t *testing.T) {
	b, store := newTestBot(t)
	ctx := context.Background()

	_, err := store.Add(ctx, "u1", 42)
	require.NoError(t, err)

	replies := b.route(ctx, "room1", "u1", "أحمد", "نقاطي")
	assert.Contains(t, textOf(t, replies), "42")

	replies = b.route(ctx, "room1", "u1", "أحمد", "الصداره")
	text := textOf(t, replies)
	assert.Contains(t, text, "الصدارة")
	assert.Contains(t, text, "42")
}

func TestRouteLiveLeaderboardEmpty(t *testing.T) {
	b, _ := newTestBot(t)

	replies := b.route(context.Background(), "room1", "u1", "أحمد", "المتصدرون")
	assert.Contains(t, textOf(t, replies), "لا توجد ألعاب جارية")
}

func TestRoomIDOf(t *testing.T) {
	assert.Equal(t, "g1", roomIDOf(&linebot.EventSource{GroupID: "g1", UserID: "u1"}))
	assert.Equal(t, "r1", roomIDOf(&linebot.EventSource{RoomID: "r1", UserID: "u1"}))
	assert.Equal(t, "u1", roomIDOf(&linebot.EventSource{UserID: "u1"}))
	assert.Equal(t, "", roomIDOf(nil))
}
