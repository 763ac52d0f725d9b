package bot

import (
	"context"
	"fmt"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/rs/zerolog/log"

	"line-trivia-bot/internal/arabic"
	"line-trivia-bot/internal/config"
	"line-trivia-bot/internal/game"
	"line-trivia-bot/internal/presenter"
)

// vocabulary is the normalized control-word lookup built from config.
// Control tokens are deployment-specific strings, matched only after
// normalization.
type vocabulary struct {
	games  map[string]string
	hint   map[string]struct{}
	reveal map[string]struct{}
	stop   map[string]struct{}
	points map[string]struct{}
	top    map[string]struct{}
	live   map[string]struct{}
}

func newVocabulary(cfg config.CommandsConfig) *vocabulary {
	v := &vocabulary{
		games:  make(map[string]string, len(cfg.Games)),
		hint:   wordSet(cfg.Hint),
		reveal: wordSet(cfg.Reveal),
		stop:   wordSet(cfg.Stop),
		points: wordSet(cfg.Points),
		top:    wordSet(cfg.Top),
		live:   wordSet(cfg.Live),
	}
	for word, kind := range cfg.Games {
		v.games[arabic.Normalize(word)] = kind
	}
	return v
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[arabic.Normalize(w)] = struct{}{}
	}
	return set
}

func has(set map[string]struct{}, word string) bool {
	_, ok := set[word]
	return ok
}

// route maps one incoming text to an engine operation and renders the
// outcome. Unrecognized text outside a live session is ignored.
func (b *Bot) route(ctx context.Context, roomID, userID, name, text string) []linebot.SendingMessage {
	norm := arabic.Normalize(text)

	if kind, ok := b.vocab.games[norm]; ok {
		return b.startGame(ctx, roomID, userID, name, kind)
	}

	switch {
	case has(b.vocab.hint, norm):
		res, ok := b.registry.Hint(roomID, userID, name)
		if !ok {
			return nil
		}
		return b.present(ctx, userID, res)

	case has(b.vocab.reveal, norm):
		res, ok := b.registry.Reveal(roomID)
		if !ok {
			return nil
		}
		return b.present(ctx, userID, res)

	case has(b.vocab.stop, norm):
		res, ok := b.registry.Stop(roomID)
		if !ok {
			return nil
		}
		return b.present(ctx, userID, res)

	case has(b.vocab.points, norm):
		total, err := b.points.Get(ctx, userID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("failed to read points")
			return nil
		}
		return []linebot.SendingMessage{
			linebot.NewTextMessage(presenter.FormatPoints(name, total)),
		}

	case has(b.vocab.top, norm):
		return b.renderTop(ctx)

	case has(b.vocab.live, norm):
		board := b.registry.Leaderboard(10)
		if len(board) == 0 {
			return []linebot.SendingMessage{linebot.NewTextMessage("لا توجد ألعاب جارية")}
		}
		return []linebot.SendingMessage{
			linebot.NewTextMessage(presenter.FormatLeaderboard(board)),
		}
	}

	// Not a control word: treat as an answer when a session is live.
	res, ok := b.registry.Submit(roomID, userID, name, text)
	if !ok {
		return nil
	}
	return b.present(ctx, userID, res)
}

func (b *Bot) startGame(ctx context.Context, roomID, userID, name, kind string) []linebot.SendingMessage {
	mode := game.ModeGroup
	if roomID == userID {
		mode = game.ModeSingle
	}

	sess, err := b.registry.Create(roomID, kind, mode)
	if err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("failed to create session")
		return []linebot.SendingMessage{linebot.NewTextMessage("هذه اللعبة غير متوفرة حالياً")}
	}
	sess.AddPlayer(userID, name)

	return b.present(ctx, userID, sess.Start())
}

// present applies the result's points side effects to the durable
// ledger, then renders it. Runs outside every engine lock.
func (b *Bot) present(ctx context.Context, userID string, res game.Result) []linebot.SendingMessage {
	if res.Kind == game.ResultCorrect && res.Points > 0 {
		if _, err := b.points.Add(ctx, userID, int64(res.Points)); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("failed to record points")
		}
	}
	for uid, bonus := range res.Bonuses {
		if _, err := b.points.Add(ctx, uid, int64(bonus)); err != nil {
			log.Error().Err(err).Str("user_id", uid).Msg("failed to record bonus points")
		}
	}
	return b.presenter.Render(res)
}

func (b *Bot) renderTop(ctx context.Context) []linebot.SendingMessage {
	entries, err := b.points.Top(ctx, 10)
	if err != nil {
		log.Error().Err(err).Msg("failed to read leaderboard")
		return nil
	}

	rows := make([]string, 0, len(entries))
	for i, e := range entries {
		name := e.UserID
		if cached, ok := b.names.Load(e.UserID); ok {
			name = cached.(string)
		}
		rows = append(rows, fmt.Sprintf("%d. %s — %d نقطة", i+1, name, e.Points))
	}
	return []linebot.SendingMessage{linebot.NewTextMessage(presenter.FormatTop(rows))}
}
