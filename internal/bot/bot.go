// Package bot provides the LINE webhook server and routes incoming
// text to the game engine.
package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/rs/zerolog/log"

	"line-trivia-bot/internal/config"
	"line-trivia-bot/internal/game"
	"line-trivia-bot/internal/points"
	"line-trivia-bot/internal/presenter"
)

// Dependencies holds everything the bot needs; wired once in main.
type Dependencies struct {
	Config    *config.Config
	Registry  *game.Registry
	Points    points.Store
	Presenter presenter.Presenter
}

// Bot wraps the LINE client and webhook server with application
// dependencies.
type Bot struct {
	client    *linebot.Client
	cfg       *config.Config
	registry  *game.Registry
	points    points.Store
	presenter presenter.Presenter
	vocab     *vocabulary
	server    *http.Server

	// names caches display names seen on incoming events so the
	// durable leaderboard can show names instead of raw user ids.
	names sync.Map // map[string]string
}

// New creates a Bot instance with the given dependencies.
func New(deps *Dependencies) (*Bot, error) {
	if deps.Config.Bot.ChannelSecret == "" || deps.Config.Bot.ChannelToken == "" {
		return nil, fmt.Errorf("LINE channel secret and token are required")
	}

	client, err := linebot.New(deps.Config.Bot.ChannelSecret, deps.Config.Bot.ChannelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE client: %w", err)
	}

	b := &Bot{
		client:    client,
		cfg:       deps.Config,
		registry:  deps.Registry,
		points:    deps.Points,
		presenter: deps.Presenter,
		vocab:     newVocabulary(deps.Config.Commands),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(deps.Config.Bot.CallbackPath, b.handleCallback)
	b.server = &http.Server{Addr: deps.Config.Bot.ListenAddr, Handler: mux}

	return b, nil
}

// Start serves the webhook until Stop is called.
func (b *Bot) Start() error {
	log.Info().Str("addr", b.cfg.Bot.ListenAddr).
		Str("path", b.cfg.Bot.CallbackPath).Msg("webhook server starting")
	if err := b.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the webhook server down gracefully.
func (b *Bot) Stop(ctx context.Context) error {
	log.Info().Msg("webhook server stopping")
	return b.server.Shutdown(ctx)
}

// handleCallback verifies and dispatches one webhook delivery. Several
// deliveries may be in flight concurrently; the engine's locks make
// that safe.
func (b *Bot) handleCallback(w http.ResponseWriter, r *http.Request) {
	events, err := b.client.ParseRequest(r)
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			w.WriteHeader(http.StatusBadRequest)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)

	for _, event := range events {
		if event.Type != linebot.EventTypeMessage {
			continue
		}
		msg, ok := event.Message.(*linebot.TextMessage)
		if !ok {
			continue
		}

		roomID := roomIDOf(event.Source)
		userID := event.Source.UserID
		if roomID == "" || userID == "" {
			continue
		}
		name := b.displayName(userID)

		replies := b.route(r.Context(), roomID, userID, name, msg.Text)
		if len(replies) == 0 {
			continue
		}
		if _, err := b.client.ReplyMessage(event.ReplyToken, replies...).Do(); err != nil {
			log.Error().Err(err).Str("room_id", roomID).Msg("failed to reply")
		}
	}
}

// roomIDOf picks the conversation key: group, multi-person room, or
// the user themselves in a 1:1 chat.
func roomIDOf(source *linebot.EventSource) string {
	if source == nil {
		return ""
	}
	if source.GroupID != "" {
		return source.GroupID
	}
	if source.RoomID != "" {
		return source.RoomID
	}
	return source.UserID
}

// displayName resolves a user's profile name, caching it for
// leaderboard rendering. Falls back to a generic name when the profile
// is not visible to the bot.
func (b *Bot) displayName(userID string) string {
	if cached, ok := b.names.Load(userID); ok {
		return cached.(string)
	}

	name := "لاعب"
	if profile, err := b.client.GetProfile(userID).Do(); err == nil && profile.DisplayName != "" {
		name = profile.DisplayName
	}
	b.names.Store(userID, name)
	return name
}
