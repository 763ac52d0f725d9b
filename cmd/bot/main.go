// Package main is the entry point for the LINE trivia game bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"line-trivia-bot/internal/bot"
	"line-trivia-bot/internal/config"
	"line-trivia-bot/internal/game"
	"line-trivia-bot/internal/game/chain"
	"line-trivia-bot/internal/game/compat"
	"line-trivia-bot/internal/game/letters"
	"line-trivia-bot/internal/game/mathgen"
	"line-trivia-bot/internal/game/riddle"
	"line-trivia-bot/internal/game/scramble"
	"line-trivia-bot/internal/game/stroop"
	"line-trivia-bot/internal/pkg/db"
	"line-trivia-bot/internal/points"
	"line-trivia-bot/internal/presenter"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, cleanup := newPointsStore(ctx, cfg)
	defer cleanup()

	registry := game.NewRegistry()
	registerGames(registry, cfg)
	log.Info().Strs("kinds", registry.Kinds()).Msg("Games registered")

	var pres presenter.Presenter = presenter.NewTextPresenter()
	if cfg.Bot.UseFlex {
		pres = presenter.NewFlexPresenter()
	}

	lineBot, err := bot.New(&bot.Dependencies{
		Config:    cfg,
		Registry:  registry,
		Points:    store,
		Presenter: pres,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	// Idle-session sweep: the only garbage collection for abandoned
	// games.
	go func() {
		ticker := time.NewTicker(cfg.Session.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				registry.CleanupExpired(cfg.Session.IdleExpiry)
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Msg("Bot is starting...")
		if err := lineBot.Start(); err != nil {
			log.Fatal().Err(err).Msg("Webhook server failed")
		}
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := lineBot.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Webhook shutdown failed")
	}
	log.Info().Msg("Bot stopped gracefully")
}

// newPointsStore builds the configured points ledger and returns it
// with its teardown function.
func newPointsStore(ctx context.Context, cfg *config.Config) (points.Store, func()) {
	switch cfg.Store.Backend {
	case "postgres":
		pool, err := db.NewPool(ctx, &cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		store := points.NewPostgresStore(pool.Pool)
		if err := store.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to run points migration")
		}
		return store, pool.Close

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		return points.NewRedisStore(client, cfg.Store.LeaderboardKey), func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("Redis close failed")
			}
		}

	default:
		log.Warn().Str("backend", cfg.Store.Backend).
			Msg("Using in-memory points store; points reset on restart")
		return points.NewMemoryStore(), func() {}
	}
}

// registerGames wires every game kind to its question source and
// session policy.
func registerGames(registry *game.Registry, cfg *config.Config) {
	register := func(kind string, gc config.GameConfig, factory game.SourceFactory) {
		err := registry.RegisterKind(kind, factory, game.SessionConfig{
			MaxRounds:        gc.MaxRounds,
			HintPenalty:      gc.HintPenalty,
			HintOncePerRound: gc.HintOncePerRound,
			TimeLimit:        gc.TimeLimit,
		})
		if err != nil {
			log.Fatal().Err(err).Str("kind", kind).Msg("Failed to register game")
		}
	}

	register("riddle", cfg.Games.Riddle, func() game.QuestionSource {
		src, err := riddle.New(&riddle.Config{Items: riddle.DefaultItems})
		if err != nil {
			log.Error().Err(err).Msg("riddle bank unavailable")
			return failingSource{err}
		}
		return src
	})

	register("songs", cfg.Games.Songs, func() game.QuestionSource {
		src, err := riddle.New(&riddle.Config{
			Items:    riddle.DefaultSongItems,
			Strategy: game.MatchContains,
		})
		if err != nil {
			log.Error().Err(err).Msg("song bank unavailable")
			return failingSource{err}
		}
		return src
	})

	register("math", cfg.Games.Math, func() game.QuestionSource {
		return mathgen.New(nil)
	})

	register("scramble", cfg.Games.Scramble, func() game.QuestionSource {
		src, err := scramble.New(nil)
		if err != nil {
			log.Error().Err(err).Msg("scramble pool unavailable")
			return failingSource{err}
		}
		return src
	})

	register("letters", cfg.Games.Letters, func() game.QuestionSource {
		return letters.New(nil)
	})

	register("chain", cfg.Games.Chain, func() game.QuestionSource {
		src, err := chain.New(nil)
		if err != nil {
			log.Error().Err(err).Msg("chain pool unavailable")
			return failingSource{err}
		}
		return src
	})

	register("compat", cfg.Games.Compat, func() game.QuestionSource {
		return compat.New()
	})

	register("stroop", cfg.Games.Stroop, func() game.QuestionSource {
		return stroop.New(nil)
	})
}

// failingSource surfaces a construction error through the engine's
// generation-failure path instead of crashing registration.
type failingSource struct{ err error }

func (f failingSource) Next(round int) (*game.Question, error) {
	return nil, f.err
}
