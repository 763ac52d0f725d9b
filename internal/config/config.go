// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable
// overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Bot      BotConfig      `mapstructure:"bot"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Session  SessionConfig  `mapstructure:"session"`
	Commands CommandsConfig `mapstructure:"commands"`
	Games    GamesConfig    `mapstructure:"games"`
}

// BotConfig holds the LINE channel credentials and webhook listener.
type BotConfig struct {
	ChannelSecret string `mapstructure:"channel_secret"`
	ChannelToken  string `mapstructure:"channel_token"`
	ListenAddr    string `mapstructure:"listen_addr"`
	CallbackPath  string `mapstructure:"callback_path"`
	UseFlex       bool   `mapstructure:"use_flex"`
}

// StoreConfig selects the points ledger backend.
type StoreConfig struct {
	// Backend is one of: memory, postgres, redis.
	Backend        string `mapstructure:"backend"`
	LeaderboardKey string `mapstructure:"leaderboard_key"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	PoolSize        int           `mapstructure:"pool_size"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// RedisConfig holds the Redis connection configuration.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SessionConfig holds registry-wide session housekeeping settings.
type SessionConfig struct {
	IdleExpiry      time.Duration `mapstructure:"idle_expiry"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// CommandsConfig is the localized control vocabulary. Start words map
// to game kinds; the rest are matched after normalization.
type CommandsConfig struct {
	Games  map[string]string `mapstructure:"games"`
	Hint   []string          `mapstructure:"hint"`
	Reveal []string          `mapstructure:"reveal"`
	Stop   []string          `mapstructure:"stop"`
	Points []string          `mapstructure:"points"`
	Top    []string          `mapstructure:"top"`
	Live   []string          `mapstructure:"live"`
}

// GameConfig holds the per-kind session policy.
type GameConfig struct {
	MaxRounds        int           `mapstructure:"max_rounds"`
	HintPenalty      int           `mapstructure:"hint_penalty"`
	HintOncePerRound bool          `mapstructure:"hint_once_per_round"`
	TimeLimit        time.Duration `mapstructure:"time_limit"`
}

// GamesConfig holds per-game-kind configuration.
type GamesConfig struct {
	Riddle   GameConfig `mapstructure:"riddle"`
	Songs    GameConfig `mapstructure:"songs"`
	Math     GameConfig `mapstructure:"math"`
	Scramble GameConfig `mapstructure:"scramble"`
	Letters  GameConfig `mapstructure:"letters"`
	Chain    GameConfig `mapstructure:"chain"`
	Compat   GameConfig `mapstructure:"compat"`
	Stroop   GameConfig `mapstructure:"stroop"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the given directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variables use underscore separator and uppercase,
	// e.g. BOT_CHANNEL_SECRET, DATABASE_HOST, STORE_BACKEND.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - env vars can provide all config.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.listen_addr", ":8080")
	v.SetDefault("bot.callback_path", "/callback")
	v.SetDefault("bot.use_flex", true)

	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.leaderboard_key", "trivia:points")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "trivia")
	v.SetDefault("database.name", "trivia")
	v.SetDefault("database.pool_size", 20)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("session.idle_expiry", "10m")
	v.SetDefault("session.cleanup_interval", "1m")

	v.SetDefault("commands.games", map[string]string{
		"ذكاء":   "riddle",
		"اغاني":  "songs",
		"حساب":   "math",
		"ترتيب":  "scramble",
		"لعبة":   "letters",
		"سلسله":  "chain",
		"توافق":  "compat",
		"الوان":  "stroop",
	})
	v.SetDefault("commands.hint", []string{"لمحه", "تلميح", "hint"})
	v.SetDefault("commands.reveal", []string{"جاوب", "الحل", "الاجابه"})
	v.SetDefault("commands.stop", []string{"ايقاف", "انهاء", "stop"})
	v.SetDefault("commands.points", []string{"نقاطي"})
	v.SetDefault("commands.top", []string{"الصداره", "توب"})
	v.SetDefault("commands.live", []string{"المتصدرون"})

	for _, kind := range []string{"riddle", "songs", "math", "scramble", "letters", "chain", "compat", "stroop"} {
		v.SetDefault("games."+kind+".max_rounds", 5)
		v.SetDefault("games."+kind+".hint_penalty", 5)
	}
	v.SetDefault("games.compat.max_rounds", 1)
	v.SetDefault("games.stroop.time_limit", "15s")
}
