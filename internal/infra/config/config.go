package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DiscordToken string `env:"DISCORD_BOT_TOKEN,required,notEmpty"`
	DiscordGuild string `env:"DISCORD_GUILD_ID"` // vacío = comandos globales

	LavalinkHost         string `env:"LAVALINK_HOST" envDefault:"localhost"`
	LavalinkPort         int    `env:"LAVALINK_PORT" envDefault:"2333"`
	LavalinkPassword     string `env:"LAVALINK_PASSWORD" envDefault:"youshallnotpass"`
	LavalinkSecure       bool   `env:"LAVALINK_SECURE" envDefault:"false"`
	LavalinkName         string `env:"LAVALINK_NAME" envDefault:"Main Node"`
	LavalinkSearchPrefix string `env:"LAVALINK_SEARCH_PREFIX" envDefault:"ytmsearch"`

	GeniusAPIKey string `env:"GENIUS_API_KEY"`

	// si hay DATABASE_URL las playlists van a Postgres, si no al archivo
	PlaylistFile string `env:"PLAYLIST_FILE" envDefault:"playlists.json"`
	DatabaseURL  string `env:"DATABASE_URL"`

	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	HandlerTimeout time.Duration `env:"HANDLER_TIMEOUT" envDefault:"12s"`
	LyricsPageTTL  time.Duration `env:"LYRICS_PAGE_TTL" envDefault:"5m"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// Load lee el entorno (main ya cargó el .env con godotenv).
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.LavalinkPort <= 0 || c.LavalinkPort > 65535 {
		errs = append(errs, fmt.Errorf("LAVALINK_PORT out of range: %d", c.LavalinkPort))
	}
	if c.HandlerTimeout <= 0 {
		errs = append(errs, errors.New("HANDLER_TIMEOUT must be positive"))
	}
	if c.LyricsPageTTL <= 0 {
		errs = append(errs, errors.New("LYRICS_PAGE_TTL must be positive"))
	}
	if c.DatabaseURL == "" && c.PlaylistFile == "" {
		errs = append(errs, errors.New("PLAYLIST_FILE or DATABASE_URL is required"))
	}
	return errors.Join(errs...)
}

// UsePostgres: backend de playlists elegido.
func (c Config) UsePostgres() bool { return c.DatabaseURL != "" }
