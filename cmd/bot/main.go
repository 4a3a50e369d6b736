package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	discordrouter "github.com/jose-valero/lavalink-music-bot/internal/adapters/discord"
	"github.com/jose-valero/lavalink-music-bot/internal/adapters/genius"
	"github.com/jose-valero/lavalink-music-bot/internal/adapters/httpstatus"
	"github.com/jose-valero/lavalink-music-bot/internal/adapters/lavalink"
	"github.com/jose-valero/lavalink-music-bot/internal/app/service"
	"github.com/jose-valero/lavalink-music-bot/internal/infra/config"
	"github.com/jose-valero/lavalink-music-bot/internal/infra/logging"
	"github.com/jose-valero/lavalink-music-bot/internal/infra/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Playlists: Postgres si hay DATABASE_URL, si no el archivo JSON
	var store service.PlaylistStore
	if cfg.UsePostgres() {
		db, err := storage.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("db")
		}
		defer func(db *sql.DB) { _ = db.Close() }(db)
		if err := storage.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
		store = storage.NewPlaylistRepo(db)
		log.Info().Msg("✅ playlists en Postgres")
	} else {
		store = storage.NewPlaylistFile(cfg.PlaylistFile)
		log.Info().Str("path", cfg.PlaylistFile).Msg("✅ playlists en archivo")
	}

	// Discord session (antes de lavalink, que la usa para voz y avisos)
	auth := cfg.DiscordToken
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(auth)), "bot ") {
		auth = "Bot " + strings.TrimSpace(auth)
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Fatal().Err(err).Msg("discord session")
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates

	ll := lavalink.New(cfg.LavalinkHost, cfg.LavalinkPort, cfg.LavalinkPassword,
		lavalink.WithSecure(cfg.LavalinkSecure),
		lavalink.WithName(cfg.LavalinkName),
		lavalink.WithSearchPrefix(cfg.LavalinkSearchPrefix),
		lavalink.WithNotifier(discordrouter.NewNotifier(s)),
		lavalink.WithVoiceGateway(discordrouter.NewVoiceGateway(s)),
	)

	// Services
	pages := service.NewPaginator(cfg.LyricsPageTTL)
	defer pages.Close()

	sessions := service.NewSessionService(ll)
	dispatcher := service.NewDispatcher(
		discordrouter.NewVoicePermissions(s),
		service.NewQueueService(sessions, ll),
		service.NewPlaylistService(store, ll, sessions),
		service.NewFilterService(sessions),
		service.NewLyricsService(sessions, genius.New(cfg.GeniusAPIKey), pages),
	)
	if cfg.GeniusAPIKey == "" {
		log.Warn().Msg("GENIUS_API_KEY vacío: /lyrics va a fallar")
	}

	// Router (handlers antes de Open para no perder el primer VOICE_STATE)
	r := discordrouter.NewRouter(s, cfg.DiscordGuild, dispatcher, ll, cfg.HandlerTimeout)
	r.Handlers()

	if err := s.Open(); err != nil {
		log.Fatal().Err(err).Msg("discord open")
	}
	defer s.Close()
	log.Info().Str("user", s.State.User.Username).Str("id", s.State.User.ID).Msg("✅ Conectado")

	// Lavalink necesita el user id del bot para el websocket
	go func() {
		if err := ll.Run(ctx, s.State.User.ID); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("lavalink stopped")
		}
	}()

	if err := r.Register(); err != nil {
		log.Fatal().Err(err).Msg("registrando comandos")
	}

	status := httpstatus.New(ll)
	go func() {
		if err := status.Start(cfg.HTTPAddr); err != nil {
			log.Error().Err(err).Msg("http status")
		}
	}()

	// Esperar señal
	<-ctx.Done()
	log.Info().Msg("apagando…")

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	_ = status.Shutdown(shutdownCtx)
}
