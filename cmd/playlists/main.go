package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/jose-valero/lavalink-music-bot/internal/infra/logging"
)

func main() {
	_ = godotenv.Load()
	logging.Setup(os.Getenv("LOG_LEVEL"), true)

	r := &Runner{out: os.Stdout}
	app := &cli.Command{
		Name:  "playlists",
		Usage: "Inspect and move playlists between the JSON file and Postgres",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Path to the playlist JSON file",
				Value:   "playlists.json",
				Sources: cli.EnvVars("PLAYLIST_FILE"),
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Postgres URL (empty = file only)",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
		},
		Commands: r.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("playlists")
	}
}
