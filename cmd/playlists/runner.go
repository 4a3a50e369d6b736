package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/jose-valero/lavalink-music-bot/internal/infra/storage"
)

var errNoDB = errors.New("--db (or DATABASE_URL) is required for this command")

type Runner struct {
	out io.Writer
}

func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "list",
			Usage: "List playlists with their track counts",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "Only this Discord user id"},
				&cli.StringFlag{Name: "source", Usage: "file or db", Value: "file"},
			},
			Action: r.List,
		},
		{
			Name:  "export",
			Usage: "Dump every Postgres playlist into a JSON file",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Destination file", Required: true},
			},
			Action: r.Export,
		},
		{
			Name:  "import",
			Usage: "Load a JSON playlist file into Postgres",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "Source file (defaults to --file)"},
			},
			Action: r.Import,
		},
	}
}

func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	var (
		doc storage.Document
		err error
	)
	switch cmd.String("source") {
	case "file":
		doc, err = storage.NewPlaylistFile(cmd.String("file")).Load(ctx)
	case "db":
		err = r.withRepo(ctx, cmd, func(repo *storage.PlaylistRepo) error {
			doc, err = repo.Export(ctx)
			return err
		})
	default:
		return fmt.Errorf("unknown source %q (file|db)", cmd.String("source"))
	}
	if err != nil {
		return err
	}
	return writeSummaries(r.out, doc.Summaries(cmd.String("user")))
}

func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	return r.withRepo(ctx, cmd, func(repo *storage.PlaylistRepo) error {
		doc, err := repo.Export(ctx)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		dest := storage.NewPlaylistFile(cmd.String("out"))
		if err := dest.Save(ctx, doc); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "✓ %d playlists written to %s\n", len(doc.Summaries("")), dest.Path())
		return nil
	})
}

func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	in := cmd.String("in")
	if in == "" {
		in = cmd.String("file")
	}
	doc, err := storage.NewPlaylistFile(in).Load(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w", in, err)
	}
	return r.withRepo(ctx, cmd, func(repo *storage.PlaylistRepo) error {
		n, err := repo.Import(ctx, doc)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		fmt.Fprintf(r.out, "✓ %d playlists imported from %s\n", n, in)
		return nil
	})
}

// withRepo abre Postgres, migra y cierra al terminar.
func (r *Runner) withRepo(ctx context.Context, cmd *cli.Command, fn func(*storage.PlaylistRepo) error) error {
	url := cmd.String("db")
	if url == "" {
		return errNoDB
	}
	db, err := storage.Open(ctx, url)
	if err != nil {
		return err
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("db close")
		}
	}(db)
	if err := storage.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return fn(storage.NewPlaylistRepo(db))
}

func writeSummaries(w io.Writer, rows []storage.PlaylistSummary) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no playlists")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tPLAYLIST\tTRACKS")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", row.UserID, row.Name, row.Tracks)
	}
	return tw.Flush()
}
