package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jackc/pgx/v5/pgxpool"
)

// playlists vacías que nadie tocó en este tiempo se borran
const staleAfter = "30 days"

const pruneSQL = `
DELETE FROM playlists p
WHERE p.updated_at < now() - $1::interval
  AND NOT EXISTS (
    SELECT 1 FROM playlist_tracks t
    WHERE t.user_id = p.user_id AND t.name = p.name
  );`

func handler(ctx context.Context) (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "no DATABASE_URL", nil
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Sprintf("parse: %v", err), nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Sprintf("pool: %v", err), nil
	}
	defer pool.Close()

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := pool.Exec(cctx, pruneSQL, staleAfter)
	if err != nil {
		return "", fmt.Errorf("prune playlists: %w", err)
	}
	return fmt.Sprintf("ok: %d playlists borradas", tag.RowsAffected()), nil
}

func main() { lambda.Start(handler) }
