package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

// PlaylistRepo es el mismo store que PlaylistFile pero en Postgres.
type PlaylistRepo struct{ db *sql.DB }

func NewPlaylistRepo(db *sql.DB) *PlaylistRepo { return &PlaylistRepo{db: db} }

func (r *PlaylistRepo) Create(ctx context.Context, userID, name string) error {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO playlists (user_id, name)
VALUES ($1, $2)
ON CONFLICT (user_id, name) DO NOTHING
`, userID, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return exists(name)
	}
	return nil
}

func (r *PlaylistRepo) Delete(ctx context.Context, userID, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM playlists WHERE user_id = $1 AND name = $2`, userID, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return absent(name)
	}
	return nil
}

func (r *PlaylistRepo) Append(ctx context.Context, userID, name string, t domain.TrackRef) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if err := lockPlaylist(ctx, tx, userID, name); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO playlist_tracks (user_id, name, position, title, author, uri, length_ms)
SELECT $1, $2, COALESCE(MAX(position) + 1, 0), $3, $4, $5, $6
  FROM playlist_tracks
 WHERE user_id = $1 AND name = $2
`, userID, name, t.Title, t.Author, t.URI, t.Length); err != nil {
			return err
		}
		return touch(ctx, tx, userID, name)
	})
}

// RemoveAt recibe índice 0-based. Reescribe las posiciones para que queden contiguas.
func (r *PlaylistRepo) RemoveAt(ctx context.Context, userID, name string, index int) (domain.TrackRef, error) {
	var removed domain.TrackRef
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		if err := lockPlaylist(ctx, tx, userID, name); err != nil {
			return err
		}
		refs, err := listTracks(ctx, tx, userID, name)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(refs) {
			return outOfRange(name)
		}
		removed = refs[index]
		refs = append(refs[:index:index], refs[index+1:]...)
		if err := replaceTracks(ctx, tx, userID, name, refs); err != nil {
			return err
		}
		return touch(ctx, tx, userID, name)
	})
	return removed, err
}

func (r *PlaylistRepo) List(ctx context.Context, userID, name string) ([]domain.TrackRef, error) {
	var out []domain.TrackRef
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM playlists WHERE user_id = $1 AND name = $2`, userID, name).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return absent(name)
		}
		if err != nil {
			return err
		}
		out, err = listTracks(ctx, tx, userID, name)
		return err
	})
	return out, err
}

// Export arma el documento completo (mismo formato que el archivo JSON).
func (r *PlaylistRepo) Export(ctx context.Context) (Document, error) {
	doc := Document{}
	rows, err := r.db.QueryContext(ctx, `SELECT user_id, name FROM playlists ORDER BY user_id, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var user, name string
		if err := rows.Scan(&user, &name); err != nil {
			return nil, err
		}
		if doc[user] == nil {
			doc[user] = map[string][]domain.TrackRef{}
		}
		doc[user][name] = []domain.TrackRef{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	trows, err := r.db.QueryContext(ctx, `
SELECT user_id, name, title, author, uri, length_ms
  FROM playlist_tracks
 ORDER BY user_id, name, position
`)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var user, name string
		var t domain.TrackRef
		if err := trows.Scan(&user, &name, &t.Title, &t.Author, &t.URI, &t.Length); err != nil {
			return nil, err
		}
		if doc[user] == nil {
			continue
		}
		doc[user][name] = append(doc[user][name], t)
	}
	return doc, trows.Err()
}

// Import hace upsert de cada playlist del documento y reemplaza sus tracks.
// Las playlists que no están en doc quedan como estaban.
func (r *PlaylistRepo) Import(ctx context.Context, doc Document) (int, error) {
	n := 0
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		for user, lists := range doc {
			for name, refs := range lists {
				if _, err := tx.ExecContext(ctx, `
INSERT INTO playlists (user_id, name) VALUES ($1, $2)
ON CONFLICT (user_id, name) DO UPDATE SET updated_at = NOW()
`, user, name); err != nil {
					return fmt.Errorf("upsert %s/%s: %w", user, name, err)
				}
				if err := replaceTracks(ctx, tx, user, name, refs); err != nil {
					return fmt.Errorf("tracks %s/%s: %w", user, name, err)
				}
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *PlaylistRepo) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func lockPlaylist(ctx context.Context, tx *sql.Tx, userID, name string) error {
	var one int
	err := tx.QueryRowContext(ctx, `
SELECT 1 FROM playlists WHERE user_id = $1 AND name = $2 FOR UPDATE
`, userID, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return absent(name)
	}
	return err
}

func touch(ctx context.Context, tx *sql.Tx, userID, name string) error {
	_, err := tx.ExecContext(ctx, `UPDATE playlists SET updated_at = NOW() WHERE user_id = $1 AND name = $2`, userID, name)
	return err
}

func listTracks(ctx context.Context, tx *sql.Tx, userID, name string) ([]domain.TrackRef, error) {
	rows, err := tx.QueryContext(ctx, `
SELECT title, author, uri, length_ms
  FROM playlist_tracks
 WHERE user_id = $1 AND name = $2
 ORDER BY position
`, userID, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.TrackRef{}
	for rows.Next() {
		var t domain.TrackRef
		if err := rows.Scan(&t.Title, &t.Author, &t.URI, &t.Length); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// replaceTracks borra y reinserta en un solo INSERT con unnest de arrays.
func replaceTracks(ctx context.Context, tx *sql.Tx, userID, name string, refs []domain.TrackRef) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM playlist_tracks WHERE user_id = $1 AND name = $2`, userID, name); err != nil {
		return err
	}
	if len(refs) == 0 {
		return nil
	}

	titles := make([]string, len(refs))
	authors := make([]string, len(refs))
	uris := make([]string, len(refs))
	lengths := make([]int64, len(refs))
	for i, t := range refs {
		titles[i], authors[i], uris[i], lengths[i] = t.Title, t.Author, t.URI, t.Length
	}

	_, err := tx.ExecContext(ctx, `
INSERT INTO playlist_tracks (user_id, name, position, title, author, uri, length_ms)
SELECT $1, $2, t.ord - 1, t.title, t.author, t.uri, t.length_ms
  FROM unnest($3::text[], $4::text[], $5::text[], $6::bigint[])
       WITH ORDINALITY AS t(title, author, uri, length_ms, ord)
`, userID, name, pq.Array(titles), pq.Array(authors), pq.Array(uris), pq.Int64Array(lengths))
	return err
}
