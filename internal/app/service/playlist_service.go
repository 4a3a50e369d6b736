package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

type PlaylistService struct {
	store    PlaylistStore
	audio    AudioClient
	sessions *SessionService
}

func NewPlaylistService(store PlaylistStore, audio AudioClient, sessions *SessionService) *PlaylistService {
	return &PlaylistService{store: store, audio: audio, sessions: sessions}
}

func playlistName(cmd domain.Command) (string, error) {
	name, _ := cmd.Args.String("name")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &domain.RouterError{Code: domain.InvalidArgs, Subject: "name"}
	}
	return name, nil
}

func (s *PlaylistService) Create(ctx context.Context, cmd domain.Command) (domain.Reply, error) {
	name, err := playlistName(cmd)
	if err != nil {
		return domain.Reply{}, err
	}
	if err := s.store.Create(ctx, cmd.UserID, name); err != nil {
		return domain.Reply{}, err
	}
	return domain.Text(fmt.Sprintf("✅ Created playlist **%s**.", name)), nil
}

func (s *PlaylistService) Delete(ctx context.Context, cmd domain.Command) (domain.Reply, error) {
	name, err := playlistName(cmd)
	if err != nil {
		return domain.Reply{}, err
	}
	if err := s.store.Delete(ctx, cmd.UserID, name); err != nil {
		return domain.Reply{}, err
	}
	return domain.Text(fmt.Sprintf("🗑️ Deleted playlist **%s**.", name)), nil
}

// Add guarda solo el primer resultado de la búsqueda.
func (s *PlaylistService) Add(ctx context.Context, cmd domain.Command) (domain.Reply, error) {
	name, err := playlistName(cmd)
	if err != nil {
		return domain.Reply{}, err
	}
	query, _ := cmd.Args.String("query")
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Reply{}, &domain.RouterError{Code: domain.InvalidArgs, Subject: "query"}
	}

	// la playlist tiene que existir antes de ir a buscar nada
	if _, err := s.store.List(ctx, cmd.UserID, name); err != nil {
		return domain.Reply{}, err
	}

	res, err := resolve(ctx, s.audio, query, cmd.UserID)
	if err != nil {
		return domain.Reply{}, err
	}
	t, _ := res.First()
	if err := s.store.Append(ctx, cmd.UserID, name, t.Ref()); err != nil {
		return domain.Reply{}, err
	}
	return domain.Text(fmt.Sprintf("✅ Added **%s** to playlist **%s**.", t.Title, name)), nil
}

// Remove recibe el índice 1-based tal como lo escribe el usuario.
func (s *PlaylistService) Remove(ctx context.Context, cmd domain.Command) (domain.Reply, error) {
	name, err := playlistName(cmd)
	if err != nil {
		return domain.Reply{}, err
	}
	idx, ok := cmd.Args.Int("index")
	if !ok {
		return domain.Reply{}, &domain.RouterError{Code: domain.InvalidArgs, Subject: "index"}
	}

	removed, err := s.store.RemoveAt(ctx, cmd.UserID, name, int(idx)-1)
	if err != nil {
		return domain.Reply{}, err
	}
	return domain.Text(fmt.Sprintf("🗑️ Removed **%s** from playlist **%s**.", removed.Title, name)), nil
}

// PlayStored vuelve a resolver cada URI guardada y encola lo que resuelva.
func (s *PlaylistService) PlayStored(ctx context.Context, cmd domain.Command) (domain.Reply, error) {
	name, err := playlistName(cmd)
	if err != nil {
		return domain.Reply{}, err
	}
	refs, err := s.store.List(ctx, cmd.UserID, name)
	if err != nil {
		return domain.Reply{}, err
	}
	if len(refs) == 0 {
		return domain.Reply{}, &domain.NotFoundError{Code: domain.PlaylistEmpty, Subject: name}
	}

	tracks := make([]domain.Track, 0, len(refs))
	for _, ref := range refs {
		res, err := resolve(ctx, s.audio, ref.URI, cmd.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNoSearchResults) {
				log.Warn().Str("playlist", name).Str("uri", ref.URI).Msg("stored track no longer resolves")
			} else {
				log.Warn().Err(err).Str("playlist", name).Str("uri", ref.URI).Msg("stored track resolve failed")
			}
			continue
		}
		t, _ := res.First()
		tracks = append(tracks, t)
	}
	if len(tracks) == 0 {
		return domain.Reply{}, domain.ErrNoSearchResults
	}

	if _, err := s.sessions.Enqueue(ctx, cmd, tracks...); err != nil {
		return domain.Reply{}, err
	}

	msg := fmt.Sprintf("🎶 Playing playlist **%s** with %d tracks.", name, len(tracks))
	if skipped := len(refs) - len(tracks); skipped > 0 {
		msg += fmt.Sprintf(" (%d could not be loaded)", skipped)
	}
	return domain.Text(msg), nil
}
