package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

const queuePreview = 10

type QueueService struct {
	sessions *SessionService
	audio    AudioClient
}

func NewQueueService(sessions *SessionService, audio AudioClient) *QueueService {
	return &QueueService{sessions: sessions, audio: audio}
}

// Play resuelve la query, encola y arranca si el player estaba quieto.
// Si ya hay sesión en el guild se encola al final.
func (s *QueueService) Play(ctx context.Context, cmd domain.Command) (domain.Reply, error) {
	query, _ := cmd.Args.String("query")
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Reply{}, &domain.RouterError{Code: domain.InvalidArgs, Subject: "query"}
	}

	res, err := resolve(ctx, s.audio, query, cmd.UserID)
	if err != nil {
		return domain.Reply{}, err
	}

	var (
		msg    string
		tracks []domain.Track
	)
	if res.Type == domain.LoadPlaylist {
		tracks = res.Tracks
		msg = fmt.Sprintf("🎶 Added playlist **%s** with %d tracks.", res.Playlist.Name, len(res.Tracks))
	} else {
		t, _ := res.First()
		tracks = []domain.Track{t}
		msg = fmt.Sprintf("🎶 Added **%s** to the queue.", t.Title)
	}

	if _, err := s.sessions.Enqueue(ctx, cmd, tracks...); err != nil {
		return domain.Reply{}, err
	}
	return domain.Text(msg), nil
}

// resolve: error de transporte o loadType=error => AudioResolveFailed, vacío => NoSearchResults.
func resolve(ctx context.Context, audio AudioClient, query, requester string) (domain.LoadResult, error) {
	res, err := audio.Resolve(ctx, query, requester)
	if err != nil {
		return res, &domain.UpstreamError{Code: domain.AudioResolveFailed, Err: err}
	}
	if res.Type == domain.LoadError {
		return res, &domain.UpstreamError{Code: domain.AudioResolveFailed, Err: fmt.Errorf("load failed: %s", res.Message)}
	}
	if res.IsEmpty() {
		return res, domain.ErrNoSearchResults
	}
	return res, nil
}

func (s *QueueService) Pause(ctx context.Context, cmd domain.Command) (domain.Reply, error) {
	p, err := s.sessions.Require(cmd.GuildID)
	if err != nil {
		return domain.Reply{}, err
	}
	if p.Paused() {
		return domain.Reply{}, domain.ErrAlreadyPaused
	}
	if err := p.Pause(ctx, true); err != nil {
		return domain.Reply{}, &domain.UpstreamError{Code: domain.AudioResolveFailed, Err: err}
	}
	return domain.Text("⏸️ Paused the current song."), nil
}

func (s *QueueService) Resume(ctx context.Context, cmd domain.Command) (domain.Reply, error) {
	p, err := s.sessions.Require(cmd.GuildID)
	if err != nil {
		return domain.Reply{}, err
	}
	if !p.Paused() {
		return domain.Reply{}, domain.ErrNotPaused
	}
	if err := p.Pause(ctx, false); err != nil {
		return domain.Reply{}, &domain.UpstreamError{Code: domain.AudioResolveFailed, Err: err}
	}
	return domain.Text("▶️ Resumed the current song."), nil
}

// Skip corta el track actual; el avance de la cola lo hace el evento TrackEnd.
func (s *QueueService) Skip(ctx context.Context, cmd domain.Command) (domain.Reply, error) {
	p, st := s.sessions.Lookup(cmd.GuildID)
	if st == StateAbsent || st == StateIdle || p.QueueSize() == 0 {
		return domain.Reply{}, domain.ErrEmptyQueue
	}
	if err := p.Stop(ctx); err != nil {
		return domain.Reply{}, &domain.UpstreamError{Code: domain.AudioResolveFailed, Err: err}
	}
	return domain.Text("⏭️ Skipped the current song."), nil
}

func (s *QueueService) Stop(ctx context.Context, cmd domain.Command) (domain.Reply, error) {
	p, err := s.sessions.Require(cmd.GuildID)
	if err != nil {
		return domain.Reply{}, err
	}
	if err := p.Destroy(ctx); err != nil {
		return domain.Reply{}, &domain.UpstreamError{Code: domain.AudioResolveFailed, Err: err}
	}
	return domain.Text("⏹️ Stopped playback and cleared the queue."), nil
}

// Status lista hasta 10 tracks de la cola pendiente.
func (s *QueueService) Status(_ context.Context, cmd domain.Command) (domain.Reply, error) {
	p, st := s.sessions.Lookup(cmd.GuildID)
	if st == StateAbsent || p.QueueSize() == 0 {
		return domain.Text("ℹ️ No music is playing or the queue is empty."), nil
	}

	var b strings.Builder
	b.WriteString("📋 **Current Queue** (Showing up to 10 tracks):\n")
	for i, t := range p.Queue() {
		if i == queuePreview {
			break
		}
		fmt.Fprintf(&b, "`%d.` **%s** by %s [%s]\n", i+1, t.Title, t.Author, FormatDuration(t.LengthMs))
	}
	return domain.Text(strings.TrimRight(b.String(), "\n")), nil
}

const helpColor = 0xFF7A00

func (s *QueueService) Help(_ context.Context, _ domain.Command) (domain.Reply, error) {
	fields := make([]domain.EmbedField, 0, len(Catalog))
	for _, c := range Catalog {
		fields = append(fields, domain.EmbedField{Name: "/" + string(c.Name), Value: c.Description})
	}
	return domain.Reply{Embed: &domain.Embed{
		Title:       "Music Bot Commands",
		Description: "List of all available commands and their descriptions.",
		Color:       helpColor,
		Footer:      "Use /command for specific usage details",
		Fields:      fields,
	}}, nil
}

// FormatDuration: ms -> "mm:ss" con minutos totales (una hora = 60:00).
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	sec := ms / 1000
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}
