package service

import (
	"context"
	"errors"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

type SessionState int

const (
	StateAbsent SessionState = iota
	StateIdle
	StatePlaying
	StatePaused
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	}
	return "absent"
}

// StateOf deriva el estado de un player; nil = Absent.
func StateOf(p domain.Session) SessionState {
	switch {
	case p == nil:
		return StateAbsent
	case p.Paused():
		return StatePaused
	case p.Playing():
		return StatePlaying
	}
	return StateIdle
}

// SessionService es la vista por guild del registro de players del nodo.
// El registro real vive en el cliente de audio, acá no se guarda nada.
type SessionService struct {
	audio AudioClient
}

func NewSessionService(audio AudioClient) *SessionService {
	return &SessionService{audio: audio}
}

func (s *SessionService) Lookup(guildID string) (domain.Session, SessionState) {
	p, ok := s.audio.Player(guildID)
	if !ok || p == nil {
		return nil, StateAbsent
	}
	return p, StateOf(p)
}

// Require devuelve la sesión del guild o ErrNoSession.
func (s *SessionService) Require(guildID string) (domain.Session, error) {
	p, st := s.Lookup(guildID)
	if st == StateAbsent {
		return nil, domain.ErrNoSession
	}
	return p, nil
}

// Ensure crea la sesión si no existe (create-or-reuse).
func (s *SessionService) Ensure(ctx context.Context, cmd domain.Command) (domain.Session, error) {
	if p, st := s.Lookup(cmd.GuildID); st != StateAbsent {
		return p, nil
	}
	return s.create(ctx, cmd)
}

func (s *SessionService) create(ctx context.Context, cmd domain.Command) (domain.Session, error) {
	if cmd.VoiceChannelID == "" {
		return nil, domain.ErrNotInVoice
	}
	p, err := s.audio.CreateConnection(ctx, cmd.GuildID, cmd.VoiceChannelID, cmd.ChannelID)
	if err != nil {
		return nil, &domain.UpstreamError{Code: domain.AudioResolveFailed, Err: err}
	}
	return p, nil
}

// Enqueue encola en la sesión del guild (create-or-reuse) y la arranca si está idle.
// Si el player se cerró entre el lookup y el encolado se abre una sesión nueva, una sola vez.
func (s *SessionService) Enqueue(ctx context.Context, cmd domain.Command, tracks ...domain.Track) (domain.Session, error) {
	p, err := s.Ensure(ctx, cmd)
	if err != nil {
		return nil, err
	}
	err = enqueueAndStart(ctx, p, tracks)
	if errors.Is(err, domain.ErrSessionClosed) {
		if p, err = s.create(ctx, cmd); err != nil {
			return nil, err
		}
		err = enqueueAndStart(ctx, p, tracks)
	}
	if err != nil {
		return nil, &domain.UpstreamError{Code: domain.AudioResolveFailed, Err: err}
	}
	return p, nil
}

func enqueueAndStart(ctx context.Context, p domain.Session, tracks []domain.Track) error {
	if err := p.Enqueue(tracks...); err != nil {
		return err
	}
	return StartIfIdle(ctx, p)
}

// StartIfIdle arranca la cola si el player no está sonando ni pausado.
func StartIfIdle(ctx context.Context, p domain.Session) error {
	if StateOf(p) != StateIdle {
		return nil
	}
	return p.Play(ctx)
}
