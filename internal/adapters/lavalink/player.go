package lavalink

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

// Player es la sesión de un guild: cola local + el player remoto de disgolink.
type Player struct {
	c             *Client
	guildID       string
	textChannelID string
	remote        remotePlayer

	mu             sync.Mutex
	voiceChannelID string
	queue          []domain.Track
	current        *domain.Track
	paused         bool
	filters        domain.Filters
	destroyed      bool

	voiceReady chan struct{}
	readyOnce  sync.Once
}

func newPlayer(c *Client, guildID, voiceChannelID, textChannelID string, remote remotePlayer) *Player {
	return &Player{
		c:              c,
		guildID:        guildID,
		voiceChannelID: voiceChannelID,
		textChannelID:  textChannelID,
		remote:         remote,
		voiceReady:     make(chan struct{}),
	}
}

func (p *Player) GuildID() string { return p.guildID }

func (p *Player) TextChannelID() string { return p.textChannelID }

func (p *Player) VoiceChannelID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.voiceChannelID
}

func (p *Player) closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.destroyed
}

func (p *Player) update(ctx context.Context, opts ...lavalink.PlayerUpdateOpt) error {
	if p.closed() {
		return ErrDestroyed
	}
	return p.remote.Update(ctx, opts...)
}

// Play saca el primero de la cola y lo manda al nodo. Cola vacía: no hace nada.
func (p *Player) Play(ctx context.Context) error {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return ErrDestroyed
	}
	if len(p.queue) == 0 {
		p.mu.Unlock()
		return nil
	}
	next := p.queue[0]
	p.queue = p.queue[1:]
	p.current = &next
	p.paused = false
	p.mu.Unlock()

	if err := p.update(ctx, lavalink.WithEncodedTrack(next.Encoded), lavalink.WithPaused(false)); err != nil {
		p.mu.Lock()
		p.current = nil
		p.mu.Unlock()
		return err
	}
	return nil
}

func (p *Player) Pause(ctx context.Context, pause bool) error {
	if err := p.update(ctx, lavalink.WithPaused(pause)); err != nil {
		return err
	}
	p.mu.Lock()
	p.paused = pause
	p.mu.Unlock()
	return nil
}

// Stop corta el track actual. El nodo manda TrackEnd "stopped" y ahí se avanza la cola.
func (p *Player) Stop(ctx context.Context) error {
	return p.update(ctx, lavalink.WithNullTrack())
}

// Destroy borra el player del nodo, saca al bot de voz y tira la cola. Idempotente.
func (p *Player) Destroy(ctx context.Context) error {
	if !p.release() {
		return nil
	}
	if p.c.voice != nil {
		if err := p.c.voice.LeaveVoice(p.guildID); err != nil {
			log.Warn().Err(err).Str("guild", p.guildID).Msg("leave voice")
		}
	}
	if err := p.remote.Destroy(ctx); err != nil {
		return fmt.Errorf("destroy player: %w", err)
	}
	return nil
}

// release marca el player como cerrado y lo saca del registro. false si ya lo estaba.
func (p *Player) release() bool {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return false
	}
	p.destroyed = true
	p.queue = nil
	p.current = nil
	p.mu.Unlock()

	p.c.forget(p)
	return true
}

func (p *Player) Enqueue(tracks ...domain.Track) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed {
		return ErrDestroyed
	}
	p.queue = append(p.queue, tracks...)
	return nil
}

func (p *Player) Queue() []domain.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Track(nil), p.queue...)
}

func (p *Player) QueueSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

func (p *Player) Current() (domain.Track, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return domain.Track{}, false
	}
	return *p.current, true
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil && !p.paused
}

func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

func (p *Player) Filters() domain.Filters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters
}

// SetFilters manda el objeto entero; Lavalink reemplaza todos los filtros.
func (p *Player) SetFilters(ctx context.Context, f domain.Filters) error {
	lf, err := toLavalinkFilters(f)
	if err != nil {
		return err
	}
	if err := p.update(ctx, lavalink.WithFilters(lf)); err != nil {
		return err
	}
	p.mu.Lock()
	p.filters = f
	p.mu.Unlock()
	return nil
}

// toLavalinkFilters: los dos tipos usan el JSON de Lavalink, así que pasa por ahí.
func toLavalinkFilters(f domain.Filters) (lavalink.Filters, error) {
	var lf lavalink.Filters
	b, err := json.Marshal(f)
	if err != nil {
		return lf, fmt.Errorf("encode filters: %w", err)
	}
	if err := json.Unmarshal(b, &lf); err != nil {
		return lf, fmt.Errorf("decode filters: %w", err)
	}
	return lf, nil
}

// advance: terminó un track. Si quedan, sigue; si no, avisa y se destruye.
func (p *Player) advance(ctx context.Context) {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return
	}
	p.current = nil
	empty := len(p.queue) == 0
	p.mu.Unlock()

	if empty {
		if p.c.notifier != nil {
			p.c.notifier.QueueEnded(p.textChannelID)
		}
		if err := p.Destroy(ctx); err != nil {
			log.Warn().Err(err).Str("guild", p.guildID).Msg("destroy on queue end")
		}
		return
	}
	if err := p.Play(ctx); err != nil {
		log.Error().Err(err).Str("guild", p.guildID).Msg("play next track")
	}
}

func (p *Player) setVoiceChannel(channelID string) {
	p.mu.Lock()
	p.voiceChannelID = channelID
	p.mu.Unlock()
}

func (p *Player) markVoiceReady() {
	p.readyOnce.Do(func() { close(p.voiceReady) })
}
