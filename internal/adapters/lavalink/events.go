package lavalink

import (
	"context"
	"time"

	"github.com/disgoorg/disgolink/v3/disgolink"
	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/rs/zerolog/log"
)

// closeDisconnected: Discord cerró la conexión de voz porque sacaron al bot del canal.
const closeDisconnected = 4014

const eventTimeout = 10 * time.Second

// listeners de disgolink; solo sacan el guild y delegan.

func (c *Client) onTrackStart(p disgolink.Player, _ lavalink.TrackStartEvent) {
	c.trackStarted(p.GuildID().String())
}

func (c *Client) onTrackEnd(p disgolink.Player, e lavalink.TrackEndEvent) {
	c.trackEnded(p.GuildID().String(), e.Reason)
}

func (c *Client) onTrackException(p disgolink.Player, e lavalink.TrackExceptionEvent) {
	log.Warn().
		Str("guild", p.GuildID().String()).
		Str("track", e.Track.Info.Title).
		Str("message", e.Exception.Message).
		Str("severity", string(e.Exception.Severity)).
		Msg("track exception")
}

func (c *Client) onTrackStuck(p disgolink.Player, e lavalink.TrackStuckEvent) {
	c.trackStuck(p.GuildID().String(), e.Track.Info.Title)
}

func (c *Client) onWebSocketClosed(p disgolink.Player, e lavalink.WebSocketClosedEvent) {
	c.voiceClosed(p.GuildID().String(), e.Code, e.Reason, e.ByRemote)
}

func (c *Client) trackStarted(guildID string) {
	p := c.player(guildID)
	if p == nil || c.notifier == nil {
		return
	}
	if t, ok := p.Current(); ok {
		c.notifier.NowPlaying(p.textChannelID, t)
	}
}

func (c *Client) trackEnded(guildID string, reason lavalink.TrackEndReason) {
	p := c.player(guildID)
	if p == nil {
		return
	}
	log.Debug().Str("guild", guildID).Str("reason", string(reason)).Msg("track ended")
	if !mayStartNext(reason) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()
	p.advance(ctx)
}

func (c *Client) trackStuck(guildID, title string) {
	p := c.player(guildID)
	if p == nil {
		return
	}
	l := log.With().Str("guild", guildID).Str("track", title).Logger()
	l.Warn().Msg("track stuck, skipping")
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()
	if err := p.Stop(ctx); err != nil {
		l.Error().Err(err).Msg("stop stuck track")
	}
}

func (c *Client) voiceClosed(guildID string, code int, reason string, byRemote bool) {
	l := log.With().Str("guild", guildID).Logger()
	l.Warn().Int("code", code).Str("reason", reason).Bool("by_remote", byRemote).Msg("discord voice socket closed")
	if code != closeDisconnected {
		return
	}
	p := c.player(guildID)
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()
	if err := p.Destroy(ctx); err != nil {
		l.Error().Err(err).Msg("destroy after voice close")
	}
}

// mayStartNext: replaced y cleanup no avanzan la cola. A diferencia de
// TrackEndReason.MayStartNext, stopped sí avanza: así funciona /skip.
func mayStartNext(reason lavalink.TrackEndReason) bool {
	switch reason {
	case lavalink.TrackEndReasonFinished, lavalink.TrackEndReasonLoadFailed, lavalink.TrackEndReasonStopped:
		return true
	}
	return false
}
