package service

import (
	"context"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

// Lo implementa internal/adapters/lavalink.Client
type AudioClient interface {
	CreateConnection(ctx context.Context, guildID, voiceChannelID, textChannelID string) (domain.Session, error)
	Player(guildID string) (domain.Session, bool)
	Resolve(ctx context.Context, query, requester string) (domain.LoadResult, error)
}

// Lo implementan storage.PlaylistFile y storage.PlaylistRepo
type PlaylistStore interface {
	Create(ctx context.Context, userID, name string) error
	Delete(ctx context.Context, userID, name string) error
	Append(ctx context.Context, userID, name string, t domain.TrackRef) error
	RemoveAt(ctx context.Context, userID, name string, index int) (domain.TrackRef, error)
	List(ctx context.Context, userID, name string) ([]domain.TrackRef, error)
}

// Lo implementa internal/adapters/genius.Client
type LyricsProvider interface {
	GetLyrics(ctx context.Context, title, artist string) (string, error)
}

// Lo implementa el adapter de discord (permisos del bot en el canal de voz)
type VoicePermissions interface {
	CanConnectAndSpeak(guildID, channelID string) (bool, error)
}
