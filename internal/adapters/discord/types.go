package discord

import (
	"context"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

// Handler es lo que el router necesita de la capa de servicios (service.Dispatcher).
type Handler interface {
	Gate(cmd domain.Command) error
	Handle(ctx context.Context, cmd domain.Command) domain.Reply
	ReplyFor(cmd domain.Command, err error) domain.Reply
	Navigate(token, requester string) (domain.Reply, error)
}

// VoiceForwarder recibe los eventos de voz del gateway (lavalink.Client).
type VoiceForwarder interface {
	OnVoiceStateUpdate(guildID, userID, channelID, sessionID string)
	OnVoiceServerUpdate(guildID, token, endpoint string)
}
