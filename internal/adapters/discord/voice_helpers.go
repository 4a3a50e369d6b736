package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

// VoiceGateway manda el op 4 (voice state) por el gateway; el audio lo pone lavalink.
type VoiceGateway struct {
	s *discordgo.Session
}

func NewVoiceGateway(s *discordgo.Session) *VoiceGateway {
	return &VoiceGateway{s: s}
}

// JoinVoice entra ensordecido (self-deaf).
func (g *VoiceGateway) JoinVoice(guildID, channelID string) error {
	return g.s.ChannelVoiceJoinManual(guildID, channelID, false, true)
}

// LeaveVoice: canal vacío = desconectar.
func (g *VoiceGateway) LeaveVoice(guildID string) error {
	return g.s.ChannelVoiceJoinManual(guildID, "", false, false)
}

// Notifier publica en el canal de texto de la sesión lo que pasa sin comando de por medio.
type Notifier struct {
	s *discordgo.Session
}

func NewNotifier(s *discordgo.Session) *Notifier {
	return &Notifier{s: s}
}

func (n *Notifier) NowPlaying(channelID string, t domain.Track) {
	n.send(channelID, nowPlayingText(t))
}

func (n *Notifier) QueueEnded(channelID string) {
	n.send(channelID, queueEndedText)
}

func (n *Notifier) send(channelID, content string) {
	if channelID == "" {
		return
	}
	if _, err := n.s.ChannelMessageSend(channelID, content); err != nil {
		log.Warn().Err(err).Str("channel", channelID).Msg("notify")
	}
}
