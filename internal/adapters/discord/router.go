package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type Router struct {
	s       *discordgo.Session
	guildID string // vacío = comandos globales
	timeout time.Duration

	handler Handler
	voice   VoiceForwarder

	clickLimiter *userLimiter
}

func NewRouter(
	s *discordgo.Session,
	guildID string,
	handler Handler,
	voice VoiceForwarder,
	timeout time.Duration,
) *Router {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &Router{
		s:            s,
		guildID:      guildID,
		timeout:      timeout,
		handler:      handler,
		voice:        voice,
		clickLimiter: newUserLimiter(time.Second),
	}
}

// Register crea (o pisa) los slash commands del catálogo.
func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands() {
		if _, err := r.s.ApplicationCommandCreate(appID, r.guildID, cmd); err != nil {
			return err
		}
	}
	log.Info().Str("guild", r.guildID).Int("commands", len(Commands())).Msg("slash commands registrados")
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		switch ic.Type {
		case discordgo.InteractionApplicationCommand:
			r.handleSlashCommand(s, ic)
		case discordgo.InteractionMessageComponent:
			r.handleMessageComponent(s, ic)
		}
	})

	// voz del propio bot → lavalink necesita session id + token/endpoint
	r.s.AddHandler(func(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
		if vs.VoiceState == nil {
			return
		}
		r.voice.OnVoiceStateUpdate(vs.GuildID, vs.UserID, vs.ChannelID, vs.SessionID)
	})
	r.s.AddHandler(func(s *discordgo.Session, vs *discordgo.VoiceServerUpdate) {
		r.voice.OnVoiceServerUpdate(vs.GuildID, vs.Token, vs.Endpoint)
	})
}

// voiceChannelOf: canal de voz actual del usuario según el state cacheado. "" = no está en voz.
func (r *Router) voiceChannelOf(guildID, userID string) string {
	if guildID == "" || userID == "" {
		return ""
	}
	vs, err := r.s.State.VoiceState(guildID, userID)
	if err != nil || vs == nil {
		return ""
	}
	return vs.ChannelID
}
