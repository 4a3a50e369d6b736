package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/lavalink-music-bot/internal/app/service"
	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

const slowDown = "⏳ Slow down a little…"

func (r *Router) handleMessageComponent(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	data := ic.MessageComponentData()
	user := interactionUser(ic)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("custom_id", data.CustomID).Msg("panic in component")
			ReplyEphemeral(s, ic, service.GenericFailure)
		}
	}()

	switch {
	case strings.HasPrefix(data.CustomID, service.TokenPrefix):
		if !r.clickLimiter.Allow(user) {
			_ = Respond(s, ic, domain.Ephemeral(slowDown))
			return
		}
		stop := step("component.lyrics_nav")
		defer stop()

		reply, err := r.handler.Navigate(data.CustomID, user)
		if err != nil {
			cmd := domain.Command{Name: domain.CmdLyrics, UserID: user, GuildID: ic.GuildID, ChannelID: ic.ChannelID}
			_ = Respond(s, ic, r.handler.ReplyFor(cmd, err))
			return
		}
		_ = UpdateMessage(s, ic, reply)

	default:
		log.Debug().Str("custom_id", data.CustomID).Str("user", user).Msg("component desconocido")
		_ = Respond(s, ic, domain.Ephemeral(service.NavFailure))
	}
}
