// esta es la logica de InteractionApplicationCommand de discordgo
// aqui solo traducimos la interaccion a domain.Command, pasamos el gate y despachamos
package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/lavalink-music-bot/internal/app/service"
)

func (r *Router) handleSlashCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	user := interactionUser(ic)
	cmd := commandFrom(ic, r.voiceChannelOf(ic.GuildID, user))

	logger := log.With().
		Str("cmd", string(cmd.Name)).
		Str("guild", cmd.GuildID).
		Str("user", cmd.UserID).
		Logger()
	logger.Info().Str("voice", cmd.VoiceChannelID).Msg("slash")

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Interface("panic", rec).Msg("panic in slash command")
			ReplyEphemeral(s, ic, service.GenericFailure)
		}
	}()

	// el gate no hace I/O lento: si falla se contesta sin defer
	if err := r.handler.Gate(cmd); err != nil {
		_ = Respond(s, ic, r.handler.ReplyFor(cmd, err))
		return
	}

	stop := step("slash." + string(cmd.Name))
	defer stop()

	if !cmd.Name.Deferred() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		_ = Respond(s, ic, r.handler.Handle(ctx, cmd))
		return
	}

	if err := Defer(s, ic); err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	Finish(s, ic, r.handler.Handle(ctx, cmd))
}
