package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

// Respond contesta directo, sin defer (comandos rápidos y errores del gate).
func Respond(s *discordgo.Session, ic *discordgo.InteractionCreate, reply domain.Reply) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: responseData(reply),
	})
	if err != nil {
		log.Error().Err(err).Str("interaction", ic.ID).Msg("respond")
	}
	return err
}

// Defer público (para trabajos >3s). La respuesta final va con Finish.
func Defer(s *discordgo.Session, ic *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Error().Err(err).Str("interaction", ic.ID).Msg("defer")
	}
	return err
}

// Finish cierra un comando diferido. El "pensando..." es público, así que si la
// respuesta es efímera se manda como followup y se borra el mensaje diferido.
func Finish(s *discordgo.Session, ic *discordgo.InteractionCreate, reply domain.Reply) {
	if reply.Ephemeral {
		ReplyEphemeral(s, ic, reply.Content, embedsOf(reply)...)
		if err := s.InteractionResponseDelete(ic.Interaction); err != nil {
			log.Debug().Err(err).Str("interaction", ic.ID).Msg("delete deferred response")
		}
		return
	}
	if _, err := s.InteractionResponseEdit(ic.Interaction, webhookEdit(reply)); err != nil {
		log.Error().Err(err).Str("interaction", ic.ID).Msg("edit deferred response")
	}
}

// UpdateMessage reemplaza el mensaje que tiene el botón (paginación).
func UpdateMessage(s *discordgo.Session, ic *discordgo.InteractionCreate, reply domain.Reply) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: responseData(reply),
	})
	if err != nil {
		log.Error().Err(err).Str("interaction", ic.ID).Msg("update message")
	}
	return err
}

func ReplyEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, content string, embeds ...*discordgo.MessageEmbed) {
	_, err := s.FollowupMessageCreate(ic.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Embeds:  embeds,
		Flags:   discordgo.MessageFlagsEphemeral,
	})

	if err != nil {
		// Fallback sólo si todavía no hay respuesta (webhook desconocido)
		var reqErr *discordgo.RESTError
		if errors.As(err, &reqErr) && reqErr.Message != nil && reqErr.Message.Code == discordgo.ErrCodeUnknownWebhook {
			_ = s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: content,
					Flags:   discordgo.MessageFlagsEphemeral,
					Embeds:  embeds,
				},
			})
			return
		}
		log.Error().Err(err).Str("interaction", ic.ID).Msg("reply ephemeral")
	}
}
