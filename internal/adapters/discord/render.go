package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/lavalink-music-bot/internal/app/service"
	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

const pageColor = 0xFF7A00

func responseData(reply domain.Reply) *discordgo.InteractionResponseData {
	d := &discordgo.InteractionResponseData{
		Content:    reply.Content,
		Embeds:     embedsOf(reply),
		Components: componentsOf(reply),
	}
	if reply.Ephemeral {
		d.Flags = discordgo.MessageFlagsEphemeral
	}
	return d
}

func webhookEdit(reply domain.Reply) *discordgo.WebhookEdit {
	content := reply.Content
	embeds := embedsOf(reply)
	comps := componentsOf(reply)
	return &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &embeds,
		Components: &comps,
	}
}

func embedsOf(reply domain.Reply) []*discordgo.MessageEmbed {
	var out []*discordgo.MessageEmbed
	if reply.Embed != nil {
		out = append(out, toEmbed(*reply.Embed))
	}
	if reply.Page != nil {
		out = append(out, pageEmbed(*reply.Page))
	}
	return out
}

func componentsOf(reply domain.Reply) []discordgo.MessageComponent {
	if reply.Page == nil {
		return []discordgo.MessageComponent{}
	}
	return pageButtons(*reply.Page)
}

func toEmbed(e domain.Embed) *discordgo.MessageEmbed {
	me := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	if e.Footer != "" {
		me.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	for _, f := range e.Fields {
		me.Fields = append(me.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	return me
}

func pageEmbed(v domain.PageView) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       v.Title,
		Description: v.Text,
		Color:       pageColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Page %d of %d", v.Index+1, v.Total)},
	}
}

// pageButtons: Previous/Next con el token de navegación, deshabilitados en los bordes.
func pageButtons(v domain.PageView) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Previous",
				Style:    discordgo.SecondaryButton,
				CustomID: service.EncodeToken(service.Prev, v.Handle, v.OwnerUserID, v.Index),
				Disabled: !v.HasPrev(),
			},
			discordgo.Button{
				Label:    "Next",
				Style:    discordgo.SecondaryButton,
				CustomID: service.EncodeToken(service.Next, v.Handle, v.OwnerUserID, v.Index),
				Disabled: !v.HasNext(),
			},
		}},
	}
}

func nowPlayingText(t domain.Track) string {
	return fmt.Sprintf("🎶 Now Playing: **%s** by %s", t.Title, t.Author)
}

const queueEndedText = "⏹️ Queue has ended."
