package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

// interactionUser: en guild viene en Member, en DM en User.
func interactionUser(ic *discordgo.InteractionCreate) string {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User.ID
	}
	if ic.User != nil {
		return ic.User.ID
	}
	return ""
}

// argsOf pasa las opciones del slash command a domain.Args (string / int64).
func argsOf(data discordgo.ApplicationCommandInteractionData) domain.Args {
	args := domain.Args{}
	for _, o := range data.Options {
		switch o.Type {
		case discordgo.ApplicationCommandOptionString:
			args[o.Name] = o.StringValue()
		case discordgo.ApplicationCommandOptionInteger:
			args[o.Name] = o.IntValue()
		}
	}
	return args
}

// commandFrom traduce la interacción a un domain.Command.
// voiceChannelID lo resuelve el router contra el state (puede ser "").
func commandFrom(ic *discordgo.InteractionCreate, voiceChannelID string) domain.Command {
	data := ic.ApplicationCommandData()
	return domain.Command{
		Name:           domain.CommandName(data.Name),
		Args:           argsOf(data),
		UserID:         interactionUser(ic),
		VoiceChannelID: voiceChannelID,
		GuildID:        ic.GuildID,
		ChannelID:      ic.ChannelID,
	}
}
