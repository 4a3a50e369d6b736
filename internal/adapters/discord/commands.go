package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/lavalink-music-bot/internal/app/service"
)

// Commands arma los slash commands a partir del catálogo de servicios.
func Commands() []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(service.Catalog))
	for _, def := range service.Catalog {
		cmd := &discordgo.ApplicationCommand{
			Name:        string(def.Name),
			Description: def.Description,
		}
		for _, o := range def.Options {
			cmd.Options = append(cmd.Options, toOption(o))
		}
		out = append(out, cmd)
	}
	return out
}

func toOption(o service.CommandOption) *discordgo.ApplicationCommandOption {
	opt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        o.Name,
		Description: o.Description,
		Required:    o.Required,
	}
	if o.Kind == service.OptionInteger {
		opt.Type = discordgo.ApplicationCommandOptionInteger
		if o.MinValue != 0 {
			min := float64(o.MinValue)
			opt.MinValue = &min
		}
	}
	for _, c := range o.Choices {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  c.Name,
			Value: c.Value,
		})
	}
	return opt
}
