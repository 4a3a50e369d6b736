package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

func slash(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "i1",
		Type:      discordgo.InteractionApplicationCommand,
		GuildID:   "g1",
		ChannelID: "tc1",
		Member:    &discordgo.Member{User: &discordgo.User{ID: "u1"}},
		Data:      discordgo.ApplicationCommandInteractionData{Name: name, Options: opts},
	}}
}

func strOpt(name, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: v}
}

func intOpt(name string, v int) *discordgo.ApplicationCommandInteractionDataOption {
	// así llega del JSON del gateway
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(v)}
}

func TestCommandFrom(t *testing.T) {
	ic := slash("playlist_remove", strOpt("name", "mix"), intOpt("index", 2))

	cmd := commandFrom(ic, "vc1")

	assert.Equal(t, domain.CmdPlaylistRemove, cmd.Name)
	assert.Equal(t, "u1", cmd.UserID)
	assert.Equal(t, "vc1", cmd.VoiceChannelID)
	assert.Equal(t, "g1", cmd.GuildID)
	assert.Equal(t, "tc1", cmd.ChannelID)

	name, ok := cmd.Args.String("name")
	require.True(t, ok)
	assert.Equal(t, "mix", name)
	idx, ok := cmd.Args.Int("index")
	require.True(t, ok)
	assert.EqualValues(t, 2, idx)
}

func TestCommandFromWithoutOptions(t *testing.T) {
	cmd := commandFrom(slash("lyrics"), "")

	_, ok := cmd.Args.String("query")
	assert.False(t, ok)
	assert.Empty(t, cmd.VoiceChannelID)
}

func TestInteractionUser(t *testing.T) {
	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{User: &discordgo.User{ID: "dm"}}}
	assert.Equal(t, "dm", interactionUser(dm))
	assert.Equal(t, "u1", interactionUser(slash("help")))
	assert.Empty(t, interactionUser(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}))
}
