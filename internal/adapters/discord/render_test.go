package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/lavalink-music-bot/internal/app/service"
	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

func buttonsOf(t *testing.T, comps []discordgo.MessageComponent) (discordgo.Button, discordgo.Button) {
	t.Helper()
	require.Len(t, comps, 1)
	row, ok := comps[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 2)
	prev, ok := row.Components[0].(discordgo.Button)
	require.True(t, ok)
	next, ok := row.Components[1].(discordgo.Button)
	require.True(t, ok)
	return prev, next
}

func TestPageRendering(t *testing.T) {
	view := domain.PageView{Handle: "h1", OwnerUserID: "u1", Title: "Lyrics for X", Text: "la la", Index: 0, Total: 3}

	data := responseData(domain.Reply{Page: &view})

	require.Len(t, data.Embeds, 1)
	e := data.Embeds[0]
	assert.Equal(t, "Lyrics for X", e.Title)
	assert.Equal(t, "la la", e.Description)
	assert.Equal(t, "Page 1 of 3", e.Footer.Text)
	assert.Equal(t, pageColor, e.Color)
	assert.Zero(t, data.Flags)

	prev, next := buttonsOf(t, data.Components)
	assert.Equal(t, "Previous", prev.Label)
	assert.True(t, prev.Disabled)
	assert.False(t, next.Disabled)
	assert.Equal(t, service.EncodeToken(service.Next, "h1", "u1", 0), next.CustomID)

	tok, err := service.DecodeToken(prev.CustomID)
	require.NoError(t, err)
	assert.Equal(t, service.Prev, tok.Dir)
	assert.Equal(t, "h1", tok.Handle)
	assert.Equal(t, "u1", tok.Owner)
}

func TestPageRenderingLastPage(t *testing.T) {
	view := domain.PageView{Handle: "h1", OwnerUserID: "u1", Index: 2, Total: 3}

	prev, next := buttonsOf(t, pageButtons(view))
	assert.False(t, prev.Disabled)
	assert.True(t, next.Disabled)
	assert.Equal(t, "Page 3 of 3", pageEmbed(view).Footer.Text)
}

func TestEphemeralText(t *testing.T) {
	data := responseData(domain.Ephemeral("nope"))

	assert.Equal(t, "nope", data.Content)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)
	assert.Empty(t, data.Embeds)
	assert.Empty(t, data.Components)
}

func TestEmbedReply(t *testing.T) {
	reply := domain.Reply{Embed: &domain.Embed{
		Title:  "Music Bot Commands",
		Footer: "foot",
		Color:  0xFF7A00,
		Fields: []domain.EmbedField{{Name: "/play", Value: "Play a song or playlist"}},
	}}

	edit := webhookEdit(reply)

	require.NotNil(t, edit.Embeds)
	require.Len(t, *edit.Embeds, 1)
	e := (*edit.Embeds)[0]
	assert.Equal(t, "Music Bot Commands", e.Title)
	assert.Equal(t, "foot", e.Footer.Text)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "/play", e.Fields[0].Name)
	assert.Empty(t, *edit.Content)
	assert.Empty(t, *edit.Components)
}

func TestNowPlayingText(t *testing.T) {
	got := nowPlayingText(domain.Track{Title: "Song", Author: "Band"})
	assert.Equal(t, "🎶 Now Playing: **Song** by Band", got)
}
