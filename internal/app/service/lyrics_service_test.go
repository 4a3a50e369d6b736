package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

func TestSplitChunksByLines(t *testing.T) {
	line := strings.Repeat("a", 99)
	lines := make([]string, 90)
	for i := range lines {
		lines[i] = line
	}
	text := strings.Join(lines, "\n")

	chunks := SplitChunks(text, 4000)

	require.Len(t, chunks, 3)
	assert.Len(t, strings.Split(chunks[0], "\n"), 40)
	assert.Len(t, strings.Split(chunks[1], "\n"), 40)
	assert.Len(t, strings.Split(chunks[2], "\n"), 10)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 4000)
	}
	assert.Equal(t, text, strings.Join(chunks, "\n"))
}

func TestSplitChunksHardSplitsLongLine(t *testing.T) {
	chunks := SplitChunks(strings.Repeat("x", 9000), 4000)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 4000)
	assert.Len(t, chunks[1], 4000)
	assert.Len(t, chunks[2], 1000)
}

func TestSplitChunksCountsRunes(t *testing.T) {
	chunks := SplitChunks(strings.Repeat("ñ", 10), 4)

	require.Len(t, chunks, 3)
	assert.Equal(t, "ññññ", chunks[0])
	assert.Equal(t, "ññ", chunks[2])
}

func TestSplitChunksEmpty(t *testing.T) {
	assert.Empty(t, SplitChunks("  \n\n ", 4000))
}

func TestLyricsForQuery(t *testing.T) {
	h := newHarness(fakePerms{ok: true})
	h.lyrics.text = strings.Repeat(strings.Repeat("l", 99)+"\n", 90)

	reply := h.d.Handle(context.Background(), cmd(domain.CmdLyrics, domain.Args{"query": "Bohemian Rhapsody"}))

	require.NotNil(t, reply.Page)
	assert.Equal(t, "Lyrics for Bohemian Rhapsody", reply.Page.Title)
	assert.Equal(t, 0, reply.Page.Index)
	assert.Equal(t, 3, reply.Page.Total)
	assert.False(t, reply.Page.HasPrev())
	assert.True(t, reply.Page.HasNext())
	assert.Equal(t, [][2]string{{"Bohemian Rhapsody", ""}}, h.lyrics.calls)
	assert.Equal(t, 1, h.pages.Len())
}

func TestLyricsForCurrentTrack(t *testing.T) {
	h := newHarness(fakePerms{ok: true})
	ctx := context.Background()
	h.lyrics.text = "la la la"

	reply := h.d.Handle(ctx, cmd(domain.CmdLyrics, nil))
	assert.Contains(t, reply.Content, "No song is currently playing, and no query was provided.")

	h.audio.results["q"] = domain.TrackResult(track("Song", "Band", "u", 1))
	h.d.Handle(ctx, cmd(domain.CmdPlay, domain.Args{"query": "q"}))

	reply = h.d.Handle(ctx, cmd(domain.CmdLyrics, nil))
	require.NotNil(t, reply.Page)
	assert.Equal(t, "Lyrics for Song by Band", reply.Page.Title)
	assert.Equal(t, 1, reply.Page.Total)
}

func TestLyricsFailures(t *testing.T) {
	h := newHarness(fakePerms{ok: true})
	ctx := context.Background()

	reply := h.d.Handle(ctx, cmd(domain.CmdLyrics, domain.Args{"query": "x"}))
	assert.Contains(t, reply.Content, "No lyrics found for this song.")

	h.lyrics.err = errors.New("503")
	reply = h.d.Handle(ctx, cmd(domain.CmdLyrics, domain.Args{"query": "x"}))
	assert.True(t, reply.Ephemeral)
	assert.Contains(t, reply.Content, "Error fetching lyrics. Please try again later.")
	assert.Zero(t, h.pages.Len())
}

func TestLyricsNavigation(t *testing.T) {
	h := newHarness(fakePerms{ok: true})
	h.lyrics.text = strings.Repeat(strings.Repeat("l", 99)+"\n", 90)
	reply := h.d.Handle(context.Background(), cmd(domain.CmdLyrics, domain.Args{"query": "q"}))
	require.NotNil(t, reply.Page)
	handle := reply.Page.Handle

	next := EncodeToken(Next, handle, "u1", 0)

	_, err := h.d.Navigate(next, "u2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, NavFailure, h.d.ReplyFor(domain.Command{}, err).Content)

	r, err := h.d.Navigate(next, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Page.Index)

	// la página del token no importa, manda la guardada
	r, err = h.d.Navigate(next, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Page.Index)
	assert.False(t, r.Page.HasNext())

	r, err = h.d.Navigate(next, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Page.Index)

	r, err = h.d.Navigate(EncodeToken(Prev, handle, "u1", 2), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Page.Index)
}

func TestLyricsPagesExpire(t *testing.T) {
	h := newHarness(fakePerms{ok: true})
	h.pages = NewPaginator(20 * time.Millisecond)
	h.d.lyrics.pages = h.pages
	h.lyrics.text = "a\nb"

	reply := h.d.Handle(context.Background(), cmd(domain.CmdLyrics, domain.Args{"query": "q"}))
	require.NotNil(t, reply.Page)

	require.Eventually(t, func() bool { return h.pages.Len() == 0 }, time.Second, 5*time.Millisecond)

	_, err := h.d.Navigate(EncodeToken(Next, reply.Page.Handle, "u1", 0), "u1")
	assert.ErrorIs(t, err, domain.ErrExpired)
}
