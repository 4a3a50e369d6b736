package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

func TestPaginatorRejectsEmpty(t *testing.T) {
	p := NewPaginator(time.Minute)
	defer p.Close()

	_, err := p.Create("u1", "t", nil)
	assert.Error(t, err)
	assert.Zero(t, p.Len())
}

func TestPaginatorIndexStaysInRange(t *testing.T) {
	p := NewPaginator(time.Minute)
	defer p.Close()
	h, err := p.Create("u1", "t", []string{"a", "b", "c"})
	require.NoError(t, err)

	moves := []Direction{Prev, Prev, Next, Next, Next, Next, Prev, Next, Next}
	for _, m := range moves {
		v, err := p.Advance(h, "u1", m)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v.Index, 0)
		assert.Less(t, v.Index, v.Total)
		assert.Equal(t, []string{"a", "b", "c"}[v.Index], v.Text)
	}
}

func TestPaginatorForbiddenDoesNotMove(t *testing.T) {
	p := NewPaginator(time.Minute)
	defer p.Close()
	h, _ := p.Create("u1", "t", []string{"a", "b"})

	_, err := p.Advance(h, "intruder", Next)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	v, err := p.View(h)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index)
}

func TestPaginatorEvict(t *testing.T) {
	p := NewPaginator(time.Minute)
	h, _ := p.Create("u1", "t", []string{"a"})

	assert.True(t, p.Evict(h))
	assert.False(t, p.Evict(h))
	_, err := p.Advance(h, "u1", Next)
	assert.ErrorIs(t, err, domain.ErrExpired)
}

func TestPaginatorConcurrentAdvance(t *testing.T) {
	p := NewPaginator(time.Minute)
	defer p.Close()
	h, _ := p.Create("u1", "t", []string{"a", "b", "c", "d"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dir := Next
			if i%2 == 0 {
				dir = Prev
			}
			v, err := p.Advance(h, "u1", dir)
			assert.NoError(t, err)
			assert.True(t, v.Index >= 0 && v.Index < 4)
		}(i)
	}
	wg.Wait()
}

func TestTokenRoundTrip(t *testing.T) {
	tok := EncodeToken(Prev, "6f1c", "42", 3)
	assert.Equal(t, "lyrics:prev:6f1c:42:3", tok)

	nav, err := DecodeToken(tok)
	require.NoError(t, err)
	assert.Equal(t, NavToken{Dir: Prev, Handle: "6f1c", Owner: "42", Page: 3}, nav)
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	for _, s := range []string{
		"",
		"queue:next:h:u:1",
		"lyrics:up:h:u:1",
		"lyrics:next::u:1",
		"lyrics:next:h:u",
		"lyrics:next:h:u:x",
	} {
		_, err := DecodeToken(s)
		assert.ErrorIs(t, err, domain.ErrExpired, fmt.Sprintf("%q", s))
	}
}
