package genius

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const songPage = `<!doctype html><html><body>
<div class="header">Bohemian Rhapsody Lyrics</div>
<div data-lyrics-container="true" class="Lyrics__Container">
  <div data-exclude-from-selection="true">12 Contributors</div>[Intro]<br/>Is this the real life?<br/>Is this just <i>fantasy</i>?</div>
<div>ads</div>
<div data-lyrics-container="true">Caught in a landslide<br>No escape from reality &amp; more</div>
</body></html>`

func newGenius(t *testing.T, search func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", search)
	mux.HandleFunc("/queen-bohemian-rhapsody-lyrics", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, songPage)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetLyrics(t *testing.T) {
	var srv *httptest.Server
	srv = newGenius(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		assert.Equal(t, "bohemian rhapsody queen", r.URL.Query().Get("q"))
		fmt.Fprintf(w, `{"response":{"hits":[{"type":"song","result":{"id":1,"title":"Bohemian Rhapsody","url":%q,"primary_artist":{"name":"Queen"}}}]}}`,
			srv.URL+"/queen-bohemian-rhapsody-lyrics")
	})
	c := New("tkn", WithBaseURL(srv.URL))

	lyrics, err := c.GetLyrics(context.Background(), "Bohemian Rhapsody (Official Video)", "Queen")

	require.NoError(t, err)
	assert.Equal(t, "[Intro]\nIs this the real life?\nIs this just fantasy?\nCaught in a landslide\nNo escape from reality & more", lyrics)
}

func TestGetLyricsNoHits(t *testing.T) {
	srv := newGenius(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"response":{"hits":[]}}`)
	})

	lyrics, err := New("tkn", WithBaseURL(srv.URL)).GetLyrics(context.Background(), "zzz", "")

	require.NoError(t, err)
	assert.Empty(t, lyrics)
}

func TestGetLyricsUpstreamFailure(t *testing.T) {
	srv := newGenius(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := New("tkn", WithBaseURL(srv.URL)).GetLyrics(context.Background(), "x", "")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
}

func TestGetLyricsWithoutToken(t *testing.T) {
	_, err := New("").GetLyrics(context.Background(), "x", "")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestOptimizeQuery(t *testing.T) {
	cases := map[string]string{
		"Bohemian Rhapsody (Official Video) Queen": "bohemian rhapsody queen",
		"Song [Remix]  Artist":                      "song artist",
		"Track feat. Someone":                       "track someone",
		"  Lots   of\tspace ":                       "lots of space",
	}
	for in, want := range cases {
		assert.Equal(t, want, optimizeQuery(in), in)
	}
}

func TestExtractLyricsWithoutContainers(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><p>nothing</p></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, extractLyrics(doc))
}
