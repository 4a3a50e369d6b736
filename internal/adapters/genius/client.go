package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const defaultBase = "https://api.genius.com"

type Client struct {
	token   string
	http    *http.Client
	baseURL string
}

func New(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBase,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// GetLyrics busca la canción y scrapea la letra del primer hit.
// "" sin error = no hay letra.
func (c *Client) GetLyrics(ctx context.Context, title, artist string) (string, error) {
	songs, err := c.Search(ctx, optimizeQuery(title+" "+artist))
	if err != nil {
		return "", err
	}
	if len(songs) == 0 {
		return "", nil
	}
	return c.scrape(ctx, songs[0].URL)
}

func (c *Client) Search(ctx context.Context, query string) ([]Song, error) {
	if c.token == "" {
		return nil, ErrNoToken
	}
	q := url.Values{}
	q.Set("q", query)

	var dto searchDTO
	if err := c.doJSON(ctx, c.baseURL+"/search", q, &dto); err != nil {
		return nil, err
	}
	out := make([]Song, 0, len(dto.Response.Hits))
	for _, h := range dto.Response.Hits {
		if h.Type != "song" || h.Result.URL == "" {
			continue
		}
		out = append(out, Song{
			ID:     h.Result.ID,
			Title:  h.Result.Title,
			Artist: h.Result.PrimaryArtist.Name,
			URL:    h.Result.URL,
		})
	}
	return out, nil
}

var (
	reParens  = regexp.MustCompile(` *\([^)]*\) *`)
	reBracket = regexp.MustCompile(` *\[[^\]]*\]`)
	reFeat    = regexp.MustCompile(`feat\.|ft\.`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// optimizeQuery limpia "(Official Video)", "[Remix]", "feat." y espacios de más.
func optimizeQuery(s string) string {
	s = strings.ToLower(s)
	s = reParens.ReplaceAllString(s, " ")
	s = reBracket.ReplaceAllString(s, "")
	s = reFeat.ReplaceAllString(s, "")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// doJSON igual que en el cliente de lavalink, pero con Bearer y URL absoluta.
func (c *Client) doJSON(ctx context.Context, u string, q url.Values, out any) error {
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("genius http: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusTooManyRequests {
		if ra := res.Header.Get("Retry-After"); ra != "" {
			if sec, _ := strconv.Atoi(ra); sec > 0 {
				select {
				case <-time.After(time.Duration(sec) * time.Second):
				case <-ctx.Done():
					return ctx.Err()
				}
				return c.doJSON(ctx, u, nil, out)
			}
		}
	}
	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return json.NewDecoder(res.Body).Decode(out)
}
