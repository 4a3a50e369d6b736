package genius

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

// scrape baja la página de la canción y junta el texto de los contenedores de letra.
func (c *Client) scrape(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; lavalink-music-bot)")

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("genius page: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 1<<10))
		return "", &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	doc, err := html.Parse(res.Body)
	if err != nil {
		return "", fmt.Errorf("genius page parse: %w", err)
	}
	return extractLyrics(doc), nil
}

func extractLyrics(doc *html.Node) string {
	var parts []string
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" && attr(n, "data-lyrics-container") == "true" {
			var b strings.Builder
			writeText(&b, n)
			if s := strings.TrimSpace(b.String()); s != "" {
				parts = append(parts, s)
			}
			return
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			find(ch)
		}
	}
	find(doc)
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// writeText: <br> = salto de línea; lo marcado para excluir (headers de Genius) se salta.
func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
		if attr(n, "data-exclude-from-selection") == "true" {
			return
		}
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		writeText(b, ch)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
