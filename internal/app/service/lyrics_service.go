package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

// límite de description de un embed de Discord
const lyricsChunkSize = 4000

type LyricsService struct {
	sessions *SessionService
	provider LyricsProvider
	pages    *Paginator
}

func NewLyricsService(sessions *SessionService, provider LyricsProvider, pages *Paginator) *LyricsService {
	return &LyricsService{sessions: sessions, provider: provider, pages: pages}
}

// Fetch busca por query o, si no hay, por el track que está sonando en el guild.
func (s *LyricsService) Fetch(ctx context.Context, cmd domain.Command) (domain.Reply, error) {
	title, artist, err := s.target(cmd)
	if err != nil {
		return domain.Reply{}, err
	}

	text, err := s.provider.GetLyrics(ctx, title, artist)
	if err != nil {
		return domain.Reply{}, &domain.UpstreamError{Code: domain.LyricsProviderFailed, Err: err}
	}
	chunks := SplitChunks(text, lyricsChunkSize)
	if len(chunks) == 0 {
		return domain.Reply{}, domain.ErrNoLyrics
	}

	heading := "Lyrics for " + title
	if artist != "" {
		heading += " by " + artist
	}
	handle, err := s.pages.Create(cmd.UserID, heading, chunks)
	if err != nil {
		return domain.Reply{}, err
	}
	view, err := s.pages.View(handle)
	if err != nil {
		return domain.Reply{}, err
	}
	return domain.Reply{Page: &view}, nil
}

func (s *LyricsService) target(cmd domain.Command) (title, artist string, err error) {
	if q, _ := cmd.Args.String("query"); strings.TrimSpace(q) != "" {
		return strings.TrimSpace(q), "", nil
	}
	p, st := s.sessions.Lookup(cmd.GuildID)
	if st == StateAbsent {
		return "", "", domain.ErrNoTrack
	}
	t, ok := p.Current()
	if !ok {
		return "", "", domain.ErrNoTrack
	}
	return t.Title, t.Author, nil
}

// Navigate atiende un click de Previous/Next. El índice guardado manda,
// la página del token es solo informativa.
func (s *LyricsService) Navigate(token, requester string) (domain.Reply, error) {
	nav, err := DecodeToken(token)
	if err != nil {
		return domain.Reply{}, err
	}
	view, err := s.pages.Advance(nav.Handle, requester, nav.Dir)
	if err != nil {
		return domain.Reply{}, err
	}
	return domain.Reply{Page: &view}, nil
}

// SplitChunks corta el texto en pedazos de hasta limit runas, por líneas.
// Una línea más larga que limit se parte en seco.
func SplitChunks(text string, limit int) []string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" || limit <= 0 {
		return nil
	}

	var (
		chunks []string
		cur    strings.Builder
		n      int
	)
	flush := func() {
		if n > 0 {
			chunks = append(chunks, cur.String())
		}
		cur.Reset()
		n = 0
	}

	for _, line := range strings.Split(text, "\n") {
		ln := utf8.RuneCountInString(line)
		sep := 0
		if n > 0 {
			sep = 1
		}
		if n+sep+ln <= limit {
			if sep == 1 {
				cur.WriteByte('\n')
			}
			cur.WriteString(line)
			n += sep + ln
			continue
		}

		flush()
		for ln > limit {
			r := []rune(line)
			chunks = append(chunks, string(r[:limit]))
			line = string(r[limit:])
			ln -= limit
		}
		cur.WriteString(line)
		n = ln
	}
	flush()
	return chunks
}
