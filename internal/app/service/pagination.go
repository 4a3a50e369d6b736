package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

const (
	DefaultPageTTL = 5 * time.Minute
	TokenPrefix    = "lyrics:"
)

type Direction int

const (
	Prev Direction = iota
	Next
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

type pageEntry struct {
	owner  string
	title  string
	chunks []string
	page   int
	timer  *time.Timer
}

// Paginator guarda el estado de cada mensaje paginado (letras) hasta que vence.
// Cada entrada vive ttl desde que se creó; navegar no renueva el plazo.
type Paginator struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*pageEntry
	newID   func() string
}

func NewPaginator(ttl time.Duration) *Paginator {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &Paginator{
		ttl:     ttl,
		entries: make(map[string]*pageEntry),
		newID:   uuid.NewString,
	}
}

// Create registra los chunks y agenda la expiración. Devuelve el handle.
func (p *Paginator) Create(owner, title string, chunks []string) (string, error) {
	if len(chunks) == 0 {
		return "", errors.New("paginator: no pages")
	}
	handle := p.newID()
	e := &pageEntry{owner: owner, title: title, chunks: chunks}

	p.mu.Lock()
	p.entries[handle] = e
	e.timer = time.AfterFunc(p.ttl, func() { p.Evict(handle) })
	p.mu.Unlock()
	return handle, nil
}

// View devuelve la página actual sin moverla.
func (p *Paginator) View(handle string) (domain.PageView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[handle]
	if !ok {
		return domain.PageView{}, domain.ErrExpired
	}
	return e.view(handle), nil
}

// Advance mueve el índice guardado; clampa en los bordes.
func (p *Paginator) Advance(handle, requester string, dir Direction) (domain.PageView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[handle]
	if !ok {
		return domain.PageView{}, domain.ErrExpired
	}
	if e.owner != requester {
		return domain.PageView{}, domain.ErrForbidden
	}
	switch dir {
	case Prev:
		if e.page > 0 {
			e.page--
		}
	case Next:
		if e.page < len(e.chunks)-1 {
			e.page++
		}
	}
	return e.view(handle), nil
}

// Evict borra la entrada; false si ya no estaba.
func (p *Paginator) Evict(handle string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[handle]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(p.entries, handle)
	return true
}

func (p *Paginator) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Close frena todos los timers y vacía el cache (shutdown).
func (p *Paginator) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for h, e := range p.entries {
		e.timer.Stop()
		delete(p.entries, h)
	}
}

func (e *pageEntry) view(handle string) domain.PageView {
	return domain.PageView{
		Handle:      handle,
		OwnerUserID: e.owner,
		Title:       e.title,
		Text:        e.chunks[e.page],
		Index:       e.page,
		Total:       len(e.chunks),
	}
}

// NavToken es lo que viaja en el custom_id del botón:
// lyrics:<prev|next>:<handle>:<owner>:<page>
type NavToken struct {
	Dir    Direction
	Handle string
	Owner  string
	Page   int
}

func EncodeToken(dir Direction, handle, owner string, page int) string {
	return fmt.Sprintf("%s%s:%s:%s:%d", TokenPrefix, dir, handle, owner, page)
}

// DecodeToken: cualquier token mal formado se trata como vencido.
func DecodeToken(s string) (NavToken, error) {
	rest, ok := strings.CutPrefix(s, TokenPrefix)
	if !ok {
		return NavToken{}, domain.ErrExpired
	}
	parts := strings.Split(rest, ":")
	if len(parts) != 4 || parts[1] == "" {
		return NavToken{}, domain.ErrExpired
	}
	var dir Direction
	switch parts[0] {
	case "prev":
		dir = Prev
	case "next":
		dir = Next
	default:
		return NavToken{}, domain.ErrExpired
	}
	page, err := strconv.Atoi(parts[3])
	if err != nil {
		return NavToken{}, domain.ErrExpired
	}
	return NavToken{Dir: dir, Handle: parts[1], Owner: parts[2], Page: page}, nil
}
