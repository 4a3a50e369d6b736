package service

import (
	"context"
	"sync"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

type fakeSession struct {
	mu        sync.Mutex
	guild     string
	queue     []domain.Track
	current   *domain.Track
	paused    bool
	filters   domain.Filters
	plays     int
	destroyed bool
	onDestroy func()
}

func (s *fakeSession) GuildID() string { return s.guild }

func (s *fakeSession) Play(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return domain.ErrSessionClosed
	}
	s.next()
	return nil
}

func (s *fakeSession) next() {
	if len(s.queue) == 0 {
		s.current = nil
		return
	}
	t := s.queue[0]
	s.queue = s.queue[1:]
	s.current = &t
	s.paused = false
	s.plays++
}

func (s *fakeSession) Pause(_ context.Context, pause bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = pause
	return nil
}

// como en el nodo: stop => TrackEnd(stopped) => siguiente
func (s *fakeSession) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next()
	return nil
}

func (s *fakeSession) Destroy(context.Context) error {
	s.mu.Lock()
	s.destroyed = true
	s.queue = nil
	s.current = nil
	s.mu.Unlock()
	if s.onDestroy != nil {
		s.onDestroy()
	}
	return nil
}

func (s *fakeSession) Enqueue(tracks ...domain.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return domain.ErrSessionClosed
	}
	s.queue = append(s.queue, tracks...)
	return nil
}

// closeQuietly marca la sesión como destruida sin sacarla del registro (carrera con el nodo).
func (s *fakeSession) closeQuietly() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
}

func (s *fakeSession) Queue() []domain.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Track(nil), s.queue...)
}

func (s *fakeSession) QueueSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *fakeSession) Current() (domain.Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.Track{}, false
	}
	return *s.current, true
}

func (s *fakeSession) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && !s.paused
}

func (s *fakeSession) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *fakeSession) Filters() domain.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *fakeSession) SetFilters(_ context.Context, f domain.Filters) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	return nil
}

type fakeAudio struct {
	mu         sync.Mutex
	players    map[string]*fakeSession
	results    map[string]domain.LoadResult
	resolveErr error
	createErr  error
	created    int
	resolved   []string
}

func newFakeAudio() *fakeAudio {
	return &fakeAudio{
		players: map[string]*fakeSession{},
		results: map[string]domain.LoadResult{},
	}
}

func (a *fakeAudio) CreateConnection(_ context.Context, guildID, _, _ string) (domain.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.createErr != nil {
		return nil, a.createErr
	}
	a.created++
	s := &fakeSession{guild: guildID}
	s.onDestroy = func() {
		a.mu.Lock()
		delete(a.players, guildID)
		a.mu.Unlock()
	}
	a.players[guildID] = s
	return s, nil
}

func (a *fakeAudio) Player(guildID string) (domain.Session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.players[guildID]
	if !ok {
		return nil, false
	}
	return s, true
}

func (a *fakeAudio) session(guildID string) *fakeSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.players[guildID]
}

func (a *fakeAudio) Resolve(_ context.Context, query, _ string) (domain.LoadResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resolved = append(a.resolved, query)
	if a.resolveErr != nil {
		return domain.LoadResult{}, a.resolveErr
	}
	if r, ok := a.results[query]; ok {
		return r, nil
	}
	return domain.EmptyResult(), nil
}

type fakePerms struct {
	ok  bool
	err error
}

func (p fakePerms) CanConnectAndSpeak(string, string) (bool, error) { return p.ok, p.err }

type fakeLyrics struct {
	text  string
	err   error
	calls [][2]string
}

func (l *fakeLyrics) GetLyrics(_ context.Context, title, artist string) (string, error) {
	l.calls = append(l.calls, [2]string{title, artist})
	return l.text, l.err
}

// memStore: store en memoria con la misma semántica que los de storage
type memStore struct {
	mu   sync.Mutex
	data map[string]map[string][]domain.TrackRef
}

func newMemStore() *memStore {
	return &memStore{data: map[string]map[string][]domain.TrackRef{}}
}

func (m *memStore) Create(_ context.Context, user, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[user] == nil {
		m.data[user] = map[string][]domain.TrackRef{}
	}
	if _, ok := m.data[user][name]; ok {
		return &domain.NotFoundError{Code: domain.PlaylistExists, Subject: name}
	}
	m.data[user][name] = []domain.TrackRef{}
	return nil
}

func (m *memStore) Delete(_ context.Context, user, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[user][name]; !ok {
		return &domain.NotFoundError{Code: domain.PlaylistAbsent, Subject: name}
	}
	delete(m.data[user], name)
	return nil
}

func (m *memStore) Append(_ context.Context, user, name string, t domain.TrackRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[user][name]; !ok {
		return &domain.NotFoundError{Code: domain.PlaylistAbsent, Subject: name}
	}
	m.data[user][name] = append(m.data[user][name], t)
	return nil
}

func (m *memStore) RemoveAt(_ context.Context, user, name string, i int) (domain.TrackRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	refs, ok := m.data[user][name]
	if !ok {
		return domain.TrackRef{}, &domain.NotFoundError{Code: domain.PlaylistAbsent, Subject: name}
	}
	if i < 0 || i >= len(refs) {
		return domain.TrackRef{}, &domain.NotFoundError{Code: domain.TrackIndexOutOfRange, Subject: name}
	}
	out := refs[i]
	m.data[user][name] = append(refs[:i:i], refs[i+1:]...)
	return out, nil
}

func (m *memStore) List(_ context.Context, user, name string) ([]domain.TrackRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	refs, ok := m.data[user][name]
	if !ok {
		return nil, &domain.NotFoundError{Code: domain.PlaylistAbsent, Subject: name}
	}
	return append([]domain.TrackRef(nil), refs...), nil
}

type harness struct {
	audio  *fakeAudio
	store  *memStore
	lyrics *fakeLyrics
	pages  *Paginator
	d      *Dispatcher
}

func newHarness(perms VoicePermissions) *harness {
	h := &harness{
		audio:  newFakeAudio(),
		store:  newMemStore(),
		lyrics: &fakeLyrics{},
		pages:  NewPaginator(DefaultPageTTL),
	}
	sessions := NewSessionService(h.audio)
	h.d = NewDispatcher(perms,
		NewQueueService(sessions, h.audio),
		NewPlaylistService(h.store, h.audio, sessions),
		NewFilterService(sessions),
		NewLyricsService(sessions, h.lyrics, h.pages),
	)
	return h
}

func track(title, author, uri string, ms int64) domain.Track {
	return domain.Track{Encoded: "enc-" + title, Title: title, Author: author, URI: uri, LengthMs: ms}
}

func cmd(name domain.CommandName, args domain.Args) domain.Command {
	return domain.Command{
		Name:           name,
		Args:           args,
		UserID:         "u1",
		VoiceChannelID: "vc1",
		GuildID:        "g1",
		ChannelID:      "tc1",
	}
}
