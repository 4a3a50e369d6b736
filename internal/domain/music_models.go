package domain

import "context"

// TrackRef es lo que persistimos en las playlists del usuario (formato del archivo JSON).
type TrackRef struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URI    string `json:"uri"`
	Length int64  `json:"length"` // ms
}

// Track es una pista ya resuelta por el nodo de audio. Encoded es opaco para nosotros.
type Track struct {
	Encoded   string
	Title     string
	Author    string
	URI       string
	LengthMs  int64
	IsStream  bool
	Requester string
}

func (t Track) Ref() TrackRef {
	return TrackRef{Title: t.Title, Author: t.Author, URI: t.URI, Length: t.LengthMs}
}

type LoadType string

const (
	LoadEmpty    LoadType = "empty"
	LoadTrack    LoadType = "track"
	LoadSearch   LoadType = "search"
	LoadPlaylist LoadType = "playlist"
	LoadError    LoadType = "error"
)

type PlaylistInfo struct {
	Name          string
	SelectedTrack int
}

// LoadResult: union etiquetada. Solo Type decide qué campos valen:
// Track/Search -> Tracks, Playlist -> Tracks + Playlist, Error -> Message.
type LoadResult struct {
	Type     LoadType
	Tracks   []Track
	Playlist PlaylistInfo
	Message  string
}

func EmptyResult() LoadResult { return LoadResult{Type: LoadEmpty} }

func TrackResult(t Track) LoadResult { return LoadResult{Type: LoadTrack, Tracks: []Track{t}} }

func SearchResult(ts []Track) LoadResult {
	if len(ts) == 0 {
		return EmptyResult()
	}
	return LoadResult{Type: LoadSearch, Tracks: ts}
}

func PlaylistResult(info PlaylistInfo, ts []Track) LoadResult {
	return LoadResult{Type: LoadPlaylist, Tracks: ts, Playlist: info}
}

func ErrorResult(msg string) LoadResult { return LoadResult{Type: LoadError, Message: msg} }

// First devuelve la primera pista (track o primer match de búsqueda).
func (r LoadResult) First() (Track, bool) {
	if len(r.Tracks) == 0 {
		return Track{}, false
	}
	return r.Tracks[0], true
}

func (r LoadResult) IsEmpty() bool {
	return r.Type == LoadEmpty || (r.Type != LoadError && len(r.Tracks) == 0)
}

// Session es el handle del player de un guild. Lo crea y lo destruye el cliente de audio
// (internal/adapters/lavalink); acá solo se consulta y se le piden acciones.
type Session interface {
	GuildID() string
	Play(ctx context.Context) error
	Pause(ctx context.Context, pause bool) error
	Stop(ctx context.Context) error
	Destroy(ctx context.Context) error
	Enqueue(tracks ...Track) error
	Queue() []Track
	QueueSize() int
	Current() (Track, bool)
	Playing() bool
	Paused() bool
	Filters() Filters
	SetFilters(ctx context.Context, f Filters) error
}
