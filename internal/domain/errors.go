package domain

import (
	"errors"
	"fmt"
)

type Code string

const (
	NotInVoice        Code = "not_in_voice"
	MissingPermission Code = "missing_permission"

	NoSession     Code = "no_session"
	AlreadyPaused Code = "already_paused"
	NotPaused     Code = "not_paused"
	EmptyQueue    Code = "empty_queue"

	PlaylistAbsent       Code = "playlist_absent"
	PlaylistExists       Code = "playlist_exists"
	TrackIndexOutOfRange Code = "track_index_out_of_range"
	NoSearchResults      Code = "no_search_results"
	NoLyrics             Code = "no_lyrics"
	PlaylistEmpty        Code = "playlist_empty"
	NoTrack              Code = "no_track" // ni canción sonando ni query

	AudioResolveFailed   Code = "audio_resolve_failed"
	LyricsProviderFailed Code = "lyrics_provider_failed"

	Forbidden Code = "forbidden"
	Expired   Code = "expired"

	UnknownCommand Code = "unknown_command"
	InvalidFilter  Code = "invalid_filter"
	InvalidArgs    Code = "invalid_args"
)

// Coded lo implementan todos los errores del dominio.
type Coded interface {
	error
	ErrorCode() Code
}

// CodeOf devuelve el código del primer error de dominio en la cadena.
func CodeOf(err error) (Code, bool) {
	var c Coded
	if errors.As(err, &c) {
		return c.ErrorCode(), true
	}
	return "", false
}

type PreconditionError struct{ Code Code }

func (e *PreconditionError) Error() string   { return "precondition failed: " + string(e.Code) }
func (e *PreconditionError) ErrorCode() Code { return e.Code }
func (e *PreconditionError) Is(target error) bool {
	t, ok := target.(*PreconditionError)
	return ok && t.Code == e.Code
}

type StateError struct{ Code Code }

func (e *StateError) Error() string   { return "invalid player state: " + string(e.Code) }
func (e *StateError) ErrorCode() Code { return e.Code }
func (e *StateError) Is(target error) bool {
	t, ok := target.(*StateError)
	return ok && t.Code == e.Code
}

type NotFoundError struct {
	Code    Code
	Subject string // nombre de playlist, query, etc.
}

func (e *NotFoundError) Error() string {
	if e.Subject == "" {
		return "not found: " + string(e.Code)
	}
	return fmt.Sprintf("not found: %s (%s)", e.Code, e.Subject)
}
func (e *NotFoundError) ErrorCode() Code { return e.Code }
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	return ok && t.Code == e.Code
}

type UpstreamError struct {
	Code Code
	Err  error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return "upstream: " + string(e.Code)
	}
	return fmt.Sprintf("upstream: %s: %v", e.Code, e.Err)
}
func (e *UpstreamError) ErrorCode() Code { return e.Code }
func (e *UpstreamError) Unwrap() error   { return e.Err }
func (e *UpstreamError) Is(target error) bool {
	t, ok := target.(*UpstreamError)
	return ok && t.Code == e.Code
}

type PaginationError struct{ Code Code }

func (e *PaginationError) Error() string   { return "pagination: " + string(e.Code) }
func (e *PaginationError) ErrorCode() Code { return e.Code }
func (e *PaginationError) Is(target error) bool {
	t, ok := target.(*PaginationError)
	return ok && t.Code == e.Code
}

type RouterError struct {
	Code    Code
	Subject string
}

func (e *RouterError) Error() string   { return fmt.Sprintf("router: %s %q", e.Code, e.Subject) }
func (e *RouterError) ErrorCode() Code { return e.Code }
func (e *RouterError) Is(target error) bool {
	t, ok := target.(*RouterError)
	return ok && t.Code == e.Code
}

// Sentinels para errors.Is (comparan por tipo + código).
var (
	ErrNotInVoice        = &PreconditionError{Code: NotInVoice}
	ErrMissingPermission = &PreconditionError{Code: MissingPermission}

	ErrNoSession     = &StateError{Code: NoSession}
	ErrAlreadyPaused = &StateError{Code: AlreadyPaused}
	ErrNotPaused     = &StateError{Code: NotPaused}
	ErrEmptyQueue    = &StateError{Code: EmptyQueue}

	ErrPlaylistAbsent       = &NotFoundError{Code: PlaylistAbsent}
	ErrPlaylistExists       = &NotFoundError{Code: PlaylistExists}
	ErrTrackIndexOutOfRange = &NotFoundError{Code: TrackIndexOutOfRange}
	ErrNoSearchResults      = &NotFoundError{Code: NoSearchResults}
	ErrNoLyrics             = &NotFoundError{Code: NoLyrics}
	ErrPlaylistEmpty        = &NotFoundError{Code: PlaylistEmpty}
	ErrNoTrack              = &NotFoundError{Code: NoTrack}

	ErrAudioResolveFailed   = &UpstreamError{Code: AudioResolveFailed}
	ErrLyricsProviderFailed = &UpstreamError{Code: LyricsProviderFailed}

	ErrForbidden = &PaginationError{Code: Forbidden}
	ErrExpired   = &PaginationError{Code: Expired}

	ErrUnknownCommand = &RouterError{Code: UnknownCommand}
	ErrInvalidFilter  = &RouterError{Code: InvalidFilter}
	ErrInvalidArgs    = &RouterError{Code: InvalidArgs}
)

// ErrSessionClosed: el player ya fue destruido (cola vacía, desconexión, /stop).
// No llega al usuario tal cual, el servicio crea otra sesión o lo envuelve.
var ErrSessionClosed = errors.New("session closed")
