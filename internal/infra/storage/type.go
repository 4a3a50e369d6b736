package storage

import (
	"errors"
	"sort"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

// Document es el archivo completo: userID -> nombre de playlist -> tracks en orden.
type Document map[string]map[string][]domain.TrackRef

// ErrCorrupt: el archivo existe pero no es un Document válido.
var ErrCorrupt = errors.New("playlist file is corrupt")

// PlaylistSummary es una fila del listado (CLI).
type PlaylistSummary struct {
	UserID string
	Name   string
	Tracks int
}

// Summaries aplana el documento ordenado por usuario y nombre.
func (d Document) Summaries(userID string) []PlaylistSummary {
	var out []PlaylistSummary
	for user, lists := range d {
		if userID != "" && user != userID {
			continue
		}
		for name, refs := range lists {
			out = append(out, PlaylistSummary{UserID: user, Name: name, Tracks: len(refs)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func absent(name string) error {
	return &domain.NotFoundError{Code: domain.PlaylistAbsent, Subject: name}
}

func exists(name string) error {
	return &domain.NotFoundError{Code: domain.PlaylistExists, Subject: name}
}

func outOfRange(name string) error {
	return &domain.NotFoundError{Code: domain.TrackIndexOutOfRange, Subject: name}
}
