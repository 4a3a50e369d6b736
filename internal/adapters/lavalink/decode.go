package lavalink

import (
	"fmt"

	"github.com/disgoorg/disgolink/v3/lavalink"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

// decodeLoadResult pasa el resultado de loadtracks a la unión del dominio.
func decodeLoadResult(r *lavalink.LoadResult, requester string) (domain.LoadResult, error) {
	if r == nil {
		return domain.EmptyResult(), nil
	}
	switch d := r.Data.(type) {
	case lavalink.Empty:
		return domain.EmptyResult(), nil
	case lavalink.Track:
		return domain.TrackResult(toTrack(d, requester)), nil
	case lavalink.Search:
		return domain.SearchResult(toTracks(d, requester)), nil
	case lavalink.Playlist:
		info := domain.PlaylistInfo{Name: d.Info.Name, SelectedTrack: d.Info.SelectedTrack}
		return domain.PlaylistResult(info, toTracks(d.Tracks, requester)), nil
	case lavalink.Exception:
		return domain.ErrorResult(d.Message), nil
	}
	if r.LoadType == lavalink.LoadTypeEmpty {
		return domain.EmptyResult(), nil
	}
	return domain.LoadResult{}, fmt.Errorf("unknown loadType %q", r.LoadType)
}

func toTracks(ts []lavalink.Track, requester string) []domain.Track {
	out := make([]domain.Track, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTrack(t, requester))
	}
	return out
}

func toTrack(t lavalink.Track, requester string) domain.Track {
	uri := ""
	if t.Info.URI != nil {
		uri = *t.Info.URI
	}
	return domain.Track{
		Encoded:   t.Encoded,
		Title:     t.Info.Title,
		Author:    t.Info.Author,
		URI:       uri,
		LengthMs:  int64(t.Info.Length),
		IsStream:  t.Info.IsStream,
		Requester: requester,
	}
}
