package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

const (
	GenericFailure = "⚠️ An error occurred while executing the command."
	NavFailure     = "⚠️ This interaction is not for you or has expired."
)

func subjectOf(err error) string {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return nf.Subject
	}
	var re *domain.RouterError
	if errors.As(err, &re) {
		return re.Subject
	}
	return ""
}

// replyForCode mapea cada código de dominio a su texto. ok=false => error inesperado.
func replyForCode(err error) (domain.Reply, bool) {
	code, ok := domain.CodeOf(err)
	if !ok {
		return domain.Reply{}, false
	}
	subject := subjectOf(err)

	switch code {
	case domain.NotInVoice:
		return domain.Ephemeral("⚠️ You need to be in a voice channel to use this command!"), true
	case domain.MissingPermission:
		return domain.Ephemeral("⚠️ I need permissions to join and speak in your voice channel!"), true
	case domain.NoSession:
		return domain.Ephemeral("ℹ️ No music is currently playing!"), true
	case domain.AlreadyPaused:
		return domain.Ephemeral("ℹ️ The player is already paused!"), true
	case domain.NotPaused:
		return domain.Ephemeral("ℹ️ The player is not paused!"), true
	case domain.EmptyQueue:
		return domain.Ephemeral("ℹ️ No music is playing or no songs in queue to skip!"), true
	case domain.PlaylistAbsent:
		return domain.Text(fmt.Sprintf("❌ Playlist **%s** does not exist!", subject)), true
	case domain.PlaylistExists:
		return domain.Text(fmt.Sprintf("❌ Playlist **%s** already exists!", subject)), true
	case domain.PlaylistEmpty:
		return domain.Text(fmt.Sprintf("ℹ️ Playlist **%s** is empty.", subject)), true
	case domain.TrackIndexOutOfRange:
		return domain.Ephemeral(fmt.Sprintf("❌ Invalid song index for playlist **%s**.", subject)), true
	case domain.NoSearchResults:
		return domain.Text("❌ No results found for your query."), true
	case domain.NoLyrics:
		return domain.Ephemeral("ℹ️ No lyrics found for this song."), true
	case domain.NoTrack:
		return domain.Ephemeral("ℹ️ No song is currently playing, and no query was provided."), true
	case domain.AudioResolveFailed:
		log.Warn().Err(err).Msg("audio node failure")
		return domain.Ephemeral("⚠️ The music node could not handle the request. Please try again later."), true
	case domain.LyricsProviderFailed:
		log.Warn().Err(err).Msg("lyrics provider failure")
		return domain.Ephemeral("⚠️ Error fetching lyrics. Please try again later."), true
	case domain.Forbidden, domain.Expired:
		return domain.Ephemeral(NavFailure), true
	case domain.InvalidFilter:
		return domain.Ephemeral("⚠️ Invalid filter. Available filters: " + filterList()), true
	case domain.UnknownCommand:
		return domain.Ephemeral("⚠️ Unknown command."), true
	case domain.InvalidArgs:
		return domain.Ephemeral(fmt.Sprintf("⚠️ Missing or invalid option `%s`.", subject)), true
	}
	return domain.Reply{}, false
}
