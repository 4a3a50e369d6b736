package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

type HandlerFunc func(ctx context.Context, cmd domain.Command) (domain.Reply, error)

// Dispatcher: gate de voz + tabla nombre -> handler + errores -> respuesta.
type Dispatcher struct {
	perms    VoicePermissions
	handlers map[domain.CommandName]HandlerFunc
	lyrics   *LyricsService
}

func NewDispatcher(perms VoicePermissions, queue *QueueService, playlists *PlaylistService, filters *FilterService, lyrics *LyricsService) *Dispatcher {
	return &Dispatcher{
		perms:  perms,
		lyrics: lyrics,
		handlers: map[domain.CommandName]HandlerFunc{
			domain.CmdPlay:           queue.Play,
			domain.CmdPause:          queue.Pause,
			domain.CmdSkip:           queue.Skip,
			domain.CmdStop:           queue.Stop,
			domain.CmdResume:         queue.Resume,
			domain.CmdQueue:          queue.Status,
			domain.CmdHelp:           queue.Help,
			domain.CmdPlaylistCreate: playlists.Create,
			domain.CmdPlaylistDelete: playlists.Delete,
			domain.CmdPlaylistAdd:    playlists.Add,
			domain.CmdPlaylistRemove: playlists.Remove,
			domain.CmdPlaylistPlay:   playlists.PlayStored,
			domain.CmdFilter:         filters.Apply,
			domain.CmdLyrics:         lyrics.Fetch,
		},
	}
}

// Gate valida lo que se puede validar sin I/O lento: comando conocido,
// usuario en voz y permisos del bot en ese canal.
func (d *Dispatcher) Gate(cmd domain.Command) error {
	if !cmd.Name.Known() {
		return &domain.RouterError{Code: domain.UnknownCommand, Subject: string(cmd.Name)}
	}
	if !cmd.Name.NeedsVoice() {
		return nil
	}
	if cmd.VoiceChannelID == "" {
		return domain.ErrNotInVoice
	}
	ok, err := d.perms.CanConnectAndSpeak(cmd.GuildID, cmd.VoiceChannelID)
	if err != nil {
		return fmt.Errorf("voice permissions: %w", err)
	}
	if !ok {
		return domain.ErrMissingPermission
	}
	return nil
}

// Dispatch corre gate + handler y devuelve el error crudo.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd domain.Command) (domain.Reply, error) {
	if err := d.Gate(cmd); err != nil {
		return domain.Reply{}, err
	}
	return d.handlers[cmd.Name](ctx, cmd)
}

// Handle siempre devuelve algo que mostrarle al usuario.
func (d *Dispatcher) Handle(ctx context.Context, cmd domain.Command) domain.Reply {
	reply, err := d.Dispatch(ctx, cmd)
	if err != nil {
		return d.ReplyFor(cmd, err)
	}
	return reply
}

// Navigate atiende los botones de letras; nunca toca el gate de voz.
func (d *Dispatcher) Navigate(token, requester string) (domain.Reply, error) {
	return d.lyrics.Navigate(token, requester)
}

// ReplyFor traduce un error a la respuesta visible. Lo que no es de dominio se loguea
// y el usuario ve el mensaje genérico.
func (d *Dispatcher) ReplyFor(cmd domain.Command, err error) domain.Reply {
	if r, ok := replyForCode(err); ok {
		return r
	}
	log.Error().Err(err).
		Str("command", string(cmd.Name)).
		Str("guild", cmd.GuildID).
		Str("user", cmd.UserID).
		Msg("command failed")
	return domain.Ephemeral(GenericFailure)
}
