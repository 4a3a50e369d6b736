package domain

type CommandName string

const (
	CmdPlay           CommandName = "play"
	CmdPause          CommandName = "pause"
	CmdSkip           CommandName = "skip"
	CmdStop           CommandName = "stop"
	CmdResume         CommandName = "resume"
	CmdQueue          CommandName = "queue"
	CmdHelp           CommandName = "help"
	CmdPlaylistCreate CommandName = "playlist_create"
	CmdPlaylistDelete CommandName = "playlist_delete"
	CmdPlaylistAdd    CommandName = "playlist_add"
	CmdPlaylistRemove CommandName = "playlist_remove"
	CmdPlaylistPlay   CommandName = "playlist_play"
	CmdFilter         CommandName = "filter"
	CmdLyrics         CommandName = "lyrics"
)

// AllCommands en el orden en que se registran y se muestran en /help.
var AllCommands = []CommandName{
	CmdPlay, CmdPause, CmdSkip, CmdStop, CmdResume, CmdQueue, CmdHelp,
	CmdPlaylistCreate, CmdPlaylistDelete, CmdPlaylistAdd, CmdPlaylistRemove, CmdPlaylistPlay,
	CmdFilter, CmdLyrics,
}

// comandos que no necesitan voz (ni permisos de voz del bot)
var voiceFree = map[CommandName]struct{}{
	CmdQueue:          {},
	CmdHelp:           {},
	CmdPlaylistCreate: {},
	CmdPlaylistDelete: {},
	CmdPlaylistAdd:    {},
	CmdPlaylistRemove: {},
	CmdLyrics:         {},
}

// comandos que responden al toque, sin defer
var immediate = map[CommandName]struct{}{
	CmdPause:  {},
	CmdSkip:   {},
	CmdStop:   {},
	CmdResume: {},
}

func (n CommandName) Known() bool {
	for _, c := range AllCommands {
		if c == n {
			return true
		}
	}
	return false
}

func (n CommandName) NeedsVoice() bool {
	_, free := voiceFree[n]
	return !free
}

// Deferred: el comando puede tardar (I/O) y primero se ackea con un defer.
func (n CommandName) Deferred() bool {
	_, ok := immediate[n]
	return !ok
}

// Args: opciones del slash command por nombre. Strings como string, enteros como int64.
type Args map[string]any

func (a Args) String(name string) (string, bool) {
	v, ok := a[name].(string)
	return v, ok
}

func (a Args) Int(name string) (int64, bool) {
	switch v := a[name].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}

// Command es un evento entrante ya traducido desde la plataforma de chat.
type Command struct {
	Name           CommandName
	Args           Args
	UserID         string
	VoiceChannelID string // vacío si el usuario no está en voz
	GuildID        string
	ChannelID      string
}
