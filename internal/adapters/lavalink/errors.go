package lavalink

import (
	"errors"
	"fmt"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

// ErrNoSession: el nodo todavía no está conectado (Run no terminó el handshake).
var ErrNoSession = errors.New("lavalink: no session yet")

// ErrVoiceTimeout: Discord no mandó voice state/server a tiempo.
var ErrVoiceTimeout = errors.New("lavalink: voice connection timed out")

// ErrDestroyed: el player ya se destruyó; hay que crear otro con CreateConnection.
var ErrDestroyed = fmt.Errorf("lavalink: player destroyed: %w", domain.ErrSessionClosed)
