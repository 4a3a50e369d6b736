package lavalink

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgolink/v3/disgolink"
	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/disgoorg/snowflake/v2"
	"github.com/rs/zerolog/log"
)

// remotePlayer es lo que usamos del player de disgolink.
type remotePlayer interface {
	Update(ctx context.Context, opts ...lavalink.PlayerUpdateOpt) error
	Destroy(ctx context.Context) error
}

type nodeState struct {
	connected bool
	sessionID string
	stats     lavalink.Stats
}

// node: la parte de disgolink que necesita el cliente (un solo nodo).
type node interface {
	LoadTracks(ctx context.Context, identifier string) (*lavalink.LoadResult, error)
	Player(guildID snowflake.ID) remotePlayer
	OnVoiceStateUpdate(ctx context.Context, guildID snowflake.ID, channelID *snowflake.ID, sessionID string)
	OnVoiceServerUpdate(ctx context.Context, guildID snowflake.ID, token, endpoint string)
	State() nodeState
}

type disgoNode struct {
	link disgolink.Client
	name string
}

func (n disgoNode) LoadTracks(ctx context.Context, identifier string) (*lavalink.LoadResult, error) {
	nd := n.link.Node(n.name)
	if nd == nil {
		return nil, ErrNoSession
	}
	return nd.LoadTracks(ctx, identifier)
}

func (n disgoNode) Player(guildID snowflake.ID) remotePlayer {
	return n.link.Player(guildID)
}

func (n disgoNode) OnVoiceStateUpdate(ctx context.Context, guildID snowflake.ID, channelID *snowflake.ID, sessionID string) {
	n.link.OnVoiceStateUpdate(ctx, guildID, channelID, sessionID)
}

func (n disgoNode) OnVoiceServerUpdate(ctx context.Context, guildID snowflake.ID, token, endpoint string) {
	n.link.OnVoiceServerUpdate(ctx, guildID, token, endpoint)
}

func (n disgoNode) State() nodeState {
	nd := n.link.Node(n.name)
	if nd == nil {
		return nodeState{}
	}
	return nodeState{
		connected: nd.Status() == disgolink.StatusConnected,
		sessionID: nd.SessionID(),
		stats:     nd.Stats(),
	}
}

// Run conecta el nodo y queda bloqueado hasta que se cancele ctx.
// Si el primer connect falla reintenta cada reconnectDelay; después disgolink
// se encarga de reconectar el websocket.
func (c *Client) Run(ctx context.Context, userID string) error {
	id, err := snowflake.Parse(userID)
	if err != nil {
		return fmt.Errorf("bot user id: %w", err)
	}

	link := disgolink.New(id,
		disgolink.WithHTTPClient(c.http),
		disgolink.WithListenerFunc(c.onTrackStart),
		disgolink.WithListenerFunc(c.onTrackEnd),
		disgolink.WithListenerFunc(c.onTrackException),
		disgolink.WithListenerFunc(c.onTrackStuck),
		disgolink.WithListenerFunc(c.onWebSocketClosed),
	)
	defer link.Close()

	for {
		_, err := link.AddNode(ctx, c.cfg)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return nil
		}
		log.Warn().Err(err).Str("node", c.cfg.Name).Dur("retry_in", c.reconnectDelay).Msg("lavalink connect failed")
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.reconnectDelay):
		}
	}

	n := disgoNode{link: link, name: c.cfg.Name}
	c.attach(n, userID)
	log.Info().Str("node", c.cfg.Name).Str("session", n.State().sessionID).Msg("lavalink ready")

	<-ctx.Done()
	c.detach()
	return nil
}

func (c *Client) attach(n node, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.node = n
	c.userID = userID
}

func (c *Client) detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.node = nil
}

func (c *Client) currentNode() node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.node
}
