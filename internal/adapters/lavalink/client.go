package lavalink

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/disgoorg/disgolink/v3/disgolink"
	"github.com/disgoorg/snowflake/v2"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

// Notifier recibe los avisos que el player manda solo (sin comando de por medio).
type Notifier interface {
	NowPlaying(channelID string, t domain.Track)
	QueueEnded(channelID string)
}

// VoiceGateway une/saca al bot del canal de voz vía Discord (op 4).
type VoiceGateway interface {
	JoinVoice(guildID, channelID string) error
	LeaveVoice(guildID string) error
}

// Client envuelve disgolink: la cola por guild vive acá, el nodo solo conoce el track actual.
type Client struct {
	cfg          disgolink.NodeConfig
	searchPrefix string

	http           *http.Client
	notifier       Notifier
	voice          VoiceGateway
	reconnectDelay time.Duration
	voiceTimeout   time.Duration

	mu      sync.RWMutex
	userID  string
	node    node
	players map[string]*Player
}

func New(host string, port int, password string, opts ...Option) *Client {
	c := &Client{
		cfg: disgolink.NodeConfig{
			Name:     "Main Node",
			Address:  net.JoinHostPort(host, strconv.Itoa(port)),
			Password: password,
		},
		searchPrefix:   "ytmsearch",
		http:           &http.Client{Timeout: 10 * time.Second},
		reconnectDelay: 5 * time.Second,
		voiceTimeout:   10 * time.Second,
		players:        make(map[string]*Player),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Name() string { return c.cfg.Name }

type NodeStats struct {
	Players        int
	PlayingPlayers int
	Uptime         time.Duration
}

type NodeStatus struct {
	Name      string
	Connected bool
	SessionID string
	Stats     NodeStats
	// players que este proceso tiene abiertos (uno por guild)
	ActiveSessions int
}

func (c *Client) Status() NodeStatus {
	c.mu.RLock()
	n := c.node
	active := len(c.players)
	c.mu.RUnlock()

	st := NodeStatus{Name: c.cfg.Name, ActiveSessions: active}
	if n == nil {
		return st
	}
	ns := n.State()
	st.Connected = ns.connected
	st.SessionID = ns.sessionID
	st.Stats = NodeStats{
		Players:        ns.stats.Players,
		PlayingPlayers: ns.stats.PlayingPlayers,
		Uptime:         time.Duration(ns.stats.Uptime) * time.Millisecond,
	}
	return st
}

func (c *Client) SessionID() string {
	if n := c.currentNode(); n != nil {
		return n.State().sessionID
	}
	return ""
}

func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// Resolve pasa la query a loadtracks. Lo que no es URL va con el prefijo de búsqueda.
func (c *Client) Resolve(ctx context.Context, query, requester string) (domain.LoadResult, error) {
	n := c.currentNode()
	if n == nil {
		return domain.LoadResult{}, ErrNoSession
	}
	res, err := n.LoadTracks(ctx, c.identifier(query))
	if err != nil {
		return domain.LoadResult{}, fmt.Errorf("load tracks: %w", err)
	}
	return decodeLoadResult(res, requester)
}

func (c *Client) identifier(query string) string {
	if c.searchPrefix == "" || isURL(query) {
		return query
	}
	return c.searchPrefix + ":" + query
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// CreateConnection crea (o reusa) el player del guild, mete al bot en el canal de voz
// y espera a que Lavalink tenga los datos de voz. Un player destruido no se reusa.
func (c *Client) CreateConnection(ctx context.Context, guildID, voiceChannelID, textChannelID string) (domain.Session, error) {
	gid, err := snowflake.Parse(guildID)
	if err != nil {
		return nil, fmt.Errorf("guild id: %w", err)
	}

	c.mu.Lock()
	if p, ok := c.players[guildID]; ok && !p.closed() {
		c.mu.Unlock()
		return p, nil
	}
	if c.node == nil || !c.node.State().connected {
		c.mu.Unlock()
		return nil, ErrNoSession
	}
	p := newPlayer(c, guildID, voiceChannelID, textChannelID, c.node.Player(gid))
	c.players[guildID] = p
	c.mu.Unlock()

	if c.voice != nil {
		if err := c.voice.JoinVoice(guildID, voiceChannelID); err != nil {
			p.release()
			return nil, fmt.Errorf("join voice: %w", err)
		}
	}

	wctx, cancel := context.WithTimeout(ctx, c.voiceTimeout)
	defer cancel()
	select {
	case <-p.voiceReady:
		log.Info().Str("guild", guildID).Str("voice_channel", voiceChannelID).Msg("player connected")
		return p, nil
	case <-wctx.Done():
		dctx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := p.Destroy(dctx); err != nil {
			log.Debug().Err(err).Str("guild", guildID).Msg("destroy after voice timeout")
		}
		return nil, ErrVoiceTimeout
	}
}

func (c *Client) Player(guildID string) (domain.Session, bool) {
	p := c.player(guildID)
	if p == nil || p.closed() {
		return nil, false
	}
	return p, true
}

func (c *Client) player(guildID string) *Player {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.players[guildID]
}

// forget saca al player del registro solo si sigue siendo el del guild.
func (c *Client) forget(p *Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.players[p.guildID] == p {
		delete(c.players, p.guildID)
	}
}

// OnVoiceStateUpdate: voice state del propio bot. channelID vacío = lo sacaron del canal.
func (c *Client) OnVoiceStateUpdate(guildID, userID, channelID, sessionID string) {
	if userID == "" || userID != c.UserID() {
		return
	}
	n := c.currentNode()
	if n == nil {
		return
	}
	gid, err := snowflake.Parse(guildID)
	if err != nil {
		return
	}
	var ch *snowflake.ID
	if channelID != "" {
		id, err := snowflake.Parse(channelID)
		if err != nil {
			return
		}
		ch = &id
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	n.OnVoiceStateUpdate(ctx, gid, ch, sessionID)

	p := c.player(guildID)
	if p == nil {
		return
	}
	if ch == nil {
		// disgolink ya borra el player remoto; acá solo queda la cola
		p.release()
		log.Info().Str("guild", guildID).Msg("bot left voice, session closed")
		return
	}
	p.setVoiceChannel(channelID)
}

// OnVoiceServerUpdate: token + endpoint del servidor de voz del guild.
func (c *Client) OnVoiceServerUpdate(guildID, token, endpoint string) {
	n := c.currentNode()
	if n == nil || endpoint == "" {
		return
	}
	gid, err := snowflake.Parse(guildID)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	n.OnVoiceServerUpdate(ctx, gid, token, endpoint)

	if p := c.player(guildID); p != nil {
		p.markVoiceReady()
	}
}
