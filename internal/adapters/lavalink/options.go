package lavalink

import (
	"net/http"
	"time"
)

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithSecure(secure bool) Option {
	return func(c *Client) { c.cfg.Secure = secure }
}

func WithName(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.cfg.Name = name
		}
	}
}

// WithSearchPrefix: fuente para queries que no son URL (ytmsearch, ytsearch, scsearch...).
func WithSearchPrefix(prefix string) Option {
	return func(c *Client) { c.searchPrefix = prefix }
}

func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

func WithVoiceGateway(g VoiceGateway) Option {
	return func(c *Client) { c.voice = g }
}

// WithReconnectDelay: espera entre intentos del primer connect al nodo.
func WithReconnectDelay(d time.Duration) Option {
	return func(c *Client) { c.reconnectDelay = d }
}

func WithVoiceTimeout(d time.Duration) Option {
	return func(c *Client) { c.voiceTimeout = d }
}
