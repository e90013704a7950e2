package websocket

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 4096
	// Outbound frame buffer per connection.
	sendBufferSize = 64
)

// Client is one WebSocket connection bound to a game, plus its attachment:
// role, player identity, and whether the connect handshake succeeded.
// Attachment fields are written only from the connection's reader goroutine
// (through hub methods, so fanout observes them under the hub lock).
type Client struct {
	GameID string
	Conn   *websocket.Conn
	Send   chan []byte

	hub *Hub
	log zerolog.Logger

	role          Role
	playerID      string
	hostSecret    string
	authenticated bool
}

// NewClient wraps an upgraded connection. The caller must Register it on the
// hub and run WritePump in its own goroutine.
func NewClient(hub *Hub, conn *websocket.Conn, gameID string, log zerolog.Logger) *Client {
	return &Client{
		GameID: gameID,
		Conn:   conn,
		Send:   make(chan []byte, sendBufferSize),
		hub:    hub,
		log:    log.With().Str("game_id", gameID).Logger(),
	}
}

// Role returns the attached role. Valid only after a successful handshake.
func (c *Client) Role() Role { return c.role }

// PlayerID returns the attached player identity, or "" for hosts and for
// player connections that have not joined yet.
func (c *Client) PlayerID() string { return c.playerID }

// HostSecret returns the secret presented at the handshake. Host role only;
// kept server-side and never echoed into any outbound frame.
func (c *Client) HostSecret() string { return c.hostSecret }

// Authenticated reports whether the connect handshake succeeded.
func (c *Client) Authenticated() bool { return c.authenticated }

// SendMessage queues a frame for this connection. Frames are dropped when
// the peer cannot drain its buffer; state is recoverable on reconnect.
func (c *Client) SendMessage(msg ServerMessage) {
	raw, err := json.Marshal(msg)
	if err != nil {
		c.log.Error().Err(err).Str("event", string(msg.Event)).Msg("Failed to encode frame")
		return
	}
	select {
	case c.Send <- raw:
	default:
		c.log.Warn().Str("event", string(msg.Event)).Msg("Send buffer full, dropping frame")
	}
}

// SendError queues an error event for this connection.
func (c *Client) SendError(code, message string) {
	c.SendMessage(NewError(code, message))
}

// PrepareRead applies the read limits and the pong handler. Call once before
// entering the read loop.
func (c *Client) PrepareRead() {
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
}

// WritePump drains the send buffer to the peer and keeps the connection
// alive with pings. One goroutine per connection; it owns all writes.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
