package websocket

import (
	"encoding/json"
	"sync"

	"github.com/quizdash/quizdash-backend/internal/metrics"
	"github.com/rs/zerolog"
)

// Hub is the connection registry and dispatcher: per-game sets of clients
// with their attachments. Fanout is scoped by role and player identity and
// only ever reaches connections that completed the connect handshake, so an
// unauthenticated client can hold a socket open but receives nothing except
// its own handshake replies.
type Hub struct {
	mu    sync.RWMutex
	games map[string]map[*Client]struct{}
	log   zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		games: make(map[string]map[*Client]struct{}),
		log:   log.With().Str("component", "ws_hub").Logger(),
	}
}

// Register adds a freshly upgraded, not yet authenticated connection.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.games[c.GameID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.games[c.GameID] = clients
	}
	clients[c] = struct{}{}
	metrics.WSConnections.Inc()
}

// Unregister drops a connection and closes its send buffer. Idempotent.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.games[c.GameID]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.games, c.GameID)
	}
	close(c.Send)
	metrics.WSConnections.Dec()
}

// Authenticate marks the connect handshake as passed and attaches the role.
// For hosts the verified secret is retained so later host commands on this
// connection can be authorized without re-presenting it.
func (h *Hub) Authenticate(c *Client, role Role, playerID, hostSecret string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.role = role
	c.playerID = playerID
	c.hostSecret = hostSecret
	c.authenticated = true
}

// AttachPlayer binds a player identity to an authenticated player
// connection after a successful in-band join.
func (h *Hub) AttachPlayer(c *Client, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.playerID = playerID
}

// BroadcastAll sends a frame to every authenticated connection of a game,
// host included.
func (h *Hub) BroadcastAll(gameID string, msg ServerMessage) {
	h.fanout(gameID, msg, func(c *Client) bool {
		return c.authenticated
	})
}

// BroadcastHost sends a frame to the game's host connections only.
func (h *Hub) BroadcastHost(gameID string, msg ServerMessage) {
	h.fanout(gameID, msg, func(c *Client) bool {
		return c.authenticated && c.role == RoleHost
	})
}

// BroadcastPlayers sends a frame to every joined player connection.
func (h *Hub) BroadcastPlayers(gameID string, msg ServerMessage) {
	h.fanout(gameID, msg, func(c *Client) bool {
		return c.authenticated && c.role == RolePlayer && c.playerID != ""
	})
}

// SendToPlayer sends a frame to the connections attached to one player.
// Usually a single connection; duplicates (multi-tab) each get a copy.
func (h *Hub) SendToPlayer(gameID, playerID string, msg ServerMessage) {
	h.fanout(gameID, msg, func(c *Client) bool {
		return c.authenticated && c.role == RolePlayer && c.playerID == playerID
	})
}

func (h *Hub) fanout(gameID string, msg ServerMessage, match func(*Client) bool) {
	raw, err := json.Marshal(msg)
	if err != nil {
		h.log.Error().Err(err).Str("event", string(msg.Event)).Msg("Failed to encode frame")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.games[gameID] {
		if !match(c) {
			continue
		}
		select {
		case c.Send <- raw:
		default:
			h.log.Warn().
				Str("game_id", gameID).
				Str("event", string(msg.Event)).
				Msg("Send buffer full, dropping frame")
		}
	}
}

// ConnectionCount returns the number of open connections for a game.
func (h *Hub) ConnectionCount(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}
