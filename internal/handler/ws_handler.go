package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/quizdash/quizdash-backend/internal/game"
	"github.com/quizdash/quizdash-backend/internal/response"
	"github.com/quizdash/quizdash-backend/internal/service"
	ws "github.com/quizdash/quizdash-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles the game push channel: one connection per host or
// player, upgraded on the stream route and driven by the command loop.
type WSHandler struct {
	gameService *service.GameService
	hub         *ws.Hub
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(gameService *service.GameService, hub *ws.Hub, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		gameService: gameService,
		hub:         hub,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// GameStream godoc
// WS /ws/v1/games/:game_id/stream
// Upgrades to WebSocket. The first useful command must be "connect", which
// attaches a role; until then the connection receives nothing but its own
// handshake replies.
func (h *WSHandler) GameStream(c *gin.Context) {
	gameID := c.Param("game_id")

	// Reject unknown games before spending an upgrade on them.
	if _, err := h.gameService.GetState(c.Request.Context(), gameID); err != nil {
		failGame(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn, gameID, h.log)
	h.hub.Register(client)
	go client.WritePump()

	h.readLoop(c.Request.Context(), client)
}

func (h *WSHandler) readLoop(ctx context.Context, client *ws.Client) {
	defer h.hub.Unregister(client)
	client.PrepareRead()

	wsLog := h.log.With().Str("game_id", client.GameID).Logger()

	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		var msg ws.ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			client.SendError(string(response.ErrInvalidPayload), "malformed message")
			continue
		}

		if closeConn := h.dispatch(ctx, client, &msg); closeConn {
			return
		}
	}
}

// dispatch routes one inbound frame. Returning true tears the connection
// down (failed handshakes only); command errors are reported in-band and
// keep the connection open.
func (h *WSHandler) dispatch(ctx context.Context, client *ws.Client, msg *ws.ClientMessage) bool {
	switch msg.Command {
	case ws.CommandConnect:
		return h.handleConnect(ctx, client, msg)

	case ws.CommandPing:
		client.SendMessage(ws.ServerMessage{Event: ws.EventPong})
		return false
	}

	if !client.Authenticated() {
		client.SendError("NOT_CONNECTED", "send a connect command first")
		return false
	}

	switch msg.Command {
	case ws.CommandJoin:
		h.handleJoin(ctx, client, msg)
	case ws.CommandStart:
		h.requireHost(client, func() error {
			_, err := h.gameService.Start(ctx, client.GameID, client.HostSecret())
			return err
		})
	case ws.CommandAdvance:
		h.requireHost(client, func() error {
			_, err := h.gameService.Advance(ctx, client.GameID, client.HostSecret())
			return err
		})
	case ws.CommandAnswer:
		h.handleAnswer(ctx, client, msg)
	default:
		client.SendError(string(response.ErrInvalidPayload), "unknown command: "+string(msg.Command))
	}
	return false
}

// handleConnect attaches a role to the connection. A host presenting a bad
// secret and a player presenting an unknown id are both closed immediately;
// anything else leaves the connection open for another attempt.
func (h *WSHandler) handleConnect(ctx context.Context, client *ws.Client, msg *ws.ClientMessage) bool {
	if client.Authenticated() {
		client.SendError("ALREADY_CONNECTED", "connection already has a role")
		return false
	}

	switch msg.Role {
	case ws.RoleHost:
		g, err := h.gameService.GetStateForHost(ctx, client.GameID, msg.HostSecret)
		if err != nil {
			h.sendServiceError(client, err)
			return true
		}
		h.hub.Authenticate(client, ws.RoleHost, "", msg.HostSecret)
		client.SendMessage(ws.ServerMessage{Event: ws.EventConnected, Data: ws.ConnectedData{
			GameID: g.ID,
			Role:   ws.RoleHost,
			Phase:  string(g.Phase),
		}})
		client.SendMessage(h.gameService.SyncEvent(g, ""))
		return false

	case ws.RolePlayer:
		g, err := h.gameService.GetState(ctx, client.GameID)
		if err != nil {
			h.sendServiceError(client, err)
			return true
		}
		if msg.PlayerID != "" && g.PlayerByID(msg.PlayerID) == nil {
			client.SendError(string(game.CodeUnknownPlayer), "player is not registered in this game")
			return true
		}
		h.hub.Authenticate(client, ws.RolePlayer, msg.PlayerID, "")
		client.SendMessage(ws.ServerMessage{Event: ws.EventConnected, Data: ws.ConnectedData{
			GameID:   g.ID,
			Role:     ws.RolePlayer,
			PlayerID: msg.PlayerID,
			Phase:    string(g.Phase),
		}})
		client.SendMessage(h.gameService.SyncEvent(g, msg.PlayerID))
		return false

	default:
		client.SendError(string(response.ErrValidation), "role must be host or player")
		return false
	}
}

// handleJoin registers the player in-band and binds the issued identity to
// this connection.
func (h *WSHandler) handleJoin(ctx context.Context, client *ws.Client, msg *ws.ClientMessage) {
	if client.Role() != ws.RolePlayer {
		client.SendError(string(response.ErrValidation), "only player connections can join")
		return
	}

	player, g, err := h.gameService.Join(ctx, client.GameID, msg.Name, client.PlayerID())
	if err != nil {
		h.sendServiceError(client, err)
		return
	}

	h.hub.AttachPlayer(client, player.ID)
	client.SendMessage(ws.ServerMessage{Event: ws.EventConnected, Data: ws.ConnectedData{
		GameID:   g.ID,
		Role:     ws.RolePlayer,
		PlayerID: player.ID,
		Phase:    string(g.Phase),
	}})
}

func (h *WSHandler) handleAnswer(ctx context.Context, client *ws.Client, msg *ws.ClientMessage) {
	if client.Role() != ws.RolePlayer || client.PlayerID() == "" {
		client.SendError(string(game.CodeUnknownPlayer), "join the game before answering")
		return
	}
	if msg.AnswerIndex == nil {
		client.SendError(string(response.ErrValidation), "answerIndex is required")
		return
	}

	if _, err := h.gameService.SubmitAnswer(ctx, client.GameID, client.PlayerID(), *msg.AnswerIndex); err != nil {
		h.sendServiceError(client, err)
	}
	// The acceptance echo and host counter are fanned out by the service.
}

func (h *WSHandler) requireHost(client *ws.Client, fn func() error) {
	if client.Role() != ws.RoleHost {
		client.SendError(string(game.CodeInvalidHostSecret), "host role required")
		return
	}
	if err := fn(); err != nil {
		h.sendServiceError(client, err)
	}
}

func (h *WSHandler) sendServiceError(client *ws.Client, err error) {
	var gerr *game.Error
	if errors.As(err, &gerr) {
		client.SendError(string(gerr.Code), gerr.Message)
		return
	}
	h.log.Error().Err(err).Str("game_id", client.GameID).Msg("Command failed")
	client.SendError(string(response.ErrInternal), "internal error")
}
