package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/quizdash/quizdash-backend/internal/response"
	"github.com/quizdash/quizdash-backend/internal/service"
	"github.com/quizdash/quizdash-backend/internal/validator"
)

// HeaderHostSecret carries the host secret on host control requests.
const HeaderHostSecret = "X-Host-Secret"

// GameHandler handles the game session REST surface: creation, state reads,
// join, answers, and host control.
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// Create godoc
// POST /api/v1/games
// Creates a lobby for a quiz and returns the state together with the host
// secret. This is the only payload that ever carries the secret.
func (h *GameHandler) Create(c *gin.Context) {
	var req model.CreateGameRequest
	_ = c.ShouldBindJSON(&req) // Body is optional; empty means default quiz.

	g, err := h.gameService.CreateGame(c.Request.Context(), req.QuizID)
	if err != nil {
		failGame(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"game":       g.PublicView(),
		"hostSecret": g.HostSecret,
	})
}

// Get godoc
// GET /api/v1/games/:game_id
// Returns the public view of a game (host secret stripped).
func (h *GameHandler) Get(c *gin.Context) {
	g, err := h.gameService.GetState(c.Request.Context(), c.Param("game_id"))
	if err != nil {
		failGame(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"game": g})
}

// GetFull godoc
// GET /api/v1/games/:game_id/full
// Returns the full session state for the host.
func (h *GameHandler) GetFull(c *gin.Context) {
	g, err := h.gameService.GetStateForHost(c.Request.Context(), c.Param("game_id"), c.GetHeader(HeaderHostSecret))
	if err != nil {
		failGame(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"game": g})
}

// ResolvePin godoc
// GET /api/v1/games/pin/:pin
// Resolves a join pin to the public view of its game.
func (h *GameHandler) ResolvePin(c *gin.Context) {
	g, err := h.gameService.ResolvePin(c.Request.Context(), c.Param("pin"))
	if err != nil {
		failGame(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"game": g})
}

// Join godoc
// POST /api/v1/games/:game_id/players
// Registers a player in the lobby. Supplying a previously issued playerId
// makes the call an idempotent reconnect that works in any phase.
func (h *GameHandler) Join(c *gin.Context) {
	var req model.JoinGameRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	player, g, err := h.gameService.Join(c.Request.Context(), c.Param("game_id"), req.Name, req.PlayerID)
	if err != nil {
		failGame(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"playerId": player.ID,
		"game":     g.PublicView(),
	})
}

// Start godoc
// POST /api/v1/games/:game_id/start
// Opens the first question. Host only.
func (h *GameHandler) Start(c *gin.Context) {
	g, err := h.gameService.Start(c.Request.Context(), c.Param("game_id"), c.GetHeader(HeaderHostSecret))
	if err != nil {
		failGame(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"game": g})
}

// Next godoc
// POST /api/v1/games/:game_id/next
// Advances the game to its next phase. Host only.
func (h *GameHandler) Next(c *gin.Context) {
	g, err := h.gameService.Advance(c.Request.Context(), c.Param("game_id"), c.GetHeader(HeaderHostSecret))
	if err != nil {
		failGame(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"game": g})
}

// Answer godoc
// POST /api/v1/games/:game_id/answer
// Submits a player's answer for the current question. The response confirms
// receipt only; correctness and points wait for the reveal.
func (h *GameHandler) Answer(c *gin.Context) {
	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	g, err := h.gameService.SubmitAnswer(c.Request.Context(), c.Param("game_id"), req.PlayerID, *req.AnswerIndex)
	if err != nil {
		failGame(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"answerIndex": *req.AnswerIndex,
		"phase":       g.Phase,
	})
}
