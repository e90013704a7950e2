package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quizdash/quizdash-backend/internal/game"
	"github.com/quizdash/quizdash-backend/internal/metrics"
	"github.com/quizdash/quizdash-backend/internal/model"
	ws "github.com/quizdash/quizdash-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// DefaultQuizID is used when a game is created without naming a quiz.
const DefaultQuizID = "general"

// GameStore is the session persistence surface the coordinator needs.
// Satisfied by repository.GameRepository.
type GameStore interface {
	Load(ctx context.Context, gameID string) (*model.Game, error)
	Save(ctx context.Context, g *model.Game) error
	ResolvePin(ctx context.Context, pin string) (string, error)
}

// Broadcaster is the push-channel fanout surface. Satisfied by
// websocket.Hub.
type Broadcaster interface {
	BroadcastAll(gameID string, msg ws.ServerMessage)
	BroadcastHost(gameID string, msg ws.ServerMessage)
	SendToPlayer(gameID, playerID string, msg ws.ServerMessage)
}

// GameService is the session coordinator. Every mutation of one game runs
// under that game's lock for the whole load -> validate -> mutate -> persist
// cycle, so concurrent commands are serialized and each one observes the
// previous one's persisted state. Fanout happens after the lock is released.
type GameService struct {
	games   GameStore
	quizzes QuizStore
	hub     Broadcaster
	log     zerolog.Logger

	limitMs int64
	locks   sync.Map // gameID -> *sync.Mutex

	now func() time.Time
}

func NewGameService(games GameStore, quizzes QuizStore, hub Broadcaster, questionTimeLimit time.Duration, log zerolog.Logger) *GameService {
	return &GameService{
		games:   games,
		quizzes: quizzes,
		hub:     hub,
		log:     log.With().Str("component", "game_service").Logger(),
		limitMs: questionTimeLimit.Milliseconds(),
		now:     time.Now,
	}
}

func (s *GameService) nowMs() int64 {
	return s.now().UnixMilli()
}

func (s *GameService) gameLock(gameID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(gameID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// withGame runs fn on the current persisted state of a game under its lock
// and saves the result. fn returning an error aborts without saving.
func (s *GameService) withGame(ctx context.Context, gameID string, fn func(g *model.Game) error) (*model.Game, error) {
	mu := s.gameLock(gameID)
	mu.Lock()
	defer mu.Unlock()

	g, err := s.games.Load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, game.ErrGameNotFound
	}
	if err := fn(g); err != nil {
		return nil, err
	}
	if err := s.games.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GameService) checkSecret(g *model.Game, secret string) error {
	if subtle.ConstantTimeCompare([]byte(g.HostSecret), []byte(secret)) != 1 {
		return game.ErrInvalidHostSecret
	}
	return nil
}

// CreateGame creates a lobby for the given quiz (DefaultQuizID when empty)
// with a fresh id, join pin, and host secret. The questions are copied into
// the session so later catalog edits do not affect a running game.
func (s *GameService) CreateGame(ctx context.Context, quizID string) (*model.Game, error) {
	if quizID == "" {
		quizID = DefaultQuizID
	}
	quiz, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, game.ErrQuizNotFound
	}
	if len(quiz.Questions) == 0 {
		return nil, game.ErrEmptyQuiz
	}

	pin, err := s.newPin(ctx)
	if err != nil {
		return nil, err
	}

	g := &model.Game{
		ID:         uuid.NewString(),
		Pin:        pin,
		HostSecret: uuid.NewString(),
		QuizID:     quiz.ID,
		QuizTitle:  quiz.Title,
		Phase:      model.PhaseLobby,
		Questions:  append([]model.Question(nil), quiz.Questions...),
		CreatedAt:  s.nowMs(),
	}
	if err := s.games.Save(ctx, g); err != nil {
		return nil, err
	}

	metrics.GamesCreated.Inc()
	s.log.Info().
		Str("game_id", g.ID).
		Str("quiz_id", quiz.ID).
		Str("pin", g.Pin).
		Msg("Game created")
	return g, nil
}

// newPin draws a 6-digit join pin, retrying a few times on collision with a
// live game.
func (s *GameService) newPin(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		var buf [4]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return "", fmt.Errorf("generate pin: %w", err)
		}
		pin := fmt.Sprintf("%06d", 100000+binary.BigEndian.Uint32(buf[:])%900000)

		taken, err := s.games.ResolvePin(ctx, pin)
		if err != nil {
			return "", err
		}
		if taken == "" {
			return pin, nil
		}
	}
	return "", fmt.Errorf("generate pin: exhausted attempts")
}

// GetState returns the public view of a game (host secret stripped).
func (s *GameService) GetState(ctx context.Context, gameID string) (*model.Game, error) {
	g, err := s.games.Load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, game.ErrGameNotFound
	}
	return g.PublicView(), nil
}

// GetStateForHost returns the full game state after verifying the host
// secret.
func (s *GameService) GetStateForHost(ctx context.Context, gameID, secret string) (*model.Game, error) {
	g, err := s.games.Load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, game.ErrGameNotFound
	}
	if err := s.checkSecret(g, secret); err != nil {
		return nil, err
	}
	return g, nil
}

// ResolvePin returns the public view of the game registered under a join
// pin.
func (s *GameService) ResolvePin(ctx context.Context, pin string) (*model.Game, error) {
	gameID, err := s.games.ResolvePin(ctx, pin)
	if err != nil {
		return nil, err
	}
	if gameID == "" {
		return nil, game.ErrGameNotFound
	}
	return s.GetState(ctx, gameID)
}

// Join registers a player in the lobby, or returns the existing registration
// when playerID matches a known player. Fresh joins are broadcast as a lobby
// update; reconnections change nothing and notify nobody.
func (s *GameService) Join(ctx context.Context, gameID, name, playerID string) (*model.Player, *model.Game, error) {
	var (
		player  *model.Player
		created bool
	)
	g, err := s.withGame(ctx, gameID, func(g *model.Game) error {
		var err error
		player, created, err = game.Join(g, name, playerID, uuid.NewString())
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if created {
		metrics.PlayersJoined.Inc()
		s.log.Info().
			Str("game_id", gameID).
			Str("player_id", player.ID).
			Str("name", player.Name).
			Msg("Player joined")
		s.hub.BroadcastAll(gameID, s.lobbyUpdate(g))
	}
	return player, g, nil
}

// Start opens the first question on host command.
func (s *GameService) Start(ctx context.Context, gameID, secret string) (*model.Game, error) {
	g, err := s.withGame(ctx, gameID, func(g *model.Game) error {
		if err := s.checkSecret(g, secret); err != nil {
			return err
		}
		return game.Start(g, s.nowMs())
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("game_id", gameID).Int("players", len(g.Players)).Msg("Game started")
	s.hub.BroadcastAll(gameID, s.questionStart(g))
	return g, nil
}

// SubmitAnswer validates, scores, and records a player's answer. When the
// accepted answer is the last outstanding one the game advances straight to
// REVEAL in the same unit of work.
func (s *GameService) SubmitAnswer(ctx context.Context, gameID, playerID string, answerIndex int) (*model.Game, error) {
	var (
		ans      *model.Answer
		revealed bool
	)
	g, err := s.withGame(ctx, gameID, func(g *model.Game) error {
		var err error
		ans, err = game.SubmitAnswer(g, playerID, answerIndex, s.nowMs(), s.limitMs)
		if err != nil {
			return err
		}
		if game.AllAnswered(g) {
			if _, err := game.Advance(g, s.nowMs()); err != nil {
				return err
			}
			revealed = true
		}
		return nil
	})
	if err != nil {
		metrics.AnswersRejected.Inc()
		return nil, err
	}

	metrics.AnswersAccepted.Inc()
	s.hub.SendToPlayer(gameID, playerID, ws.ServerMessage{
		Event: ws.EventAnswerReceived,
		Data:  ws.AnswerReceivedData{AnswerIndex: ans.AnswerIndex},
	})
	s.hub.BroadcastHost(gameID, ws.ServerMessage{
		Event: ws.EventPlayerAnswered,
		Data:  ws.PlayerAnsweredData{Count: len(g.Answers), Total: len(g.Players)},
	})
	if revealed {
		s.broadcastReveal(g)
	}
	return g, nil
}

// Advance moves the game to its next phase on host command and fans the
// new phase out to the room.
func (s *GameService) Advance(ctx context.Context, gameID, secret string) (*model.Game, error) {
	g, err := s.withGame(ctx, gameID, func(g *model.Game) error {
		if err := s.checkSecret(g, secret); err != nil {
			return err
		}
		_, err := game.Advance(g, s.nowMs())
		return err
	})
	if err != nil {
		return nil, err
	}

	switch g.Phase {
	case model.PhaseReveal:
		s.broadcastReveal(g)
	case model.PhaseLeaderboard:
		s.hub.BroadcastAll(gameID, s.leaderboard(g))
	case model.PhaseQuestion:
		s.hub.BroadcastAll(gameID, s.questionStart(g))
	case model.PhaseEnd:
		metrics.GamesFinished.Inc()
		s.log.Info().Str("game_id", gameID).Msg("Game finished")
		s.hub.BroadcastAll(gameID, s.gameEnd(g))
	}
	return g, nil
}

// ─── Fanout payloads ────────────────────────────────────────────────

func lobbyPlayers(g *model.Game) []ws.LobbyPlayer {
	players := make([]ws.LobbyPlayer, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, ws.LobbyPlayer{Name: p.Name, Score: p.Score})
	}
	return players
}

func (s *GameService) lobbyUpdate(g *model.Game) ws.ServerMessage {
	return ws.ServerMessage{
		Event: ws.EventLobbyUpdate,
		Data: ws.LobbyUpdateData{
			QuizTitle: g.QuizTitle,
			Players:   lobbyPlayers(g),
			Count:     len(g.Players),
		},
	}
}

func (s *GameService) questionStart(g *model.Game) ws.ServerMessage {
	q := g.CurrentQuestion()
	return ws.ServerMessage{
		Event: ws.EventQuestionStart,
		Data: ws.QuestionStartData{
			Index:       g.CurrentQuestionIndex,
			Total:       len(g.Questions),
			Text:        q.Text,
			Options:     q.Options,
			StartTime:   g.QuestionStartTime,
			TimeLimitMs: s.limitMs,
		},
	}
}

func (s *GameService) revealData(g *model.Game, playerID string) ws.RevealData {
	q := g.CurrentQuestion()
	counts := make([]int, len(q.Options))
	for _, a := range g.Answers {
		counts[a.AnswerIndex]++
	}

	data := ws.RevealData{
		CorrectAnswerIndex: q.CorrectAnswerIndex,
		AnswerCounts:       counts,
	}
	if playerID != "" {
		if a := g.AnswerByPlayer(playerID); a != nil {
			p := g.PlayerByID(playerID)
			data.PlayerResult = &ws.PlayerResultData{
				IsCorrect:  a.IsCorrect,
				Points:     a.Score,
				TotalScore: p.Score,
			}
		}
	}
	return data
}

// broadcastReveal sends the host the aggregate outcome and each player their
// own result on top of it. Players who never answered get the aggregate
// only.
func (s *GameService) broadcastReveal(g *model.Game) {
	s.hub.BroadcastHost(g.ID, ws.ServerMessage{
		Event: ws.EventReveal,
		Data:  s.revealData(g, ""),
	})
	for _, p := range g.Players {
		s.hub.SendToPlayer(g.ID, p.ID, ws.ServerMessage{
			Event: ws.EventReveal,
			Data:  s.revealData(g, p.ID),
		})
	}
}

func (s *GameService) leaderboard(g *model.Game) ws.ServerMessage {
	return ws.ServerMessage{
		Event: ws.EventLeaderboard,
		Data: ws.LeaderboardData{
			Players:        lobbyPlayers(g),
			IsLastQuestion: g.IsLastQuestion(),
		},
	}
}

func (s *GameService) gameEnd(g *model.Game) ws.ServerMessage {
	return ws.ServerMessage{
		Event: ws.EventGameEnd,
		Data:  ws.GameEndData{Players: lobbyPlayers(g)},
	}
}

// SyncEvent builds the catch-up frame for one connection based on the
// game's current phase; reconnecting clients receive it right after the
// handshake instead of waiting for the next transition. playerID is empty
// for hosts and unjoined players.
func (s *GameService) SyncEvent(g *model.Game, playerID string) ws.ServerMessage {
	switch g.Phase {
	case model.PhaseQuestion:
		return s.questionStart(g)
	case model.PhaseReveal:
		return ws.ServerMessage{Event: ws.EventReveal, Data: s.revealData(g, playerID)}
	case model.PhaseLeaderboard:
		return s.leaderboard(g)
	case model.PhaseEnd:
		return s.gameEnd(g)
	default:
		return s.lobbyUpdate(g)
	}
}
