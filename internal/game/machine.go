// Package game holds the pure session rules: the phase state machine and the
// scoring function. Nothing here touches storage, clocks, or the network;
// callers pass the current time in and persist the mutated state themselves.
package game

import (
	"sort"
	"strings"

	"github.com/quizdash/quizdash-backend/internal/model"
)

// MaxNicknameLen bounds player names after trimming.
const MaxNicknameLen = 24

// Join registers a player in the lobby, or returns the existing registration
// when playerID matches a known player (reconnection; works in any phase and
// never resets the score). Fresh joins take newID as the assigned player id.
// The created return is false for reconnections.
func Join(g *model.Game, name, playerID, newID string) (p *model.Player, created bool, err error) {
	if playerID != "" {
		if existing := g.PlayerByID(playerID); existing != nil {
			return existing, false, nil
		}
	}

	if g.Phase != model.PhaseLobby {
		return nil, false, ErrNotInLobby
	}

	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNicknameLen {
		return nil, false, ErrInvalidNickname
	}
	for _, existing := range g.Players {
		if strings.EqualFold(existing.Name, name) {
			return nil, false, ErrNameTaken
		}
	}

	p = &model.Player{ID: newID, Name: name}
	g.Players = append(g.Players, p)
	return p, true, nil
}

// Start opens the first question: LOBBY -> QUESTION. Requires at least one
// registered player. nowMs becomes the question start time.
func Start(g *model.Game, nowMs int64) error {
	if g.Phase != model.PhaseLobby {
		return ErrNotInLobby
	}
	if len(g.Players) == 0 {
		return ErrNoPlayers
	}
	g.Phase = model.PhaseQuestion
	g.CurrentQuestionIndex = 0
	g.QuestionStartTime = nowMs
	g.Answers = nil
	return nil
}

// SubmitAnswer validates and scores a submission for the current question.
// Accepted answers are final: the score is applied to the player immediately
// and the answer recorded. A submission at exactly the time limit is
// accepted; one past it is rejected. Rejections leave the game unchanged.
func SubmitAnswer(g *model.Game, playerID string, answerIndex int, nowMs, limitMs int64) (*model.Answer, error) {
	if g.Phase != model.PhaseQuestion {
		return nil, ErrNotInQuestionPhase
	}
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if p.Answered {
		return nil, ErrAlreadyAnswered
	}
	q := g.CurrentQuestion()
	if answerIndex < 0 || answerIndex >= len(q.Options) {
		return nil, ErrInvalidAnswerIndex
	}

	elapsed := nowMs - g.QuestionStartTime
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > limitMs {
		return nil, ErrTimeExpired
	}

	correct, points := Score(q, answerIndex, elapsed, limitMs)
	p.Score += points
	p.Answered = true

	ans := model.Answer{
		PlayerID:    playerID,
		AnswerIndex: answerIndex,
		TimeTakenMs: elapsed,
		IsCorrect:   correct,
		Score:       points,
	}
	g.Answers = append(g.Answers, ans)
	return &ans, nil
}

// AllAnswered reports whether every registered player has answered the
// current question. False for games with no players.
func AllAnswered(g *model.Game) bool {
	if len(g.Players) == 0 {
		return false
	}
	for _, p := range g.Players {
		if !p.Answered {
			return false
		}
	}
	return true
}

// Advance moves the game to its next phase on host command (or the
// all-answered fast path for QUESTION -> REVEAL):
//
//	QUESTION    -> REVEAL
//	REVEAL      -> LEADERBOARD   (players sorted by score, stable on ties)
//	LEADERBOARD -> QUESTION      (next question, fresh timer and answers)
//	LEADERBOARD -> END           (after the last question)
//
// LOBBY and END have no advance; those return ErrInvalidTransition.
func Advance(g *model.Game, nowMs int64) (model.Phase, error) {
	switch g.Phase {
	case model.PhaseQuestion:
		g.Phase = model.PhaseReveal

	case model.PhaseReveal:
		sort.SliceStable(g.Players, func(i, j int) bool {
			return g.Players[i].Score > g.Players[j].Score
		})
		g.Phase = model.PhaseLeaderboard

	case model.PhaseLeaderboard:
		if g.IsLastQuestion() {
			g.Phase = model.PhaseEnd
			break
		}
		g.CurrentQuestionIndex++
		g.QuestionStartTime = nowMs
		g.Answers = nil
		for _, p := range g.Players {
			p.Answered = false
		}
		g.Phase = model.PhaseQuestion

	default:
		return g.Phase, ErrInvalidTransition
	}
	return g.Phase, nil
}
