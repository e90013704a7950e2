package model

// Phase is the lifecycle stage of a game session.
type Phase string

const (
	PhaseLobby       Phase = "LOBBY"
	PhaseQuestion    Phase = "QUESTION"
	PhaseReveal      Phase = "REVEAL"
	PhaseLeaderboard Phase = "LEADERBOARD"
	PhaseEnd         Phase = "END"
)

// Player is a participant registered in a game.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Answered bool   `json:"answered"`
}

// Answer records a single accepted submission for the current question.
type Answer struct {
	PlayerID    string `json:"playerId"`
	AnswerIndex int    `json:"answerIndex"`
	TimeTakenMs int64  `json:"timeTakenMs"`
	IsCorrect   bool   `json:"isCorrect"`
	Score       int    `json:"score"`
}

// Game is the full session state as persisted in the store.
// HostSecret authorizes host control operations and must never reach a
// player-facing payload; use PublicView for anything broadcast or returned
// without the secret header.
type Game struct {
	ID                   string     `json:"id"`
	Pin                  string     `json:"pin"`
	HostSecret           string     `json:"hostSecret,omitempty"`
	QuizID               string     `json:"quizId"`
	QuizTitle            string     `json:"quizTitle"`
	Phase                Phase      `json:"phase"`
	Questions            []Question `json:"questions"`
	CurrentQuestionIndex int        `json:"currentQuestionIndex"`
	QuestionStartTime    int64      `json:"questionStartTime"` // unix ms, 0 outside QUESTION history
	Players              []*Player  `json:"players"`
	Answers              []Answer   `json:"answers"`
	CreatedAt            int64      `json:"createdAt"` // unix ms
}

// CurrentQuestion returns the active question, or nil when the index is out
// of range (e.g. before the first start).
func (g *Game) CurrentQuestion() *Question {
	if g.CurrentQuestionIndex < 0 || g.CurrentQuestionIndex >= len(g.Questions) {
		return nil
	}
	return &g.Questions[g.CurrentQuestionIndex]
}

// IsLastQuestion reports whether the current question is the quiz's final one.
func (g *Game) IsLastQuestion() bool {
	return g.CurrentQuestionIndex >= len(g.Questions)-1
}

// PlayerByID returns the registered player with the given id, or nil.
func (g *Game) PlayerByID(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AnswerByPlayer returns the current-question answer submitted by the given
// player, or nil if they have not answered.
func (g *Game) AnswerByPlayer(playerID string) *Answer {
	for i := range g.Answers {
		if g.Answers[i].PlayerID == playerID {
			return &g.Answers[i]
		}
	}
	return nil
}

// PublicView returns a copy of the game safe for players and broadcasts:
// identical state with the host secret stripped.
func (g *Game) PublicView() *Game {
	view := *g
	view.HostSecret = ""
	return &view
}
