package websocket

// ─── Commands (Client → Server) ─────────────────────────────────────

type Command string

const (
	CommandConnect Command = "connect"
	CommandJoin    Command = "join"
	CommandStart   Command = "start"
	CommandAnswer  Command = "answer"
	CommandAdvance Command = "advance"
	CommandPing    Command = "ping"
)

// Role identifies which side of the game a connection speaks for.
type Role string

const (
	RoleHost   Role = "host"
	RolePlayer Role = "player"
)

// ClientMessage is the single inbound frame shape. Command selects the
// variant; the dispatcher rejects unknown commands explicitly rather than
// ignoring them.
type ClientMessage struct {
	Command Command `json:"command"`

	// connect
	Role       Role   `json:"role,omitempty"`
	HostSecret string `json:"hostSecret,omitempty"`
	PlayerID   string `json:"playerId,omitempty"`

	// join
	Name string `json:"name,omitempty"`

	// answer
	AnswerIndex *int `json:"answerIndex,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventConnected      Event = "connected"
	EventLobbyUpdate    Event = "lobbyUpdate"
	EventQuestionStart  Event = "questionStart"
	EventAnswerReceived Event = "answerReceived"
	EventPlayerAnswered Event = "playerAnswered"
	EventReveal         Event = "reveal"
	EventLeaderboard    Event = "leaderboard"
	EventGameEnd        Event = "gameEnd"
	EventPong           Event = "pong"
	EventError          Event = "error"
)

// ServerMessage is the single outbound frame shape.
type ServerMessage struct {
	Event Event `json:"event"`
	Data  any   `json:"data,omitempty"`
}

// ConnectedData acknowledges a successful handshake or join. PlayerID is set
// for player connections once an identity is attached.
type ConnectedData struct {
	GameID   string `json:"gameId"`
	Role     Role   `json:"role"`
	PlayerID string `json:"playerId,omitempty"`
	Phase    string `json:"phase"`
}

// LobbyPlayer is the broadcast-safe projection of a player: no id, since a
// player id authorizes answer submission.
type LobbyPlayer struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type LobbyUpdateData struct {
	QuizTitle string        `json:"quizTitle"`
	Players   []LobbyPlayer `json:"players"`
	Count     int           `json:"count"`
}

// QuestionStartData opens a question. The correct index is never included.
type QuestionStartData struct {
	Index       int      `json:"index"`
	Total       int      `json:"total"`
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	StartTime   int64    `json:"startTime"` // unix ms
	TimeLimitMs int64    `json:"timeLimitMs"`
}

// AnswerReceivedData echoes an accepted submission back to its author only.
// No correctness or points: those wait for the reveal.
type AnswerReceivedData struct {
	AnswerIndex int `json:"answerIndex"`
}

// PlayerAnsweredData is the host-only answer-progress counter.
type PlayerAnsweredData struct {
	Count int `json:"count"`
	Total int `json:"total"`
}

// PlayerResultData is the per-player portion of a reveal.
type PlayerResultData struct {
	IsCorrect  bool `json:"isCorrect"`
	Points     int  `json:"points"`
	TotalScore int  `json:"totalScore"`
}

// RevealData discloses the current question's outcome. Every recipient gets
// the aggregate counts; PlayerResult is present only on the copy sent to a
// player who answered.
type RevealData struct {
	CorrectAnswerIndex int               `json:"correctAnswerIndex"`
	AnswerCounts       []int             `json:"answerCounts"`
	PlayerResult       *PlayerResultData `json:"playerResult,omitempty"`
}

type LeaderboardData struct {
	Players        []LobbyPlayer `json:"players"`
	IsLastQuestion bool          `json:"isLastQuestion"`
}

type GameEndData struct {
	Players []LobbyPlayer `json:"players"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewError builds an error event frame.
func NewError(code, message string) ServerMessage {
	return ServerMessage{Event: EventError, Data: ErrorData{Code: code, Message: message}}
}
