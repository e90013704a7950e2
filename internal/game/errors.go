package game

// Code identifies a game-rule violation. Codes are stable strings shared by
// the REST error envelope and the WebSocket error event.
type Code string

const (
	CodeGameNotFound       Code = "GAME_NOT_FOUND"
	CodeQuizNotFound       Code = "QUIZ_NOT_FOUND"
	CodeEmptyQuiz          Code = "EMPTY_QUIZ"
	CodeNotInLobby         Code = "NOT_IN_LOBBY"
	CodeNameTaken          Code = "NAME_TAKEN"
	CodeInvalidNickname    Code = "INVALID_NICKNAME"
	CodeNoPlayers          Code = "NO_PLAYERS"
	CodeNotInQuestionPhase Code = "NOT_IN_QUESTION_PHASE"
	CodeAlreadyAnswered    Code = "ALREADY_ANSWERED"
	CodeTimeExpired        Code = "TIME_EXPIRED"
	CodeUnknownPlayer      Code = "UNKNOWN_PLAYER"
	CodeInvalidAnswerIndex Code = "INVALID_ANSWER_INDEX"
	CodeInvalidTransition  Code = "INVALID_TRANSITION"
	CodeInvalidHostSecret  Code = "INVALID_HOST_SECRET"
	CodeInvalidQuiz        Code = "INVALID_QUIZ"
)

// Error is a typed game-rule error. A rejected operation leaves the game
// state untouched.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrGameNotFound       = &Error{CodeGameNotFound, "game not found"}
	ErrQuizNotFound       = &Error{CodeQuizNotFound, "quiz not found"}
	ErrEmptyQuiz          = &Error{CodeEmptyQuiz, "quiz has no questions"}
	ErrNotInLobby         = &Error{CodeNotInLobby, "game is no longer accepting players"}
	ErrNameTaken          = &Error{CodeNameTaken, "that nickname is already taken"}
	ErrInvalidNickname    = &Error{CodeInvalidNickname, "nickname is empty or too long"}
	ErrNoPlayers          = &Error{CodeNoPlayers, "cannot start with no players"}
	ErrNotInQuestionPhase = &Error{CodeNotInQuestionPhase, "no question is open for answers"}
	ErrAlreadyAnswered    = &Error{CodeAlreadyAnswered, "player already answered this question"}
	ErrTimeExpired        = &Error{CodeTimeExpired, "time is up for this question"}
	ErrUnknownPlayer      = &Error{CodeUnknownPlayer, "player is not registered in this game"}
	ErrInvalidAnswerIndex = &Error{CodeInvalidAnswerIndex, "answer index is out of range"}
	ErrInvalidTransition  = &Error{CodeInvalidTransition, "phase transition not allowed"}
	ErrInvalidHostSecret  = &Error{CodeInvalidHostSecret, "invalid host secret"}
)
