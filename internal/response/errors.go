package response

// ErrCode is a typed error code enum for consistent API error identification.
// Game-rule codes share their string values with the game package so REST
// clients and WebSocket clients see the same identifiers.
type ErrCode string

const (
	// ─── Authorization ─────────────────────────────────────────────────
	ErrInvalidHostSecret ErrCode = "INVALID_HOST_SECRET"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation         ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload     ErrCode = "INVALID_PAYLOAD"
	ErrInvalidNickname    ErrCode = "INVALID_NICKNAME"
	ErrInvalidAnswerIndex ErrCode = "INVALID_ANSWER_INDEX"
	ErrInvalidQuiz        ErrCode = "INVALID_QUIZ"
	ErrEmptyQuiz          ErrCode = "EMPTY_QUIZ"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrGameNotFound  ErrCode = "GAME_NOT_FOUND"
	ErrQuizNotFound  ErrCode = "QUIZ_NOT_FOUND"
	ErrUnknownPlayer ErrCode = "UNKNOWN_PLAYER"

	// ─── Game state ────────────────────────────────────────────────────
	ErrNotInLobby         ErrCode = "NOT_IN_LOBBY"
	ErrNameTaken          ErrCode = "NAME_TAKEN"
	ErrNoPlayers          ErrCode = "NO_PLAYERS"
	ErrNotInQuestionPhase ErrCode = "NOT_IN_QUESTION_PHASE"
	ErrAlreadyAnswered    ErrCode = "ALREADY_ANSWERED"
	ErrTimeExpired        ErrCode = "TIME_EXPIRED"
	ErrInvalidTransition  ErrCode = "INVALID_TRANSITION"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authorization ─────────────────────────────────────────────────
	case ErrInvalidHostSecret:
		return "Invalid host secret."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrInvalidNickname:
		return "Nickname is empty or too long."
	case ErrInvalidAnswerIndex:
		return "Answer index is out of range."
	case ErrInvalidQuiz:
		return "Quiz definition is invalid."
	case ErrEmptyQuiz:
		return "Quiz has no questions."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrGameNotFound:
		return "Game not found."
	case ErrQuizNotFound:
		return "Quiz not found."
	case ErrUnknownPlayer:
		return "Player is not registered in this game."

	// ─── Game state ────────────────────────────────────────────────────
	case ErrNotInLobby:
		return "The game is no longer accepting players."
	case ErrNameTaken:
		return "That nickname is already taken."
	case ErrNoPlayers:
		return "Cannot start a game with no players."
	case ErrNotInQuestionPhase:
		return "No question is open for answers."
	case ErrAlreadyAnswered:
		return "You already answered this question."
	case ErrTimeExpired:
		return "Time is up for this question."
	case ErrInvalidTransition:
		return "The game cannot advance from its current phase."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
