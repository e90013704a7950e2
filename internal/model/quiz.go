package model

// QuizType distinguishes bundled quizzes from host-authored ones.
type QuizType string

const (
	QuizTypePredefined QuizType = "predefined"
	QuizTypeCustom     QuizType = "custom"
)

// Question is a single multiple-choice question.
type Question struct {
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	IsDoublePoints     bool     `json:"isDoublePoints,omitempty"`
}

// Quiz is a catalog entry: a titled, ordered list of questions.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Type      QuizType   `json:"type"`
	Questions []Question `json:"questions"`
}

// QuizSummary is the list-view projection of a quiz.
type QuizSummary struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Type          QuizType `json:"type"`
	QuestionCount int      `json:"questionCount"`
}

// Summary returns the list-view projection of q.
func (q *Quiz) Summary() QuizSummary {
	return QuizSummary{
		ID:            q.ID,
		Title:         q.Title,
		Type:          q.Type,
		QuestionCount: len(q.Questions),
	}
}

// CreateQuizRequest is the payload for creating or replacing a quiz.
type CreateQuizRequest struct {
	Title     string            `json:"title" binding:"required,min=1,max=120"`
	Questions []QuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// QuestionRequest is a single question in a quiz create/update payload.
type QuestionRequest struct {
	Text               string   `json:"text" binding:"required,min=1,max=500"`
	Options            []string `json:"options" binding:"required,min=2,max=4,dive,required,max=200"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex" binding:"min=0"`
	IsDoublePoints     bool     `json:"isDoublePoints"`
}

// CreateGameRequest is the payload for creating a game session.
type CreateGameRequest struct {
	QuizID string `json:"quizId"`
}

// JoinGameRequest is the payload for joining (or rejoining) a game.
type JoinGameRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=24"`
	PlayerID string `json:"playerId"`
}

// SubmitAnswerRequest is the payload for answering the current question.
type SubmitAnswerRequest struct {
	PlayerID    string `json:"playerId" binding:"required"`
	AnswerIndex *int   `json:"answerIndex" binding:"required"`
}
