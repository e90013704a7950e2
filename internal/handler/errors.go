package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdash/quizdash-backend/internal/game"
	"github.com/quizdash/quizdash-backend/internal/response"
)

// failGame maps a typed game error onto the response envelope. Game codes
// are shared verbatim with response.ErrCode; anything untyped becomes a 500.
func failGame(c *gin.Context, err error) {
	var gerr *game.Error
	if !errors.As(err, &gerr) {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Fail(c, statusFor(gerr.Code), response.ErrCode(gerr.Code))
}

func statusFor(code game.Code) int {
	switch code {
	case game.CodeGameNotFound, game.CodeQuizNotFound, game.CodeUnknownPlayer:
		return http.StatusNotFound
	case game.CodeInvalidHostSecret:
		return http.StatusForbidden
	case game.CodeInvalidNickname, game.CodeInvalidAnswerIndex, game.CodeEmptyQuiz, game.CodeInvalidQuiz:
		return http.StatusBadRequest
	case game.CodeNotInLobby, game.CodeNameTaken, game.CodeNoPlayers,
		game.CodeNotInQuestionPhase, game.CodeAlreadyAnswered,
		game.CodeTimeExpired, game.CodeInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
