package game

import (
	"math"

	"github.com/quizdash/quizdash-backend/internal/model"
)

// BasePoints is the maximum award for an instant correct answer.
const BasePoints = 1000

// Score evaluates a submission against the question. A correct answer earns
// floor(1000 * (1 - elapsed/(2*limit))) points, so an instant answer is worth
// 1000 and an answer at the deadline is worth 500. The double-points flag
// doubles the awarded amount. Incorrect answers earn 0.
//
// elapsedMs is clamped to [0, limitMs] by the caller; limitMs must be > 0.
func Score(q *model.Question, answerIndex int, elapsedMs, limitMs int64) (correct bool, points int) {
	if answerIndex != q.CorrectAnswerIndex {
		return false, 0
	}
	factor := 1 - float64(elapsedMs)/float64(2*limitMs)
	points = int(math.Floor(BasePoints * factor))
	if q.IsDoublePoints {
		points *= 2
	}
	return true, points
}
