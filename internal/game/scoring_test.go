package game

import (
	"testing"

	"github.com/quizdash/quizdash-backend/internal/model"
)

func TestScore(t *testing.T) {
	q := &model.Question{
		Text:               "2+2?",
		Options:            []string{"3", "4", "5"},
		CorrectAnswerIndex: 1,
	}
	double := &model.Question{
		Text:               "capital of France?",
		Options:            []string{"Paris", "Lyon"},
		CorrectAnswerIndex: 0,
		IsDoublePoints:     true,
	}

	const limit = int64(20000)

	tests := []struct {
		name        string
		q           *model.Question
		answerIndex int
		elapsed     int64
		wantCorrect bool
		wantPoints  int
	}{
		{"instant correct", q, 1, 0, true, 1000},
		{"correct at deadline", q, 1, limit, true, 500},
		{"correct at half time", q, 1, limit / 2, true, 750},
		{"floor applied", q, 1, 1, true, 999},
		{"incorrect earns nothing", q, 0, 0, false, 0},
		{"incorrect late earns nothing", q, 2, limit, false, 0},
		{"double points instant", double, 0, 0, true, 2000},
		{"double points at deadline", double, 0, limit, true, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, points := Score(tt.q, tt.answerIndex, tt.elapsed, limit)
			if correct != tt.wantCorrect {
				t.Errorf("correct = %v, want %v", correct, tt.wantCorrect)
			}
			if points != tt.wantPoints {
				t.Errorf("points = %d, want %d", points, tt.wantPoints)
			}
		})
	}
}

func TestScoreDecreasesOverTime(t *testing.T) {
	q := &model.Question{Options: []string{"a", "b"}, CorrectAnswerIndex: 0}
	const limit = int64(20000)

	prev := BasePoints + 1
	for elapsed := int64(0); elapsed <= limit; elapsed += 2500 {
		_, points := Score(q, 0, elapsed, limit)
		if points > prev {
			t.Fatalf("points increased over time: %d at %dms after %d", points, elapsed, prev)
		}
		if points < BasePoints/2 {
			t.Fatalf("points %d at %dms fell below the half-base floor", points, elapsed)
		}
		prev = points
	}
}
