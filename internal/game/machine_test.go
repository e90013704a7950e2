package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/quizdash/quizdash-backend/internal/model"
)

const testLimit = int64(20000)

func newTestGame(questionCount int) *model.Game {
	questions := make([]model.Question, questionCount)
	for i := range questions {
		questions[i] = model.Question{
			Text:               fmt.Sprintf("question %d", i+1),
			Options:            []string{"a", "b", "c", "d"},
			CorrectAnswerIndex: i % 4,
		}
	}
	return &model.Game{
		ID:         "g1",
		Pin:        "123456",
		HostSecret: "secret",
		QuizTitle:  "Test Quiz",
		Phase:      model.PhaseLobby,
		Questions:  questions,
	}
}

func mustJoin(t *testing.T, g *model.Game, name, id string) *model.Player {
	t.Helper()
	p, created, err := Join(g, name, "", id)
	if err != nil {
		t.Fatalf("join %q: %v", name, err)
	}
	if !created {
		t.Fatalf("join %q: expected a fresh registration", name)
	}
	return p
}

func wantCode(t *testing.T, err error, code Code) {
	t.Helper()
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected game error %s, got %v", code, err)
	}
	if gerr.Code != code {
		t.Fatalf("expected code %s, got %s", code, gerr.Code)
	}
}

func TestJoinValidation(t *testing.T) {
	g := newTestGame(1)
	mustJoin(t, g, "alice", "p1")

	if _, _, err := Join(g, "ALICE", "", "p2"); err == nil {
		t.Fatal("case-insensitive duplicate accepted")
	} else {
		wantCode(t, err, CodeNameTaken)
	}
	if _, _, err := Join(g, "   ", "", "p3"); err == nil {
		t.Fatal("blank nickname accepted")
	} else {
		wantCode(t, err, CodeInvalidNickname)
	}
	if _, _, err := Join(g, "this nickname is far too long to accept", "", "p4"); err == nil {
		t.Fatal("oversized nickname accepted")
	} else {
		wantCode(t, err, CodeInvalidNickname)
	}

	if len(g.Players) != 1 {
		t.Fatalf("rejected joins mutated state: %d players", len(g.Players))
	}
}

func TestJoinTrimsWhitespace(t *testing.T) {
	g := newTestGame(1)
	p := mustJoin(t, g, "  bob  ", "p1")
	if p.Name != "bob" {
		t.Fatalf("name = %q, want %q", p.Name, "bob")
	}
}

func TestJoinClosedAfterStart(t *testing.T) {
	g := newTestGame(1)
	mustJoin(t, g, "alice", "p1")
	if err := Start(g, 1000); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Join(g, "bob", "", "p2"); err == nil {
		t.Fatal("join accepted outside LOBBY")
	} else {
		wantCode(t, err, CodeNotInLobby)
	}
}

func TestRejoinKeepsIdentityAndScore(t *testing.T) {
	g := newTestGame(2)
	p := mustJoin(t, g, "alice", "p1")
	if err := Start(g, 1000); err != nil {
		t.Fatal(err)
	}
	if _, err := SubmitAnswer(g, p.ID, 0, 1000, testLimit); err != nil {
		t.Fatal(err)
	}
	before := p.Score

	// Reconnection works in any phase and supplies the original id.
	again, created, err := Join(g, "alice", p.ID, "unused")
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("reconnection created a duplicate player")
	}
	if again != p {
		t.Fatal("reconnection returned a different player")
	}
	if again.Score != before {
		t.Fatalf("reconnection reset score: %d -> %d", before, again.Score)
	}
	if len(g.Players) != 1 {
		t.Fatalf("player list grew on rejoin: %d", len(g.Players))
	}
}

func TestRejoinUnknownIDFallsBackToFreshJoin(t *testing.T) {
	g := newTestGame(1)
	p, created, err := Join(g, "alice", "stale-id", "p9")
	if err != nil {
		t.Fatal(err)
	}
	if !created || p.ID != "p9" {
		t.Fatalf("expected a fresh registration with the assigned id, got created=%v id=%s", created, p.ID)
	}
}

func TestStartRequiresPlayers(t *testing.T) {
	g := newTestGame(1)
	if err := Start(g, 1000); err == nil {
		t.Fatal("start accepted with no players")
	} else {
		wantCode(t, err, CodeNoPlayers)
	}
	if g.Phase != model.PhaseLobby {
		t.Fatalf("rejected start mutated phase: %s", g.Phase)
	}
}

func TestSubmitAnswerScoring(t *testing.T) {
	g := newTestGame(1)
	alice := mustJoin(t, g, "alice", "p1")
	bob := mustJoin(t, g, "bob", "p2")
	start := int64(50000)
	if err := Start(g, start); err != nil {
		t.Fatal(err)
	}

	// Question 0's correct index is 0. Alice answers instantly and
	// correctly, Bob answers late in the window and wrong.
	ansA, err := SubmitAnswer(g, alice.ID, 0, start, testLimit)
	if err != nil {
		t.Fatal(err)
	}
	if !ansA.IsCorrect || ansA.Score != 1000 || alice.Score != 1000 {
		t.Fatalf("alice: %+v, score %d", ansA, alice.Score)
	}

	ansB, err := SubmitAnswer(g, bob.ID, 3, start+testLimit/2, testLimit)
	if err != nil {
		t.Fatal(err)
	}
	if ansB.IsCorrect || ansB.Score != 0 || bob.Score != 0 {
		t.Fatalf("bob: %+v, score %d", ansB, bob.Score)
	}

	if len(g.Answers) != 2 {
		t.Fatalf("answers recorded: %d", len(g.Answers))
	}
}

func TestSubmitAnswerDeadlineBoundary(t *testing.T) {
	start := int64(50000)

	g := newTestGame(1)
	p := mustJoin(t, g, "alice", "p1")
	if err := Start(g, start); err != nil {
		t.Fatal(err)
	}
	if _, err := SubmitAnswer(g, p.ID, 0, start+testLimit, testLimit); err != nil {
		t.Fatalf("answer at exactly the limit rejected: %v", err)
	}

	g = newTestGame(1)
	p = mustJoin(t, g, "alice", "p1")
	if err := Start(g, start); err != nil {
		t.Fatal(err)
	}
	_, err := SubmitAnswer(g, p.ID, 0, start+testLimit+1, testLimit)
	if err == nil {
		t.Fatal("answer past the limit accepted")
	}
	wantCode(t, err, CodeTimeExpired)
	if p.Score != 0 || p.Answered || len(g.Answers) != 0 {
		t.Fatal("rejected late answer mutated state")
	}
}

func TestSubmitAnswerRejections(t *testing.T) {
	start := int64(50000)
	g := newTestGame(1)
	p := mustJoin(t, g, "alice", "p1")
	if err := Start(g, start); err != nil {
		t.Fatal(err)
	}

	if _, err := SubmitAnswer(g, "nobody", 0, start, testLimit); err == nil {
		t.Fatal("unknown player accepted")
	} else {
		wantCode(t, err, CodeUnknownPlayer)
	}
	if _, err := SubmitAnswer(g, p.ID, 4, start, testLimit); err == nil {
		t.Fatal("out-of-range index accepted")
	} else {
		wantCode(t, err, CodeInvalidAnswerIndex)
	}
	if _, err := SubmitAnswer(g, p.ID, -1, start, testLimit); err == nil {
		t.Fatal("negative index accepted")
	} else {
		wantCode(t, err, CodeInvalidAnswerIndex)
	}

	if _, err := SubmitAnswer(g, p.ID, 0, start+10, testLimit); err != nil {
		t.Fatal(err)
	}
	scoreAfterFirst := p.Score

	// Second submission is rejected and the first one stands.
	_, err := SubmitAnswer(g, p.ID, 1, start+20, testLimit)
	if err == nil {
		t.Fatal("duplicate answer accepted")
	}
	wantCode(t, err, CodeAlreadyAnswered)
	if p.Score != scoreAfterFirst || len(g.Answers) != 1 {
		t.Fatal("duplicate answer mutated state")
	}
	if g.Answers[0].AnswerIndex != 0 {
		t.Fatalf("recorded answer changed: %d", g.Answers[0].AnswerIndex)
	}
}

func TestSubmitAnswerOutsideQuestionPhase(t *testing.T) {
	g := newTestGame(1)
	p := mustJoin(t, g, "alice", "p1")

	if _, err := SubmitAnswer(g, p.ID, 0, 0, testLimit); err == nil {
		t.Fatal("answer accepted in LOBBY")
	} else {
		wantCode(t, err, CodeNotInQuestionPhase)
	}

	if err := Start(g, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := Advance(g, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := SubmitAnswer(g, p.ID, 0, 10, testLimit); err == nil {
		t.Fatal("answer accepted in REVEAL")
	} else {
		wantCode(t, err, CodeNotInQuestionPhase)
	}
}

func TestAdvanceTransitionTable(t *testing.T) {
	tests := []struct {
		from model.Phase
		want model.Phase
		ok   bool
	}{
		{model.PhaseLobby, model.PhaseLobby, false},
		{model.PhaseQuestion, model.PhaseReveal, true},
		{model.PhaseReveal, model.PhaseLeaderboard, true},
		{model.PhaseLeaderboard, model.PhaseQuestion, true},
		{model.PhaseEnd, model.PhaseEnd, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			g := newTestGame(2)
			mustJoin(t, g, "alice", "p1")
			g.Phase = tt.from

			next, err := Advance(g, 1000)
			if tt.ok {
				if err != nil {
					t.Fatal(err)
				}
				if next != tt.want {
					t.Fatalf("advanced to %s, want %s", next, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("advance from %s accepted", tt.from)
			}
			wantCode(t, err, CodeInvalidTransition)
			if g.Phase != tt.from {
				t.Fatalf("rejected advance mutated phase: %s", g.Phase)
			}
		})
	}
}

func TestLeaderboardStableOrdering(t *testing.T) {
	g := newTestGame(1)
	a := mustJoin(t, g, "alice", "p1")
	b := mustJoin(t, g, "bob", "p2")
	c := mustJoin(t, g, "carol", "p3")
	a.Score, b.Score, c.Score = 500, 900, 500

	g.Phase = model.PhaseReveal
	if _, err := Advance(g, 0); err != nil {
		t.Fatal(err)
	}

	got := []string{g.Players[0].Name, g.Players[1].Name, g.Players[2].Name}
	want := []string{"bob", "alice", "carol"} // alice before carol: tie keeps join order
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestAdvanceToNextQuestionResetsAnswers(t *testing.T) {
	g := newTestGame(2)
	p := mustJoin(t, g, "alice", "p1")
	if err := Start(g, 1000); err != nil {
		t.Fatal(err)
	}
	if _, err := SubmitAnswer(g, p.ID, 0, 1500, testLimit); err != nil {
		t.Fatal(err)
	}
	scoreBefore := p.Score

	for _, want := range []model.Phase{model.PhaseReveal, model.PhaseLeaderboard, model.PhaseQuestion} {
		next, err := Advance(g, 9000)
		if err != nil {
			t.Fatal(err)
		}
		if next != want {
			t.Fatalf("phase = %s, want %s", next, want)
		}
	}

	if g.CurrentQuestionIndex != 1 {
		t.Fatalf("question index = %d, want 1", g.CurrentQuestionIndex)
	}
	if g.QuestionStartTime != 9000 {
		t.Fatalf("start time = %d, want 9000", g.QuestionStartTime)
	}
	if len(g.Answers) != 0 {
		t.Fatalf("answers not cleared: %d", len(g.Answers))
	}
	if p.Answered {
		t.Fatal("answered flag not reset")
	}
	if p.Score != scoreBefore {
		t.Fatalf("score changed across advance: %d -> %d", scoreBefore, p.Score)
	}
}

func TestFullGameReachesEnd(t *testing.T) {
	g := newTestGame(2)
	a := mustJoin(t, g, "alice", "p1")
	b := mustJoin(t, g, "bob", "p2")
	if err := Start(g, 0); err != nil {
		t.Fatal(err)
	}

	for round := 0; round < 2; round++ {
		start := g.QuestionStartTime
		correct := g.CurrentQuestion().CorrectAnswerIndex
		if _, err := SubmitAnswer(g, a.ID, correct, start, testLimit); err != nil {
			t.Fatal(err)
		}
		if _, err := SubmitAnswer(g, b.ID, (correct+1)%4, start, testLimit); err != nil {
			t.Fatal(err)
		}
		if !AllAnswered(g) {
			t.Fatal("AllAnswered false after both answered")
		}
		if _, err := Advance(g, start+1000); err != nil { // -> REVEAL
			t.Fatal(err)
		}
		if _, err := Advance(g, start+2000); err != nil { // -> LEADERBOARD
			t.Fatal(err)
		}
		if _, err := Advance(g, start+3000); err != nil { // -> QUESTION or END
			t.Fatal(err)
		}
	}

	if g.Phase != model.PhaseEnd {
		t.Fatalf("phase = %s, want END", g.Phase)
	}
	if a.Score != 2000 {
		t.Fatalf("alice score = %d, want 2000", a.Score)
	}
	if b.Score != 0 {
		t.Fatalf("bob score = %d, want 0", b.Score)
	}

	// END is terminal.
	if _, err := Advance(g, 99999); err == nil {
		t.Fatal("advance from END accepted")
	}
}
