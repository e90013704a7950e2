package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/quizdash/quizdash-backend/internal/game"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/rs/zerolog"
)

// QuizStore is the catalog persistence surface the quiz service needs.
// Satisfied by repository.QuizRepository.
type QuizStore interface {
	Get(ctx context.Context, quizID string) (*model.Quiz, error)
	List(ctx context.Context) ([]model.Quiz, error)
	Upsert(ctx context.Context, q *model.Quiz) error
	Delete(ctx context.Context, quizID string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// QuizService manages the quiz catalog: bundled quizzes seeded at bootstrap
// plus host-authored custom quizzes.
type QuizService struct {
	quizzes QuizStore
	log     zerolog.Logger
}

func NewQuizService(quizzes QuizStore, log zerolog.Logger) *QuizService {
	return &QuizService{
		quizzes: quizzes,
		log:     log.With().Str("component", "quiz_service").Logger(),
	}
}

// List returns catalog summaries sorted by title.
func (s *QuizService) List(ctx context.Context) ([]model.QuizSummary, error) {
	quizzes, err := s.quizzes.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.QuizSummary, 0, len(quizzes))
	for i := range quizzes {
		summaries = append(summaries, quizzes[i].Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Title < summaries[j].Title
	})
	return summaries, nil
}

// Get returns a full quiz definition.
func (s *QuizService) Get(ctx context.Context, quizID string) (*model.Quiz, error) {
	q, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, game.ErrQuizNotFound
	}
	return q, nil
}

// Create stores a new custom quiz and returns it with its assigned id.
func (s *QuizService) Create(ctx context.Context, req *model.CreateQuizRequest) (*model.Quiz, error) {
	q, err := buildQuiz(uuid.NewString(), model.QuizTypeCustom, req)
	if err != nil {
		return nil, err
	}
	if err := s.quizzes.Upsert(ctx, q); err != nil {
		return nil, err
	}
	s.log.Info().Str("quiz_id", q.ID).Str("title", q.Title).Msg("Quiz created")
	return q, nil
}

// Update replaces an existing quiz's title and questions. The quiz keeps its
// id and type.
func (s *QuizService) Update(ctx context.Context, quizID string, req *model.CreateQuizRequest) (*model.Quiz, error) {
	existing, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, game.ErrQuizNotFound
	}

	q, err := buildQuiz(quizID, existing.Type, req)
	if err != nil {
		return nil, err
	}
	if err := s.quizzes.Upsert(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Delete removes a quiz from the catalog. Games already created from it keep
// their own copy of the questions.
func (s *QuizService) Delete(ctx context.Context, quizID string) error {
	deleted, err := s.quizzes.Delete(ctx, quizID)
	if err != nil {
		return err
	}
	if !deleted {
		return game.ErrQuizNotFound
	}
	s.log.Info().Str("quiz_id", quizID).Msg("Quiz deleted")
	return nil
}

// SeedCatalog loads the bundled quizzes into the store, skipping ids that
// already exist so host edits survive restarts. Returns the number seeded.
func (s *QuizService) SeedCatalog(ctx context.Context) (int, error) {
	seeded := 0
	for i := range predefinedQuizzes {
		q := predefinedQuizzes[i]
		existing, err := s.quizzes.Get(ctx, q.ID)
		if err != nil {
			return seeded, err
		}
		if existing != nil {
			continue
		}
		if err := s.quizzes.Upsert(ctx, &q); err != nil {
			return seeded, err
		}
		seeded++
	}
	if seeded > 0 {
		s.log.Info().Int("count", seeded).Msg("Seeded quiz catalog")
	}
	return seeded, nil
}

// buildQuiz validates a create/update payload beyond what request binding
// covers (the correct index must point at a real option).
func buildQuiz(id string, quizType model.QuizType, req *model.CreateQuizRequest) (*model.Quiz, error) {
	questions := make([]model.Question, len(req.Questions))
	for i, qr := range req.Questions {
		if qr.CorrectAnswerIndex < 0 || qr.CorrectAnswerIndex >= len(qr.Options) {
			return nil, &game.Error{
				Code:    game.CodeInvalidQuiz,
				Message: fmt.Sprintf("question %d: correct answer index %d is out of range", i+1, qr.CorrectAnswerIndex),
			}
		}
		questions[i] = model.Question{
			Text:               qr.Text,
			Options:            qr.Options,
			CorrectAnswerIndex: qr.CorrectAnswerIndex,
			IsDoublePoints:     qr.IsDoublePoints,
		}
	}
	return &model.Quiz{
		ID:        id,
		Title:     req.Title,
		Type:      quizType,
		Questions: questions,
	}, nil
}
