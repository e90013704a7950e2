package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quizdash/quizdash-backend/internal/config"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// QuizRepository stores the quiz catalog: one JSON blob per quiz plus a set
// index of known ids.
type QuizRepository struct {
	rdb *redis.Client
}

func NewQuizRepository(rdb *redis.Client) *QuizRepository {
	return &QuizRepository{rdb: rdb}
}

// Get returns the quiz with the given id, or (nil, nil) when absent.
func (r *QuizRepository) Get(ctx context.Context, quizID string) (*model.Quiz, error) {
	raw, err := r.rdb.Get(ctx, config.CacheKey.QuizKey(quizID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz %s: %w", quizID, err)
	}

	var q model.Quiz
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, fmt.Errorf("decode quiz %s: %w", quizID, err)
	}
	return &q, nil
}

// List returns every quiz in the catalog. Index entries whose blob has gone
// missing are skipped.
func (r *QuizRepository) List(ctx context.Context) ([]model.Quiz, error) {
	ids, err := r.rdb.SMembers(ctx, config.CacheKey.QuizIndexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}

	quizzes := make([]model.Quiz, 0, len(ids))
	for _, id := range ids {
		q, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if q == nil {
			continue
		}
		quizzes = append(quizzes, *q)
	}
	return quizzes, nil
}

// Upsert writes the quiz blob and registers its id in the index.
func (r *QuizRepository) Upsert(ctx context.Context, q *model.Quiz) error {
	raw, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode quiz %s: %w", q.ID, err)
	}

	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, config.CacheKey.QuizKey(q.ID), raw, 0)
	pipe.SAdd(ctx, config.CacheKey.QuizIndexKey(), q.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save quiz %s: %w", q.ID, err)
	}
	return nil
}

// Delete removes a quiz and its index entry. Returns false when the quiz
// did not exist.
func (r *QuizRepository) Delete(ctx context.Context, quizID string) (bool, error) {
	pipe := r.rdb.TxPipeline()
	del := pipe.Del(ctx, config.CacheKey.QuizKey(quizID))
	pipe.SRem(ctx, config.CacheKey.QuizIndexKey(), quizID)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("delete quiz %s: %w", quizID, err)
	}
	return del.Val() > 0, nil
}

// Count returns the number of quizzes in the catalog index.
func (r *QuizRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.rdb.SCard(ctx, config.CacheKey.QuizIndexKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("count quizzes: %w", err)
	}
	return n, nil
}
