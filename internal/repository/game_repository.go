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

// GameRepository stores full game session state as JSON blobs in Redis.
// It does no concurrency control: the coordinator serializes access per game
// and Save is a full overwrite of the previous state.
type GameRepository struct {
	rdb *redis.Client
}

func NewGameRepository(rdb *redis.Client) *GameRepository {
	return &GameRepository{rdb: rdb}
}

// Load returns the game with the given id, or (nil, nil) when absent.
func (r *GameRepository) Load(ctx context.Context, gameID string) (*model.Game, error) {
	raw, err := r.rdb.Get(ctx, config.CacheKey.GameStateKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}

	var g model.Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", gameID, err)
	}
	return &g, nil
}

// Save overwrites the game's state blob and refreshes the pin index.
func (r *GameRepository) Save(ctx context.Context, g *model.Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.ID, err)
	}

	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, config.CacheKey.GameStateKey(g.ID), raw, 0)
	pipe.Set(ctx, config.CacheKey.GamePinKey(g.Pin), g.ID, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}
	return nil
}

// ResolvePin returns the game id registered under a join pin, or "" when
// the pin is unknown.
func (r *GameRepository) ResolvePin(ctx context.Context, pin string) (string, error) {
	id, err := r.rdb.Get(ctx, config.CacheKey.GamePinKey(pin)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve pin %s: %w", pin, err)
	}
	return id, nil
}

// Delete removes a game's state blob and its pin index entry.
func (r *GameRepository) Delete(ctx context.Context, g *model.Game) error {
	if err := r.rdb.Del(ctx, config.CacheKey.GameStateKey(g.ID), config.CacheKey.GamePinKey(g.Pin)).Err(); err != nil {
		return fmt.Errorf("delete game %s: %w", g.ID, err)
	}
	return nil
}

// ListIDs scans the store for every stored game id. Used by the sweeper;
// the hot path never enumerates games.
func (r *GameRepository) ListIDs(ctx context.Context) ([]string, error) {
	var (
		ids    []string
		cursor uint64
	)
	for {
		keys, next, err := r.rdb.Scan(ctx, cursor, config.CacheKey.GameStatePattern(), 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scan games: %w", err)
		}
		for _, key := range keys {
			// game:{id}:state
			id := key[len("game:") : len(key)-len(":state")]
			ids = append(ids, id)
		}
		if next == 0 {
			return ids, nil
		}
		cursor = next
	}
}
