package worker

import (
	"context"
	"time"

	"github.com/quizdash/quizdash-backend/internal/metrics"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/quizdash/quizdash-backend/internal/repository"
	"github.com/rs/zerolog"
)

// SweeperWorker evicts expired game sessions from the store. Games are
// ephemeral: once older than the retention window they are removed whether
// they finished or were abandoned in any phase, and their pins return to
// the pool.
type SweeperWorker struct {
	games     *repository.GameRepository
	log       zerolog.Logger
	retention time.Duration
	interval  time.Duration
}

func NewSweeperWorker(games *repository.GameRepository, retention, interval time.Duration, log zerolog.Logger) *SweeperWorker {
	return &SweeperWorker{
		games:     games,
		log:       log.With().Str("component", "sweeper_worker").Logger(),
		retention: retention,
		interval:  interval,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (w *SweeperWorker) Start(ctx context.Context) {
	w.log.Info().
		Dur("retention", w.retention).
		Dur("interval", w.interval).
		Msg("SweeperWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("SweeperWorker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *SweeperWorker) sweep(ctx context.Context) {
	ids, err := w.games.ListIDs(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Scan failed")
		return
	}

	now := time.Now().UnixMilli()
	swept := 0
	for _, id := range ids {
		g, err := w.games.Load(ctx, id)
		if err != nil {
			w.log.Error().Err(err).Str("game_id", id).Msg("Load failed")
			continue
		}
		if g == nil {
			continue
		}
		if !w.expired(g, now) {
			continue
		}
		if err := w.games.Delete(ctx, g); err != nil {
			w.log.Error().Err(err).Str("game_id", id).Msg("Delete failed")
			continue
		}
		swept++
		metrics.GamesSwept.Inc()
	}

	if swept > 0 {
		w.log.Info().Int("count", swept).Int("scanned", len(ids)).Msg("Swept expired games")
	}
}

func (w *SweeperWorker) expired(g *model.Game, nowMs int64) bool {
	age := time.Duration(nowMs-g.CreatedAt) * time.Millisecond
	return age > w.retention
}
