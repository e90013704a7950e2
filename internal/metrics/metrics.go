// Package metrics exposes the Prometheus instruments for the game backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GamesCreated counts sessions created over the lifetime of the process.
	GamesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizdash_games_created_total",
		Help: "Number of game sessions created.",
	})

	// GamesFinished counts sessions that reached the END phase.
	GamesFinished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizdash_games_finished_total",
		Help: "Number of game sessions that reached END.",
	})

	// PlayersJoined counts fresh player registrations (reconnects excluded).
	PlayersJoined = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizdash_players_joined_total",
		Help: "Number of players registered across all games.",
	})

	// AnswersAccepted counts answer submissions that passed validation.
	AnswersAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizdash_answers_accepted_total",
		Help: "Number of accepted answer submissions.",
	})

	// AnswersRejected counts answer submissions refused by game rules.
	AnswersRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizdash_answers_rejected_total",
		Help: "Number of rejected answer submissions.",
	})

	// WSConnections tracks currently open WebSocket connections.
	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quizdash_ws_connections",
		Help: "Open WebSocket connections.",
	})

	// GamesSwept counts expired sessions removed by the sweeper.
	GamesSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizdash_games_swept_total",
		Help: "Number of expired game sessions evicted from the store.",
	})
)
