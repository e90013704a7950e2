package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quizdash/quizdash-backend/internal/config"
	"github.com/quizdash/quizdash-backend/internal/database"
	"github.com/quizdash/quizdash-backend/internal/handler"
	"github.com/quizdash/quizdash-backend/internal/logger"
	"github.com/quizdash/quizdash-backend/internal/repository"
	"github.com/quizdash/quizdash-backend/internal/router"
	"github.com/quizdash/quizdash-backend/internal/service"
	"github.com/quizdash/quizdash-backend/internal/validator"
	"github.com/quizdash/quizdash-backend/internal/websocket"
	"github.com/quizdash/quizdash-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting QuizDash Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	gameRepo := repository.NewGameRepository(rdb)
	quizRepo := repository.NewQuizRepository(rdb)

	// ─── Initialize Hub and Services ───────────────────────────────────
	hub := websocket.NewHub(log)
	quizService := service.NewQuizService(quizRepo, log)
	gameService := service.NewGameService(gameRepo, quizRepo, hub, cfg.QuestionTimeLimit, log)

	// ─── Seed Quiz Catalog ─────────────────────────────────────────────
	// Load the bundled quizzes into the store BEFORE accepting traffic so
	// the default quiz is always creatable.
	if _, err := quizService.SeedCatalog(ctx); err != nil {
		log.Fatal().Err(err).Msg("Quiz catalog seed failed")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Game: handler.NewGameHandler(gameService),
		Quiz: handler.NewQuizHandler(quizService),
		WS:   handler.NewWSHandler(gameService, hub, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	sweeper := worker.NewSweeperWorker(gameRepo, cfg.GameRetention, cfg.SweepInterval, log)
	go sweeper.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the sweeper. Game state is already persisted per operation,
	//    so nothing needs draining.
	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
