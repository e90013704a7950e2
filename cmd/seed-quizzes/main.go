package main

import (
	"context"
	"fmt"
	"time"

	"github.com/quizdash/quizdash-backend/internal/config"
	"github.com/quizdash/quizdash-backend/internal/database"
	"github.com/quizdash/quizdash-backend/internal/logger"
	"github.com/quizdash/quizdash-backend/internal/repository"
	"github.com/quizdash/quizdash-backend/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	quizRepo := repository.NewQuizRepository(rdb)
	quizService := service.NewQuizService(quizRepo, log)

	fmt.Println("=== Seeding Quiz Catalog ===")

	seeded, err := quizService.SeedCatalog(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}

	total, err := quizRepo.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Count failed")
	}

	fmt.Printf("\nSeed completed! Added %d quizzes (%d total in catalog).\n", seeded, total)
}
