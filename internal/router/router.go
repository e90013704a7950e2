package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quizdash/quizdash-backend/internal/config"
	"github.com/quizdash/quizdash-backend/internal/handler"
	"github.com/quizdash/quizdash-backend/internal/middleware"
	"github.com/quizdash/quizdash-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Game *handler.GameHandler
	Quiz *handler.QuizHandler
	WS   *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID", handler.HeaderHostSecret}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check and Prometheus metrics.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limiter for the public join and answer routes (60 per minute per
	// IP; a full game of answers stays well under this).
	playLimiter := middleware.NewRateLimiter(60, time.Minute)

	// ─── 1. Games Group ────────────────────────────────────────────────
	games := router.Group("/api/v1/games")
	{
		games.POST("", handlers.Game.Create)
		games.GET("/pin/:pin", handlers.Game.ResolvePin)
		games.GET("/:game_id", handlers.Game.Get)
		games.GET("/:game_id/full", handlers.Game.GetFull)
		games.POST("/:game_id/players", playLimiter.Middleware(), handlers.Game.Join)
		games.POST("/:game_id/answer", playLimiter.Middleware(), handlers.Game.Answer)

		// Host control (X-Host-Secret header).
		games.POST("/:game_id/start", handlers.Game.Start)
		games.POST("/:game_id/next", handlers.Game.Next)
	}

	// ─── 2. Quiz Catalog Group ─────────────────────────────────────────
	quizzes := router.Group("/api/v1/quizzes")
	{
		quizzes.GET("", handlers.Quiz.List)
		quizzes.POST("", handlers.Quiz.Create)
		quizzes.GET("/:quiz_id", handlers.Quiz.Get)
		quizzes.PUT("/:quiz_id", handlers.Quiz.Update)
		quizzes.DELETE("/:quiz_id", handlers.Quiz.Delete)
	}

	// ─── 3. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/games/:game_id/stream", handlers.WS.GameStream)
	}

	return router
}
