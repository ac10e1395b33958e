package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/cvmatch-api/internal/config"
	"github.com/yourusername/cvmatch-api/internal/handler"
	"github.com/yourusername/cvmatch-api/internal/middleware"
	"github.com/yourusername/cvmatch-api/internal/service"
)

func main() {
	// ── Logging ──────────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "" || os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// ── Config ───────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("llm", cfg.LLMProvider).
		Str("jobs", cfg.JobProvider).
		Msg("Starting " + cfg.ProjectName)

	// ── Services ─────────────────────────────────────────
	ctx := context.Background()
	optimizer, err := service.NewCVOptimizer(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize LLM client")
	}
	jobs, err := service.NewJobSearcher(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize job search client")
	}
	extractor := service.NewExtractor()
	renderer := service.NewPDFRenderer(cfg.FontPath)

	// ── Handlers ─────────────────────────────────────────
	healthHandler := handler.NewHealthHandler(cfg.ProjectName)
	cvHandler := handler.NewCVHandler(extractor, optimizer, renderer, jobs, cfg.MaxFileSizeBytes, cfg.DefaultCity)

	// ── Middleware ────────────────────────────────────────
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS)
	defer rateLimiter.Close()

	// ── Router ───────────────────────────────────────────
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxFileSizeBytes + 1<<20
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler.RegisterRoutes(r, healthHandler, cvHandler, rateLimiter.Limit())

	// ── Server ───────────────────────────────────────────
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 30 * time.Second,
		// LLM calls dominate request time
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg(cfg.ProjectName + " running")

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
