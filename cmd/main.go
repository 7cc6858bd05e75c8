// jobscout dashboard-service
//
// Personal job-search tracking backend:
//   - scouting: LLM search cycles discover postings (cron + on demand)
//   - triage:   Kanban pipeline new → saved → … → offer / archived
//   - views:    filter/sort and aggregation engines for the dashboard
//   - résumé:   base document plus per-job tailored variants
//
// Change events are published to Redis and forwarded to clients as SSE.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"jobscout/dashboard-service/internal/api"
	"jobscout/dashboard-service/internal/config"
	"jobscout/dashboard-service/internal/db"
	"jobscout/dashboard-service/internal/kanban"
	"jobscout/dashboard-service/internal/llm"
	"jobscout/dashboard-service/internal/logging"
	"jobscout/dashboard-service/internal/resume"
	"jobscout/dashboard-service/internal/scout"
)

func main() {
	_ = godotenv.Load() // optional .env for local runs

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("postgres connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()
	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Error("schema bootstrap failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("postgres connected")

	// Redis (optional, change events off without it)
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("redis connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Info("redis connected")
	} else {
		logger.Warn("REDIS_URL not set, change events disabled")
	}

	// Services
	svc := kanban.NewService(pool, rdb, logger)
	resumeStore := resume.NewStore(pool)

	model, err := llm.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		logger.Error("llm client failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pipeline := scout.NewPipeline(scout.Config{
		Store:     svc,
		Searcher:  model,
		Analyzer:  model,
		Kits:      model,
		PaceDelay: cfg.ScoutPace,
		Logger:    logger,
	})

	if cfg.ScoutIntervalHours > 0 {
		scheduler := scout.NewScheduler(pipeline, cfg.ScoutRole, cfg.ScoutLocation,
			cfg.ScoutIntervalHours, logger)
		if err := scheduler.Start(ctx); err != nil {
			logger.Error("scheduler failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer scheduler.Stop()
	}

	// HTTP server
	handler := api.NewHandler(svc, resumeStore, pipeline, model, logger)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE streams stay open
	}

	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}
	logger.Info("stopped")
}
