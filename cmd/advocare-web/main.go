package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhruvywuvy/advocare-demo-day/internal/config"
	"github.com/dhruvywuvy/advocare-demo-day/internal/database"
	httpapi "github.com/dhruvywuvy/advocare-demo-day/internal/http"
	"github.com/dhruvywuvy/advocare-demo-day/internal/logger"
	"github.com/dhruvywuvy/advocare-demo-day/internal/repository"
	"github.com/dhruvywuvy/advocare-demo-day/internal/service"
	"github.com/dhruvywuvy/advocare-demo-day/internal/store"
	"github.com/dhruvywuvy/advocare-demo-day/internal/validate"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "advocare-web")
	if err != nil {
		log, _ = zap.NewProduction()
	}
	defer log.Sync()

	// Sessions live in Redis; fall back to process memory when Redis is
	// unreachable so local dev still has working logins.
	var sessions store.KV
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err == nil {
		sessions = store.NewRedisKV(redisClient)
	} else {
		log.Warn("Redis unavailable, using in-memory sessions", zap.Error(err))
		sessions = store.NewMemoryKV()
	}

	// Optional DB-backed persistence; memory repos keep every flow
	// usable when the DB is disabled or down.
	var db *sql.DB
	var waitlistRepo repository.WaitlistRepository = repository.NewMemoryWaitlistRepo()
	var archiveRepo repository.AnalysisArchiveRepository = repository.NewMemoryAnalysisArchiveRepo()
	var usersRepo repository.UsersRepository = repository.NewMemoryUsersRepo()
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			waitlistRepo = repository.NewPostgresWaitlistRepository(db)
			archiveRepo = repository.NewPostgresAnalysisArchiveRepository(db)
			usersRepo = repository.NewPostgresUsersRepository(db)
			log.Info("DB enabled for advocare-web")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory repos", zap.Error(err))
		}
	}

	results := store.NewResultStore()
	policy := validate.UploadPolicy{
		MaxFileSize:  cfg.Upload.MaxFileSize,
		MaxTotalSize: cfg.Upload.MaxTotalSize,
		MaxFiles:     cfg.Upload.MaxFiles,
	}

	analysisClient := service.NewAnalysisClient(cfg.Analysis.BaseURL, cfg.Analysis.Timeout, log)
	pipeline := service.NewSubmissionService(
		analysisClient,
		results,
		waitlistRepo,
		archiveRepo,
		policy,
		true,
		cfg.Analysis.Timeout,
		log,
	)
	waitlistService := service.NewWaitlistService(waitlistRepo, log)
	authService := service.NewAuthService(usersRepo, sessions, cfg.Session.TTL, log)

	router := httpapi.NewRouter(log)
	router.RegisterAnalyzeRoutes(
		httpapi.NewAnalyzeHandler(pipeline, log),
		httpapi.NewResultsHandler(results, log),
	)
	router.RegisterWaitlistRoutes(httpapi.NewWaitlistHandler(waitlistService, log))
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authService, log))
	router.RegisterHealthRoutes()

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server exited", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)

	// Let queued best-effort writes settle before the repos go away.
	pipeline.Flush()

	_ = redisClient.Close()
	_ = database.Close(db)
}
