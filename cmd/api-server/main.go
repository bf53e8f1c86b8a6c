package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedbackme/database"
	"feedbackme/internal/config"
	"feedbackme/internal/metrics"
	"feedbackme/internal/microservices/http-api/handler"
	"feedbackme/internal/microservices/http-api/middleware"
	"feedbackme/internal/microservices/http-api/repository"
	"feedbackme/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := config.NewLogger(cfg)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server_error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if _, err := database.RunMigrations(ctx, cfg.DatabaseURL, cfg.MigrationsDir, logger); err != nil {
			return err
		}
	}

	db, err := database.ConnectDB(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db, logger)

	// Stats cache is optional; without REDIS_URL every read goes to the database.
	var statsCache *repository.StatsCache
	if cfg.RedisURL != "" {
		statsCache, err = repository.NewStatsCache(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.CacheExpiry())
		if err != nil {
			logger.Warn("stats cache disabled", "error", err)
			statsCache = nil
		} else {
			defer statsCache.Close()
			logger.Info("Connected to Redis", "ttl", cfg.CacheExpiry())
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	waitlistRepo := repository.NewWaitlistRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	notificationService := service.NewNotificationService(notificationRepo, logger)
	services := handler.Services{
		Auth:          service.NewAuthService(userRepo, cfg, logger),
		Projects:      service.NewProjectService(projectRepo, statsCache, logger),
		Feedback:      service.NewFeedbackService(feedbackRepo, projectRepo, notificationService, statsCache, logger),
		Votes:         service.NewVoteService(voteRepo, feedbackRepo, statsCache, logger),
		Comments:      service.NewCommentService(commentRepo, feedbackRepo, projectRepo, notificationService, logger),
		Waitlist:      service.NewWaitlistService(waitlistRepo, logger),
		Notifications: notificationService,
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx.Done())

	opts := handler.RouterOptions{
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Limiter:        limiter,
		TrustedProxies: cfg.TrustedProxies,
		Database: handler.PingFunc(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}),
	}
	if statsCache != nil {
		opts.Cache = statsCache
	}
	if cfg.PrometheusEnabled {
		opts.Metrics = metrics.Handler(logger)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler.NewRouter(services, opts, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_http_server", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server_stopped_gracefully")
	return nil
}
