package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"feedbackme/database"
	"feedbackme/internal/config"
)

// Applies pending SQL migrations and exits.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dir := flag.String("dir", cfg.MigrationsDir, "directory holding *.sql migrations")
	flag.Parse()

	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	applied, err := database.RunMigrations(ctx, cfg.DatabaseURL, *dir, logger)
	if err != nil {
		logger.Error("migration_failed", "error", err, "applied", applied)
		os.Exit(1)
	}
}
