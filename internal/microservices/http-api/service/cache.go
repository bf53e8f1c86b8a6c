package service

import (
	"context"

	"feedbackme/internal/microservices/http-api/models"
)

// StatsCache is the project stats cache; *repository.StatsCache implements it and is a no-op when nil.
type StatsCache interface {
	// Get also returns the project's cache generation, to be handed back to Set.
	Get(ctx context.Context, projectID int64) (*models.ProjectStats, int64, error)
	// Set skips the write when the project was invalidated since generation was read.
	Set(ctx context.Context, projectID, generation int64, stats *models.ProjectStats) error
	Invalidate(ctx context.Context, projectID int64) error
}
