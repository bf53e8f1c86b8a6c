package repository

import (
	"context"

	"feedbackme/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id int64) (*models.Project, error)
	FindByAPIKey(ctx context.Context, apiKey string) (*models.Project, error)
	ListByUser(ctx context.Context, userID string) ([]models.Project, error)
	Update(ctx context.Context, id int64, updates map[string]any) (*models.Project, error)
	Stats(ctx context.Context, projectID int64) (*models.ProjectStats, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindByAPIKey(ctx context.Context, apiKey string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByUser returns the user's projects, oldest first.
func (r *projectRepository) ListByUser(ctx context.Context, userID string) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&projects).Error
	return projects, err
}

// Update applies the column updates and returns the fresh row.
func (r *projectRepository) Update(ctx context.Context, id int64, updates map[string]any) (*models.Project, error) {
	result := r.db.WithContext(ctx).Model(&models.Project{ID: id}).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

const projectStatsQuery = `
	SELECT
		COUNT(*)                                         AS total_feedback,
		COALESCE(SUM(upvotes + downvotes), 0)            AS total_votes,
		COUNT(*) FILTER (WHERE type = 'feature')         AS feature_requests,
		COUNT(*) FILTER (WHERE type = 'bug')             AS bug_reports,
		COUNT(*) FILTER (WHERE type = 'improvement')     AS improvements,
		COUNT(*) FILTER (WHERE status = 'open')          AS open_items,
		COUNT(*) FILTER (WHERE status = 'in-progress')   AS in_progress_items,
		COUNT(*) FILTER (WHERE status = 'closed')        AS closed_items
	FROM feedback_items
	WHERE project_id = ?
`

// Stats aggregates the project's feedback in a single pass.
func (r *projectRepository) Stats(ctx context.Context, projectID int64) (*models.ProjectStats, error) {
	var stats models.ProjectStats
	if err := r.db.WithContext(ctx).Raw(projectStatsQuery, projectID).Scan(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
