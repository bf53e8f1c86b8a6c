package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"feedbackme/internal/microservices/http-api/dto"
	"feedbackme/internal/microservices/http-api/models"
	"feedbackme/internal/microservices/http-api/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const apiKeyAttempts = 3

type ProjectService interface {
	Create(ctx context.Context, userID string, req dto.CreateProjectRequest) (*models.Project, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Project, error)
	Get(ctx context.Context, userID string, projectID int64) (*models.Project, error)
	Update(ctx context.Context, userID string, projectID int64, req dto.UpdateProjectRequest) (*models.Project, error)
	Stats(ctx context.Context, userID string, projectID int64) (*dto.ProjectStatsResponse, error)
	ResolveAPIKey(ctx context.Context, apiKey string) (*models.Project, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	cache       StatsCache
	logger      *slog.Logger
}

func NewProjectService(projectRepo repository.ProjectRepository, cache StatsCache, logger *slog.Logger) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		cache:       cache,
		logger:      logger,
	}
}

// generateAPIKey returns fbme_ followed by 32 hex characters.
func generateAPIKey() string {
	return models.APIKeyPrefix + strings.ReplaceAll(uuid.New().String(), "-", "")
}

func normalizeProjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return "", ErrInvalidProjectName
	}
	return name, nil
}

func normalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *projectService) Create(ctx context.Context, userID string, req dto.CreateProjectRequest) (*models.Project, error) {
	name, err := normalizeProjectName(req.Name)
	if err != nil {
		return nil, err
	}
	if !dto.IsValidDomain(req.Domain) {
		return nil, ErrInvalidDomain
	}

	project := &models.Project{
		Name:        name,
		Description: normalizeDescription(req.Description),
		Domain:      dto.NormalizeDomain(req.Domain),
		UserID:      userID,
		IsActive:    true,
	}

	for attempt := 1; ; attempt++ {
		project.APIKey = generateAPIKey()
		err = s.projectRepo.Create(ctx, project)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt == apiKeyAttempts {
			return nil, fmt.Errorf("failed to create project: %w", err)
		}
	}

	s.logger.Info("project_created", "project_id", project.ID, "user_id", userID, "domain", project.Domain)
	return project, nil
}

func (s *projectService) ListByOwner(ctx context.Context, userID string) ([]models.Project, error) {
	return s.projectRepo.ListByUser(ctx, userID)
}

// owned loads the project and checks the caller owns it.
func (s *projectService) owned(ctx context.Context, userID string, projectID int64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if !project.IsOwnedBy(userID) {
		return nil, ErrNotProjectOwner
	}
	return project, nil
}

func (s *projectService) Get(ctx context.Context, userID string, projectID int64) (*models.Project, error) {
	return s.owned(ctx, userID, projectID)
}

func (s *projectService) Update(ctx context.Context, userID string, projectID int64, req dto.UpdateProjectRequest) (*models.Project, error) {
	if req.IsEmpty() {
		return nil, ErrNothingToUpdate
	}
	if _, err := s.owned(ctx, userID, projectID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		name, err := normalizeProjectName(*req.Name)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = normalizeDescription(req.Description)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	project, err := s.projectRepo.Update(ctx, projectID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	s.logger.Info("project_updated", "project_id", projectID, "is_active", project.IsActive)
	return project, nil
}

// Stats serves the dashboard aggregate, from cache when possible. Cache failures fall back to the database.
func (s *projectService) Stats(ctx context.Context, userID string, projectID int64) (*dto.ProjectStatsResponse, error) {
	if _, err := s.owned(ctx, userID, projectID); err != nil {
		return nil, err
	}

	cached, generation, err := s.cache.Get(ctx, projectID)
	if err != nil {
		s.logger.Warn("stats cache read failed", "project_id", projectID, "error", err)
	}
	if cached != nil {
		return &dto.ProjectStatsResponse{ProjectID: projectID, ProjectStats: *cached, Cached: true}, nil
	}

	stats, err := s.projectRepo.Stats(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	if err := s.cache.Set(ctx, projectID, generation, stats); err != nil {
		s.logger.Warn("stats cache write failed", "project_id", projectID, "error", err)
	}

	return &dto.ProjectStatsResponse{ProjectID: projectID, ProjectStats: *stats}, nil
}

// ResolveAPIKey maps a widget key to its project; unknown or inactive keys are rejected.
func (s *projectService) ResolveAPIKey(ctx context.Context, apiKey string) (*models.Project, error) {
	if !strings.HasPrefix(apiKey, models.APIKeyPrefix) {
		return nil, ErrInvalidAPIKey
	}

	project, err := s.projectRepo.FindByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidAPIKey
		}
		return nil, err
	}
	if !project.IsActive {
		return nil, ErrInvalidAPIKey
	}
	return project, nil
}
