package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"feedbackme/internal/metrics"
	"feedbackme/internal/microservices/http-api/dto"
	"feedbackme/internal/microservices/http-api/models"
	"feedbackme/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type FeedbackService interface {
	Create(ctx context.Context, userID string, req dto.CreateFeedbackRequest) (*models.FeedbackItem, error)
	List(ctx context.Context, query dto.FeedbackQuery) (*dto.FeedbackListResponse, error)
	UpdateStatus(ctx context.Context, userID string, feedbackID int64, status string) (*dto.StatusResponse, error)
}

type feedbackService struct {
	feedbackRepo  repository.FeedbackRepository
	projectRepo   repository.ProjectRepository
	notifications NotificationService
	cache         StatsCache
	logger        *slog.Logger
}

func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	projectRepo repository.ProjectRepository,
	notifications NotificationService,
	cache StatsCache,
	logger *slog.Logger,
) FeedbackService {
	return &feedbackService{
		feedbackRepo:  feedbackRepo,
		projectRepo:   projectRepo,
		notifications: notifications,
		cache:         cache,
		logger:        logger,
	}
}

func (s *feedbackService) findProject(ctx context.Context, projectID int64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// Create submits feedback against an active project. New items start open with zero votes.
func (s *feedbackService) Create(ctx context.Context, userID string, req dto.CreateFeedbackRequest) (*models.FeedbackItem, error) {
	if userID == "" {
		return nil, ErrAuthenticationRequired
	}

	title := strings.TrimSpace(req.Title)
	if utf8.RuneCountInString(title) < 3 {
		return nil, ErrTitleTooShort
	}
	description := strings.TrimSpace(req.Description)
	if utf8.RuneCountInString(description) < 10 {
		return nil, ErrDescriptionShort
	}

	project, err := s.findProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.IsActive {
		return nil, ErrProjectNotFound
	}

	item := &models.FeedbackItem{
		Title:       title,
		Description: description,
		Type:        req.Type,
		Status:      models.FeedbackStatusOpen,
		ProjectID:   project.ID,
		UserID:      &userID,
	}
	if err := s.feedbackRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create feedback item: %w", err)
	}

	s.invalidateStats(ctx, project.ID)
	s.notifications.NotifyNewFeedback(ctx, project, item, userID)
	metrics.FeedbackSubmitted.WithLabelValues(item.Type).Inc()

	s.logger.Info("feedback_created", "feedback_id", item.ID, "project_id", project.ID, "type", item.Type)
	return item, nil
}

func (s *feedbackService) List(ctx context.Context, query dto.FeedbackQuery) (*dto.FeedbackListResponse, error) {
	if query.ProjectID <= 0 {
		return nil, ErrProjectIDRequired
	}
	if _, err := s.findProject(ctx, query.ProjectID); err != nil {
		return nil, err
	}

	query.Normalize()
	items, err := s.feedbackRepo.List(ctx, repository.FeedbackFilter{
		ProjectID: query.ProjectID,
		Type:      query.Type,
		Status:    query.Status,
		Sort:      query.Sort,
		Search:    query.Search,
		Limit:     query.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	s.logger.Debug("feedback_listed", "project_id", query.ProjectID, "count", len(items))
	return &dto.FeedbackListResponse{Feedback: items, Count: len(items), ProjectID: query.ProjectID}, nil
}

// UpdateStatus lets the project owner move an item between open, in-progress and closed in any direction.
func (s *feedbackService) UpdateStatus(ctx context.Context, userID string, feedbackID int64, status string) (*dto.StatusResponse, error) {
	if !models.IsValidFeedbackStatus(status) {
		return nil, newError(KindValidation, "Status must be open, in-progress, or closed")
	}

	item, err := s.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}

	project, err := s.findProject(ctx, item.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.IsOwnedBy(userID) {
		return nil, ErrNotProjectOwner
	}

	previous := item.Status
	updated, err := s.feedbackRepo.UpdateStatus(ctx, feedbackID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	s.invalidateStats(ctx, project.ID)
	s.logger.Info("feedback_status_changed",
		"feedback_id", feedbackID,
		"from", previous,
		"to", updated.Status,
		"user_id", userID,
	)

	return &dto.StatusResponse{
		ID:             updated.ID,
		Status:         updated.Status,
		PreviousStatus: previous,
		UpdatedAt:      updated.UpdatedAt,
	}, nil
}

func (s *feedbackService) invalidateStats(ctx context.Context, projectID int64) {
	if err := s.cache.Invalidate(ctx, projectID); err != nil {
		s.logger.Warn("stats cache invalidation failed", "project_id", projectID, "error", err)
	}
}
