package service

import (
	"context"
	"fmt"
	"log/slog"

	"feedbackme/internal/microservices/http-api/dto"
	"feedbackme/internal/microservices/http-api/models"
	"feedbackme/internal/microservices/http-api/repository"
)

type NotificationService interface {
	NotifyNewFeedback(ctx context.Context, project *models.Project, item *models.FeedbackItem, actorID string)
	NotifyNewComment(ctx context.Context, project *models.Project, comment *models.Comment, actorID string)
	GetUnread(ctx context.Context, userID string) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, userID string, notificationID int64) error
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	logger           *slog.Logger
}

func NewNotificationService(notificationRepo repository.NotificationRepository, logger *slog.Logger) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// NotifyNewFeedback tells the project owner about feedback someone else submitted.
// Failures are logged, never returned: the feedback itself is already stored.
func (s *notificationService) NotifyNewFeedback(ctx context.Context, project *models.Project, item *models.FeedbackItem, actorID string) {
	if project.IsOwnedBy(actorID) {
		return
	}

	s.create(ctx, &models.Notification{
		UserID:         project.UserID,
		Type:           models.NotificationNewFeedback,
		ProjectID:      &project.ID,
		FeedbackItemID: &item.ID,
		Title:          fmt.Sprintf("New %s on %s", item.Type, project.Name),
		Message:        item.Title,
	})
}

// NotifyNewComment tells the project owner about a comment they did not write.
func (s *notificationService) NotifyNewComment(ctx context.Context, project *models.Project, comment *models.Comment, actorID string) {
	if project.IsOwnedBy(actorID) {
		return
	}

	s.create(ctx, &models.Notification{
		UserID:         project.UserID,
		Type:           models.NotificationNewComment,
		ProjectID:      &project.ID,
		FeedbackItemID: &comment.FeedbackItemID,
		Title:          fmt.Sprintf("New comment on %s", project.Name),
		Message:        comment.Content,
	})
}

func (s *notificationService) create(ctx context.Context, notification *models.Notification) {
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error("failed to create notification",
			"user_id", notification.UserID,
			"type", notification.Type,
			"error", err,
		)
	}
}

func (s *notificationService) GetUnread(ctx context.Context, userID string) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.GetUnreadByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationListResponse{Notifications: notifications, Count: len(notifications)}, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID string, notificationID int64) error {
	updated, err := s.notificationRepo.MarkAsRead(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}
