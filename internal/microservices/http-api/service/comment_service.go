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

const minCommentLength = 5

// Actor is the authenticated caller; a nil *Actor is a guest.
type Actor struct {
	UserID string
	Email  string
	Name   string
}

func (a *Actor) id() string {
	if a == nil {
		return ""
	}
	return a.UserID
}

type CommentService interface {
	List(ctx context.Context, query dto.CommentQuery) (*dto.CommentListResponse, error)
	Create(ctx context.Context, actor *Actor, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Update(ctx context.Context, userID string, commentID int64, req dto.UpdateCommentRequest) (*dto.UpdateCommentResponse, error)
	Delete(ctx context.Context, userID string, commentID int64) (*dto.DeleteCommentResponse, error)
}

type commentService struct {
	commentRepo   repository.CommentRepository
	feedbackRepo  repository.FeedbackRepository
	projectRepo   repository.ProjectRepository
	notifications NotificationService
	logger        *slog.Logger
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	feedbackRepo repository.FeedbackRepository,
	projectRepo repository.ProjectRepository,
	notifications NotificationService,
	logger *slog.Logger,
) CommentService {
	return &commentService{
		commentRepo:   commentRepo,
		feedbackRepo:  feedbackRepo,
		projectRepo:   projectRepo,
		notifications: notifications,
		logger:        logger,
	}
}

func (s *commentService) findFeedback(ctx context.Context, feedbackID int64) (*models.FeedbackItem, error) {
	item, err := s.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return item, nil
}

func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) < minCommentLength {
		return "", ErrCommentTooShort
	}
	return content, nil
}

// optionalString trims s and maps blank values to nil.
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// List returns top-level comments with their reply counts, or the replies of one parent.
func (s *commentService) List(ctx context.Context, query dto.CommentQuery) (*dto.CommentListResponse, error) {
	if _, err := s.findFeedback(ctx, query.FeedbackItemID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByItem(ctx, query.FeedbackItemID, query.ParentCommentID, dto.ClampLimit(query.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, dto.FromModelToCommentResponse(&comments[i]))
	}

	if query.ParentCommentID == nil && len(comments) > 0 {
		ids := make([]int64, len(comments))
		for i, c := range comments {
			ids[i] = c.ID
		}
		counts, err := s.commentRepo.CountReplies(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to count replies: %w", err)
		}
		for i := range responses {
			count := counts[responses[i].ID]
			responses[i].ReplyCount = &count
		}
	}

	return &dto.CommentListResponse{
		Comments:        responses,
		Total:           len(responses),
		FeedbackItemID:  query.FeedbackItemID,
		ParentCommentID: query.ParentCommentID,
	}, nil
}

// Create adds a comment as the actor or, when actor is nil, as a guest.
// activeParent loads a non-deleted comment on the item, mapping a miss to ErrParentCommentNotFound.
func (s *commentService) activeParent(ctx context.Context, commentID, feedbackItemID int64) (*models.Comment, error) {
	parent, err := s.commentRepo.GetActiveOnItem(ctx, commentID, feedbackItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentCommentNotFound
		}
		return nil, err
	}
	return parent, nil
}

// Replies to a reply are attached to that reply's parent so threads stay one level deep.
func (s *commentService) Create(ctx context.Context, actor *Actor, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	content, err := normalizeContent(req.Content)
	if err != nil {
		return nil, err
	}

	item, err := s.findFeedback(ctx, req.FeedbackItemID)
	if err != nil {
		return nil, err
	}

	parentID := req.ParentCommentID
	if parentID != nil {
		parent, err := s.activeParent(ctx, *parentID, item.ID)
		if err != nil {
			return nil, err
		}
		if parent.ParentCommentID != nil {
			// the thread root must be live too, or the reply would hang off a hidden comment
			root, err := s.activeParent(ctx, *parent.ParentCommentID, item.ID)
			if err != nil {
				return nil, err
			}
			parentID = &root.ID
		}
	}

	comment := &models.Comment{
		Content:         content,
		FeedbackItemID:  item.ID,
		ParentCommentID: parentID,
		UserEmail:       optionalString(req.UserEmail),
		UserName:        optionalString(req.UserName),
	}
	if actor != nil {
		userID := actor.UserID
		comment.UserID = &userID
		if email := optionalString(&actor.Email); email != nil {
			comment.UserEmail = email
		}
		if name := optionalString(&actor.Name); name != nil {
			comment.UserName = name
		}
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	// reload to pick up the author's profile
	if stored, err := s.commentRepo.GetByID(ctx, comment.ID); err == nil {
		comment = stored
	} else {
		s.logger.Warn("failed to reload comment", "comment_id", comment.ID, "error", err)
	}

	if project, err := s.projectRepo.FindByID(ctx, item.ProjectID); err == nil {
		s.notifications.NotifyNewComment(ctx, project, comment, actor.id())
	} else {
		s.logger.Warn("failed to load project for notification", "project_id", item.ProjectID, "error", err)
	}
	metrics.Comments.WithLabelValues("create").Inc()

	resp := dto.FromModelToCommentResponse(comment)
	if resp.ParentCommentID == nil {
		var zero int64
		resp.ReplyCount = &zero
	}

	s.logger.Info("comment_created",
		"comment_id", comment.ID,
		"feedback_id", item.ID,
		"guest", actor == nil,
	)
	return &resp, nil
}

// Update changes content (author only) and/or the moderation flag (project owner only).
// Checks run in order: not found, forbidden, gone.
func (s *commentService) Update(ctx context.Context, userID string, commentID int64, req dto.UpdateCommentRequest) (*dto.UpdateCommentResponse, error) {
	if userID == "" {
		return nil, ErrAuthenticationRequired
	}
	if req.Content == nil && req.IsModerated == nil {
		return nil, ErrNothingToUpdate
	}

	var content string
	if req.Content != nil {
		var err error
		if content, err = normalizeContent(*req.Content); err != nil {
			return nil, err
		}
	}

	row, err := s.commentRepo.GetWithProjectOwner(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if req.Content != nil && !row.IsAuthoredBy(userID) {
		return nil, ErrNotCommentOwner
	}
	if req.IsModerated != nil && row.ProjectOwnerID != userID {
		return nil, ErrModerationForbidden
	}
	if row.IsDeleted {
		return nil, ErrCommentDeleted
	}

	updates := map[string]any{}
	if req.Content != nil {
		updates["content"] = content
	}
	if req.IsModerated != nil {
		updates["is_moderated"] = *req.IsModerated
	}

	updated, err := s.commentRepo.UpdateActive(ctx, commentID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentDeleted
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	resp := &dto.UpdateCommentResponse{
		Comment: dto.UpdatedComment{
			ID:          updated.ID,
			Content:     updated.Content,
			IsModerated: updated.IsModerated,
			UpdatedAt:   updated.UpdatedAt,
		},
	}
	if req.Content != nil {
		previous := row.Content
		resp.PreviousContent = &previous
		metrics.Comments.WithLabelValues("update").Inc()
	}
	if req.IsModerated != nil {
		metrics.Comments.WithLabelValues("moderate").Inc()
	}

	s.logger.Info("comment_updated", "comment_id", commentID, "user_id", userID, "fields", len(updates))
	return resp, nil
}

// Delete soft-deletes a comment for its author or the project owner.
func (s *commentService) Delete(ctx context.Context, userID string, commentID int64) (*dto.DeleteCommentResponse, error) {
	if userID == "" {
		return nil, ErrAuthenticationRequired
	}

	row, err := s.commentRepo.GetWithProjectOwner(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	isCommentOwner := row.IsAuthoredBy(userID)
	isProjectOwner := row.ProjectOwnerID == userID
	if !isCommentOwner && !isProjectOwner {
		return nil, ErrDeleteForbidden
	}
	if row.IsDeleted {
		return nil, ErrCommentAlreadyDeleted
	}

	deleted, err := s.commentRepo.SoftDelete(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentAlreadyDeleted
		}
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	deletedBy := "comment_owner"
	if isProjectOwner {
		deletedBy = "project_owner"
	}
	metrics.Comments.WithLabelValues("delete").Inc()
	s.logger.Info("comment_deleted", "comment_id", commentID, "user_id", userID, "deleted_by", deletedBy)

	return &dto.DeleteCommentResponse{
		Comment: dto.DeletedComment{
			ID:        deleted.ID,
			IsDeleted: deleted.IsDeleted,
			UpdatedAt: deleted.UpdatedAt,
		},
		DeletedBy: deletedBy,
	}, nil
}
