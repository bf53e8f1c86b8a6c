package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"feedbackme/internal/metrics"
	"feedbackme/internal/microservices/http-api/dto"
	"feedbackme/internal/microservices/http-api/models"
	"feedbackme/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type VoteService interface {
	Vote(ctx context.Context, userID string, feedbackID int64, voteType string) (*dto.VoteResponse, error)
	GetVote(ctx context.Context, userID string, feedbackID int64) (*dto.VoteStatusResponse, error)
}

type voteService struct {
	voteRepo     repository.VoteRepository
	feedbackRepo repository.FeedbackRepository
	cache        StatsCache
	logger       *slog.Logger
}

func NewVoteService(
	voteRepo repository.VoteRepository,
	feedbackRepo repository.FeedbackRepository,
	cache StatsCache,
	logger *slog.Logger,
) VoteService {
	return &voteService{
		voteRepo:     voteRepo,
		feedbackRepo: feedbackRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Vote adds, removes or switches the caller's vote on a feedback item.
func (s *voteService) Vote(ctx context.Context, userID string, feedbackID int64, voteType string) (*dto.VoteResponse, error) {
	if userID == "" {
		return nil, ErrAuthenticationRequired
	}
	if !models.IsValidVoteType(voteType) {
		return nil, ErrInvalidVoteType
	}

	outcome, err := s.voteRepo.Apply(ctx, feedbackID, userID, voteType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to apply vote: %w", err)
	}

	if err := s.cache.Invalidate(ctx, outcome.ProjectID); err != nil {
		s.logger.Warn("stats cache invalidation failed", "project_id", outcome.ProjectID, "error", err)
	}
	metrics.Votes.WithLabelValues(outcome.Transition.Action).Inc()

	s.logger.Info("vote_applied",
		"feedback_id", feedbackID,
		"user_id", userID,
		"action", outcome.Transition.Action,
		"upvotes", outcome.Upvotes,
		"downvotes", outcome.Downvotes,
	)

	return &dto.VoteResponse{
		FeedbackID: feedbackID,
		Upvotes:    outcome.Upvotes,
		Downvotes:  outcome.Downvotes,
		UserVote:   outcome.Transition.Result,
		Action:     outcome.Transition.Action,
	}, nil
}

// GetVote returns the item's counters and the caller's current vote, if any.
func (s *voteService) GetVote(ctx context.Context, userID string, feedbackID int64) (*dto.VoteStatusResponse, error) {
	if userID == "" {
		return nil, ErrAuthenticationRequired
	}

	item, err := s.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}

	resp := &dto.VoteStatusResponse{
		FeedbackID: item.ID,
		Upvotes:    item.Upvotes,
		Downvotes:  item.Downvotes,
	}

	vote, err := s.voteRepo.FindByUserAndItem(ctx, userID, feedbackID)
	switch {
	case err == nil:
		resp.UserVote = &vote.VoteType
		resp.VotedAt = &vote.CreatedAt
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	return resp, nil
}
