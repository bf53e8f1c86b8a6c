package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"feedbackme/internal/metrics"
	"feedbackme/internal/microservices/http-api/dto"
	"feedbackme/internal/microservices/http-api/models"
	"feedbackme/internal/microservices/http-api/repository"
)

const (
	msgWaitlistJoined   = "Successfully joined the waitlist!"
	msgWaitlistExisting = "You're already on the waitlist!"
)

type WaitlistService interface {
	// Join registers the email or reports the existing registration; IsExisting tells which.
	Join(ctx context.Context, req dto.WaitlistRequest) (*dto.WaitlistResponse, error)
	Stats(ctx context.Context) (*dto.WaitlistStats, error)
}

type waitlistService struct {
	waitlistRepo repository.WaitlistRepository
	logger       *slog.Logger
}

func NewWaitlistService(waitlistRepo repository.WaitlistRepository, logger *slog.Logger) WaitlistService {
	return &waitlistService{
		waitlistRepo: waitlistRepo,
		logger:       logger,
	}
}

func (s *waitlistService) Join(ctx context.Context, req dto.WaitlistRequest) (*dto.WaitlistResponse, error) {
	fullName := strings.TrimSpace(req.FullName)
	if utf8.RuneCountInString(fullName) < 2 {
		return nil, ErrInvalidFullName
	}

	reg, created, err := s.waitlistRepo.Register(ctx, &models.WaitlistRegistration{
		FullName: fullName,
		Email:    normalizeEmail(req.Email),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	position, err := s.waitlistRepo.Position(ctx, reg.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute position: %w", err)
	}

	message, result := msgWaitlistJoined, "new"
	if !created {
		message, result = msgWaitlistExisting, "existing"
	}
	metrics.WaitlistSignups.WithLabelValues(result).Inc()
	s.logger.Info("waitlist_signup", "registration_id", reg.ID, "position", position, "result", result)

	return &dto.WaitlistResponse{
		Success:    true,
		Message:    message,
		IsExisting: !created,
		Data: dto.WaitlistEntry{
			ID:        reg.ID,
			Email:     reg.Email,
			Position:  position,
			CreatedAt: reg.CreatedAt,
		},
	}, nil
}

func (s *waitlistService) Stats(ctx context.Context) (*dto.WaitlistStats, error) {
	total, err := s.waitlistRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.WaitlistStats{TotalRegistrations: total}, nil
}
