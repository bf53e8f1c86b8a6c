package dto

import (
	"time"

	"feedbackme/internal/microservices/http-api/models"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

type CreateFeedbackRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=200"`
	Description string `json:"description" binding:"required,min=10,max=2000"`
	Type        string `json:"type" binding:"required,oneof=feature bug improvement"`
	ProjectID   int64  `json:"projectId" binding:"required,gt=0"`
}

// FeedbackQuery holds the list filters shared by the dashboard and the widget board.
type FeedbackQuery struct {
	ProjectID int64  `form:"projectId"`
	Type      string `form:"type" binding:"omitempty,oneof=feature bug improvement"`
	Status    string `form:"status" binding:"omitempty,oneof=open in-progress closed"`
	Sort      string `form:"sort" binding:"omitempty,oneof=newest oldest votes upvotes"`
	Search    string `form:"q" binding:"omitempty,max=200"`
	Limit     int    `form:"limit" binding:"omitempty,gte=0"`
}

// Normalize applies the default sort and clamps the limit.
func (q *FeedbackQuery) Normalize() {
	if q.Sort == "" {
		q.Sort = "newest"
	}
	q.Limit = ClampLimit(q.Limit)
}

// ClampLimit maps a requested page size onto [1, MaxListLimit], defaulting unset values.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

type FeedbackListResponse struct {
	Feedback  []models.FeedbackItem `json:"feedback"`
	Count     int                   `json:"count"`
	ProjectID int64                 `json:"projectId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open in-progress closed"`
}

type StatusResponse struct {
	ID             int64     `json:"id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
