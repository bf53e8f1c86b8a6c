package handler

import (
	"log/slog"
	"net/http"

	"feedbackme/internal/microservices/http-api/dto"
	"feedbackme/internal/microservices/http-api/middleware"
	"feedbackme/internal/microservices/http-api/models"
	"feedbackme/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackService service.FeedbackService
	logger          *slog.Logger
}

func NewFeedbackHandler(feedbackService service.FeedbackService, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService, logger: logger}
}

// Create submits feedback to a project
// POST /api/feedback
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req dto.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.feedbackService.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKWithMessage("Feedback submitted successfully", item))
}

// List returns a project's feedback, filtered and sorted
// GET /api/feedback?projectId=&type=&status=&sort=&q=&limit=
func (h *FeedbackHandler) List(c *gin.Context) {
	var query dto.FeedbackQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	h.list(c, query)
}

// ListForWidget serves the public board of the project resolved from X-API-Key
// GET /api/widget/feedback
func (h *FeedbackHandler) ListForWidget(c *gin.Context) {
	var query dto.FeedbackQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	project := c.MustGet(middleware.ContextProject).(*models.Project)
	query.ProjectID = project.ID
	h.list(c, query)
}

func (h *FeedbackHandler) list(c *gin.Context, query dto.FeedbackQuery) {
	resp, err := h.feedbackService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(resp))
}

// UpdateStatus moves an item between open, in-progress and closed
// PATCH /api/feedback/:id/status
func (h *FeedbackHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "feedback")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.feedbackService.UpdateStatus(c.Request.Context(), middleware.UserID(c), id, req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKWithMessage("Status updated", resp))
}
