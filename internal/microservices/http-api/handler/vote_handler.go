package handler

import (
	"log/slog"
	"net/http"

	"feedbackme/internal/microservices/http-api/dto"
	"feedbackme/internal/microservices/http-api/middleware"
	"feedbackme/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteService service.VoteService
	logger      *slog.Logger
}

func NewVoteHandler(voteService service.VoteService, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{voteService: voteService, logger: logger}
}

// Vote toggles or switches the caller's vote
// POST /api/feedback/:id/vote
func (h *VoteHandler) Vote(c *gin.Context) {
	id, ok := parseID(c, "id", "feedback")
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.voteService.Vote(c.Request.Context(), middleware.UserID(c), id, req.VoteType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(resp))
}

// GetVote returns the counters and the caller's current vote
// GET /api/feedback/:id/vote
func (h *VoteHandler) GetVote(c *gin.Context) {
	id, ok := parseID(c, "id", "feedback")
	if !ok {
		return
	}

	resp, err := h.voteService.GetVote(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(resp))
}
