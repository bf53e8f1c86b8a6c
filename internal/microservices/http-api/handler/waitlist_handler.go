package handler

import (
	"log/slog"
	"net/http"

	"feedbackme/internal/microservices/http-api/dto"
	"feedbackme/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type WaitlistHandler struct {
	waitlistService service.WaitlistService
	logger          *slog.Logger
}

func NewWaitlistHandler(waitlistService service.WaitlistService, logger *slog.Logger) *WaitlistHandler {
	return &WaitlistHandler{waitlistService: waitlistService, logger: logger}
}

// Join answers 201 for a new registration and 200 when the email was already registered
// POST /api/waitlist
func (h *WaitlistHandler) Join(c *gin.Context) {
	var req dto.WaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.waitlistService.Join(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	status := http.StatusCreated
	if resp.IsExisting {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

// GET /api/waitlist
func (h *WaitlistHandler) Stats(c *gin.Context) {
	stats, err := h.waitlistService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(stats))
}
