package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"feedbackme/internal/microservices/http-api/dto"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	database Pinger
	cache    Pinger // optional
	logger   *slog.Logger
}

func NewHealthHandler(database, cache Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{database: database, cache: cache, logger: logger}
}

// Health reports 200 once the database answers; a failing cache only degrades the status.
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.database.Ping(ctx); err != nil {
		h.logger.Error("health check failed", "component", "database", "error", err)
		c.JSON(http.StatusServiceUnavailable, dto.Fail("Database unavailable"))
		return
	}

	data := gin.H{"status": "ok", "database": "up"}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			h.logger.Warn("health check degraded", "component", "cache", "error", err)
			data["cache"] = "down"
			data["status"] = "degraded"
		} else {
			data["cache"] = "up"
		}
	}

	c.JSON(http.StatusOK, dto.OK(data))
}
