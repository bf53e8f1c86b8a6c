package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"feedbackme/internal/microservices/http-api/dto"
	"feedbackme/internal/microservices/http-api/middleware"
	"feedbackme/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

var kindStatus = map[service.ErrorKind]int{
	service.KindValidation:      http.StatusBadRequest,
	service.KindUnauthenticated: http.StatusUnauthorized,
	service.KindForbidden:       http.StatusForbidden,
	service.KindNotFound:        http.StatusNotFound,
	service.KindConflict:        http.StatusConflict,
	service.KindGone:            http.StatusGone,
}

// respondError maps domain errors onto their status code. Anything else is
// logged and reported as a generic 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	if status, ok := kindStatus[service.KindOf(err)]; ok {
		c.JSON(status, dto.Fail(err.Error()))
		return
	}

	logger.Error("request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"request_id", c.GetString(middleware.ContextRequestID),
		"error", err,
	)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, dto.Fail("Internal server error"))
}

// respondBindError reports malformed or invalid input as 400 with per-field details.
func respondBindError(c *gin.Context, err error) {
	if details := dto.FormatValidationErrors(err); len(details) > 0 {
		c.JSON(http.StatusBadRequest, dto.FailWithDetails("Invalid input", details))
		return
	}
	c.JSON(http.StatusBadRequest, dto.Fail("Invalid request body"))
}

// parseID reads a positive integer path parameter, answering 400 when it is not one.
func parseID(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid "+label+" ID"))
		return 0, false
	}
	return id, true
}
