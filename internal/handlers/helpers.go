package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "amanah/internal/errors"
	"amanah/internal/logger"
)

// ErrorResponse is the JSON error payload returned to clients.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// respondWithError writes the error payload for the given error. AppErrors
// use their own status code and message; the details field carries the
// error code, or the internal diagnostic for persistence failures where
// the caller needs it for remediation. Unexpected errors are logged and
// returned as a generic internal error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		details := appErr.Code
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
			details = fmt.Sprintf("%s: %v", appErr.Code, appErr.Internal)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{
			Error:   appErr.Message,
			Details: details,
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{
		Error:   apperrors.ErrInternalServer.Message,
		Details: apperrors.ErrInternalServer.Code,
	})
}

// parseFlexibleTime parses timestamps in RFC 3339 or date-only form.
func parseFlexibleTime(value string) (time.Time, error) {
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp format: %q (expected ISO 8601)", value)
}
