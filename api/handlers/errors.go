package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"text-assistant/aiclient"
	"text-assistant/dto"
	"text-assistant/services"
	"text-assistant/trace"
)

// writeError emits the structured error envelope every non-2xx
// response carries.
func writeError(c *gin.Context, status int, code, message, errType string, retryable bool, details map[string]any) {
	c.JSON(status, dto.ErrorResponse{
		ErrorCode:   code,
		Message:     message,
		Details:     details,
		Timestamp:   time.Now().UTC(),
		RequestID:   trace.RequestIDFromContext(c.Request.Context()),
		ErrorType:   errType,
		IsRetryable: retryable,
	})
}

// writeValidationError reports the full violation list in one round
// trip.
func writeValidationError(c *gin.Context, violations []string) {
	writeError(c, http.StatusUnprocessableEntity,
		"VALIDATION_ERROR", "Request validation failed", "validation_error", false,
		map[string]any{"validation_errors": violations})
}

// writeProcessingError maps pipeline failures onto HTTP statuses while
// preserving the cause's retryable flag.
func writeProcessingError(c *gin.Context, perr *services.ProcessingError) {
	switch perr.Kind {
	case services.KindEmptyInput:
		writeError(c, http.StatusBadRequest,
			"EMPTY_TEXT", perr.Error(), "processing_error", false, nil)
	case services.KindCompletion:
		status := http.StatusBadGateway
		code := "AI_SERVICE_ERROR"
		var cerr *aiclient.CompletionError
		if errors.As(perr.Err, &cerr) && cerr.Kind == aiclient.KindTimeout {
			status = http.StatusGatewayTimeout
			code = "AI_SERVICE_TIMEOUT"
		}
		writeError(c, status, code, perr.Error(), "ai_service_error", perr.Retryable,
			map[string]any{"operation": perr.Op.String()})
	default:
		writeError(c, http.StatusInternalServerError,
			"INTERNAL_ERROR", "Text processing failed", "internal_error", perr.Retryable, nil)
	}
}

// writeDatabaseError covers read-path store failures.
func writeDatabaseError(c *gin.Context) {
	writeError(c, http.StatusInternalServerError,
		"DATABASE_ERROR", "Database operation failed", "database_error", true, nil)
}
