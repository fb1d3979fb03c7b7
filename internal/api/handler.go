package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"appointment-booking-backend/internal/engine"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	engine *engine.Engine
}

// NewHandler creates a new API handler.
func NewHandler(e *engine.Engine) *Handler {
	return &Handler{engine: e}
}

// writeEngineError maps an engine error onto an HTTP response with the
// stable machine-readable code in the body.
func writeEngineError(c *gin.Context, err error) {
	var engErr *engine.Error
	if errors.As(err, &engErr) {
		c.AbortWithStatusJSON(statusFor(engErr.Kind), gin.H{
			"error":   engErr.Code,
			"message": engErr.Message,
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":   "INTERNAL",
		"message": "internal server error",
	})
}

func statusFor(kind engine.Kind) int {
	switch kind {
	case engine.KindValidation:
		return http.StatusBadRequest
	case engine.KindConflict:
		return http.StatusConflict
	case engine.KindNotFound:
		return http.StatusNotFound
	case engine.KindTransient:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   "INVALID_REQUEST",
		"message": message,
	})
}
