package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"appointment-booking-backend/internal/parse"
)

// GetAvailability handles GET /api/availability?date=YYYY-MM-DD.
func (h *Handler) GetAvailability(c *gin.Context) {
	dateParam := c.Query("date")
	if dateParam == "" {
		badRequest(c, "date query parameter is required")
		return
	}

	day, err := parse.Day(dateParam)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	slots, err := h.engine.CheckAvailability(c.Request.Context(), day)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	formatted := make([]string, len(slots))
	for i, slot := range slots {
		formatted[i] = slot.Format("2006-01-02T15:04")
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  day.Format("2006-01-02"),
		"slots": formatted,
	})
}
