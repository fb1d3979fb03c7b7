package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"appointment-booking-backend/internal/parse"
)

type scheduleRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact" binding:"required,email"`
	Time    string `json:"time" binding:"required"`
}

// PostBooking handles POST /api/bookings.
func (h *Handler) PostBooking(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	t, err := parse.Timestamp(req.Time)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	booking, err := h.engine.Schedule(c.Request.Context(), req.Name, req.Contact, t)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

type rescheduleRequest struct {
	Contact string `json:"contact" binding:"required,email"`
	NewTime string `json:"new_time" binding:"required"`
}

// PutReschedule handles PUT /api/bookings/reschedule.
func (h *Handler) PutReschedule(c *gin.Context) {
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	t, err := parse.Timestamp(req.NewTime)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	booking, err := h.engine.Reschedule(c.Request.Context(), req.Contact, t)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

type cancelRequest struct {
	Contact string `json:"contact" binding:"required,email"`
}

// PutCancel handles PUT /api/bookings/cancel.
func (h *Handler) PutCancel(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.engine.Cancel(c.Request.Context(), req.Contact); err != nil {
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
