package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"appointment-booking-backend/config"
	"appointment-booking-backend/internal/engine"
	"appointment-booking-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(e *engine.Engine, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(e)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 10*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/bookings", handler.PostBooking)
		api.PUT("/bookings/reschedule", handler.PutReschedule)
		api.PUT("/bookings/cancel", handler.PutCancel)

		// Availability is the hot read path; a short-lived cache keeps
		// repeated polls off the store.
		api.GET("/availability", caching, handler.GetAvailability)
	}

	return r
}
