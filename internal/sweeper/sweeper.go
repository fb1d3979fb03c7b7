// Package sweeper runs the background job that transitions elapsed
// active bookings to done. Cancellation and the uniqueness checks only
// consider active rows, so the sweep is what frees a requester to book
// again after their appointment has passed.
package sweeper

import (
	"context"
	"log"
	"time"

	"appointment-booking-backend/config"
	"appointment-booking-backend/internal/store"
)

// Service periodically marks elapsed active bookings as done.
type Service struct {
	cfg   config.SweeperConfig
	store store.Store
	now   func() time.Time
}

// NewService creates a sweeper over the given store.
func NewService(cfg config.SweeperConfig, s store.Store) *Service {
	return &Service{cfg: cfg, store: s, now: time.Now}
}

// Run starts the sweep loop. It returns when ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Println("Sweeper is disabled. Not starting.")
		return
	}
	log.Println("Starting sweeper service...")

	s.SweepOnce(ctx)

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Sweeper service shutting down.")
			return
		case <-timer.C:
			s.SweepOnce(ctx)
			timer.Reset(s.cfg.Interval)
		}
	}
}

// SweepOnce performs a single sweep cycle.
func (s *Service) SweepOnce(ctx context.Context) {
	n, err := s.store.MarkElapsedDone(ctx, s.now())
	if err != nil {
		log.Printf("Error sweeping elapsed bookings: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Marked %d elapsed bookings as done", n)
	}
}
