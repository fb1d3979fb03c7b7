// Package engine implements the scheduling core: it validates booking
// requests against the business-hour window and the slot grid, computes
// a day's free slots, and orchestrates the booking store so that the
// uniqueness invariants (one active booking per requester, one per slot)
// hold across concurrent callers.
package engine

import (
	"context"
	"errors"
	"time"

	"appointment-booking-backend/internal/model"
	"appointment-booking-backend/internal/schedule"
	"appointment-booking-backend/internal/store"
)

// Notifier receives a booking after its transaction has committed.
// Implementations must not block; delivery is best-effort and its
// failure never affects the booking.
type Notifier interface {
	BookingConfirmed(booking model.Booking)
}

// Engine exposes the schedule / availability / reschedule / cancel
// operations. It is stateless between calls; all state lives in the
// store.
type Engine struct {
	store    store.Store
	window   schedule.Window
	notifier Notifier
	timeout  time.Duration
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets the post-commit notification sink.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithStoreTimeout bounds every store call. Exceeding it surfaces as
// ErrStoreUnavailable.
func WithStoreTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithClock overrides the engine's notion of "now". Used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates a scheduling engine on top of the given store and window.
func New(s store.Store, window schedule.Window, opts ...Option) *Engine {
	e := &Engine{
		store:   s,
		window:  window,
		timeout: 5 * time.Second,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Schedule validates the requested time and persists a new active
// booking. Validation order is fixed; the first failure wins.
func (e *Engine) Schedule(ctx context.Context, name, contact string, t time.Time) (*model.Booking, error) {
	if err := e.validateSlot(ctx, t); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		RequesterName:    name,
		RequesterContact: contact,
		ScheduledAt:      t,
	}

	storeCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	if err := e.store.Insert(storeCtx, booking); err != nil {
		return nil, translateStoreErr(err)
	}

	e.notify(*booking)
	return booking, nil
}

// CheckAvailability returns the ordered free slot start-times for the
// calendar day containing day.
func (e *Engine) CheckAvailability(ctx context.Context, day time.Time) ([]time.Time, error) {
	if schedule.Day(day).Before(schedule.Day(e.now())) {
		return nil, ErrPastDate
	}

	free, err := e.freeSlots(ctx, day)
	if err != nil {
		return nil, err
	}
	if len(free) == 0 {
		return nil, ErrNoAvailability
	}
	return free, nil
}

// Reschedule moves the contact's active booking to newTime, applying the
// same validation chain as Schedule.
func (e *Engine) Reschedule(ctx context.Context, contact string, newTime time.Time) (*model.Booking, error) {
	if err := e.validateSlot(ctx, newTime); err != nil {
		return nil, err
	}

	storeCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	booking, err := e.store.UpdateSchedule(storeCtx, contact, newTime)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	e.notify(*booking)
	return booking, nil
}

// Cancel transitions the contact's active booking to cancelled.
func (e *Engine) Cancel(ctx context.Context, contact string) error {
	storeCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	if err := e.store.Cancel(storeCtx, contact); err != nil {
		return translateStoreErr(err)
	}
	return nil
}

// validateSlot runs the fixed pre-write validation chain for a requested
// booking time: past-time, grid alignment, business hours, then free-set
// membership.
func (e *Engine) validateSlot(ctx context.Context, t time.Time) error {
	if t.Before(e.now()) {
		return ErrPastTime
	}
	if !e.window.Aligned(t) {
		return ErrInvalidGranularity
	}
	if !e.window.Contains(t) {
		return ErrOutsideBusinessHours
	}

	free, err := e.freeSlots(ctx, t)
	if err != nil {
		return err
	}
	for _, slot := range free {
		if slot.Equal(t) {
			return nil
		}
	}
	return ErrSlotUnavailable
}

// freeSlots subtracts the day's active bookings from the generated slot
// sequence, dropping already-elapsed slots when the day is today.
func (e *Engine) freeSlots(ctx context.Context, day time.Time) ([]time.Time, error) {
	storeCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	booked, err := e.store.FindActiveByDay(storeCtx, day)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	// Keyed on Unix seconds: the driver may hand timestamps back in a
	// different location, and map lookup on time.Time compares wall
	// clock plus location.
	taken := make(map[int64]struct{}, len(booked))
	for _, b := range booked {
		taken[b.ScheduledAt.Unix()] = struct{}{}
	}

	now := e.now()
	today := schedule.Day(day).Equal(schedule.Day(now))

	var free []time.Time
	for _, slot := range e.window.Slots(day) {
		if _, ok := taken[slot.Unix()]; ok {
			continue
		}
		if today && !slot.After(now) {
			continue
		}
		free = append(free, slot)
	}
	return free, nil
}

func (e *Engine) notify(booking model.Booking) {
	if e.notifier != nil {
		e.notifier.BookingConfirmed(booking)
	}
}

// translateStoreErr maps store sentinels and timeouts onto the engine's
// error taxonomy. Unknown errors pass through for the transport layer to
// report as internal.
func translateStoreErr(err error) error {
	switch {
	case errors.Is(err, store.ErrDuplicateActiveBooking):
		return ErrDuplicateActiveBooking
	case errors.Is(err, store.ErrSlotTaken):
		return ErrSlotUnavailable
	case errors.Is(err, store.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return ErrStoreUnavailable
	}
	return err
}
