// Package schedule implements the pure slot-grid math for the booking
// engine: generating a day's candidate slot start-times and checking a
// single timestamp against the business-hour window and the grid.
package schedule

import (
	"fmt"
	"time"
)

// Window describes the daily bookable window [open, close) and the fixed
// spacing between consecutive slot start-times.
type Window struct {
	openMinutes  int // minutes since midnight
	closeMinutes int
	slot         time.Duration
}

// NewWindow builds a Window from "15:04"-formatted open/close times and a
// slot duration in minutes.
func NewWindow(open, close string, slotMinutes int) (Window, error) {
	o, err := parseClock(open)
	if err != nil {
		return Window{}, fmt.Errorf("invalid open time %q: %w", open, err)
	}
	c, err := parseClock(close)
	if err != nil {
		return Window{}, fmt.Errorf("invalid close time %q: %w", close, err)
	}
	if c <= o {
		return Window{}, fmt.Errorf("close time %q is not after open time %q", close, open)
	}
	if slotMinutes <= 0 {
		return Window{}, fmt.Errorf("slot duration must be positive, got %d minutes", slotMinutes)
	}
	return Window{
		openMinutes:  o,
		closeMinutes: c,
		slot:         time.Duration(slotMinutes) * time.Minute,
	}, nil
}

// Default is the 08:00-17:00 window with 30-minute slots.
func Default() Window {
	return Window{openMinutes: 8 * 60, closeMinutes: 17 * 60, slot: 30 * time.Minute}
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// SlotDuration returns the spacing between consecutive slot start-times.
func (w Window) SlotDuration() time.Duration {
	return w.slot
}

// Day truncates t to midnight of its calendar day, keeping the location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Slots returns the ordered candidate slot start-times for the calendar
// day containing day: open, open+d, open+2d, ... strictly before close.
func (w Window) Slots(day time.Time) []time.Time {
	start := Day(day).Add(time.Duration(w.openMinutes) * time.Minute)
	end := Day(day).Add(time.Duration(w.closeMinutes) * time.Minute)

	var slots []time.Time
	for t := start; t.Before(end); t = t.Add(w.slot) {
		slots = append(slots, t)
	}
	return slots
}

// Aligned reports whether t lands on the slot grid: zero seconds and a
// whole number of slot durations away from the daily open time. A time
// outside the window can still be aligned; window membership is a
// separate check.
func (w Window) Aligned(t time.Time) bool {
	if t.Second() != 0 || t.Nanosecond() != 0 {
		return false
	}
	offset := t.Hour()*60 + t.Minute() - w.openMinutes
	slotMinutes := int(w.slot / time.Minute)
	return ((offset%slotMinutes)+slotMinutes)%slotMinutes == 0
}

// Contains reports whether t falls inside the business-hour window
// [open, close) of its own day.
func (w Window) Contains(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	return m >= w.openMinutes && m < w.closeMinutes
}
