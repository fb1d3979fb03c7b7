package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlots_DefaultWindow(t *testing.T) {
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local)

	slots := Default().Slots(day)

	require.Len(t, slots, 18)
	assert.Equal(t, time.Date(2025, 1, 6, 8, 0, 0, 0, time.Local), slots[0])
	assert.Equal(t, time.Date(2025, 1, 6, 8, 30, 0, 0, time.Local), slots[1])
	assert.Equal(t, time.Date(2025, 1, 6, 16, 30, 0, 0, time.Local), slots[17])
}

func TestSlots_TruncatesToDay(t *testing.T) {
	// A mid-day timestamp produces the same sequence as midnight.
	noon := time.Date(2025, 1, 6, 12, 34, 56, 0, time.Local)
	midnight := time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local)

	assert.Equal(t, Default().Slots(midnight), Default().Slots(noon))
}

func TestSlots_CustomWindow(t *testing.T) {
	w, err := NewWindow("09:00", "10:00", 15)
	require.NoError(t, err)

	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.Local)
	slots := w.Slots(day)

	require.Len(t, slots, 4)
	assert.Equal(t, time.Date(2026, 1, 28, 9, 45, 0, 0, time.Local), slots[3])
}

func TestNewWindow_Invalid(t *testing.T) {
	testCases := []struct {
		name        string
		open, close string
		slotMinutes int
	}{
		{name: "close before open", open: "17:00", close: "08:00", slotMinutes: 30},
		{name: "close equals open", open: "08:00", close: "08:00", slotMinutes: 30},
		{name: "garbage open", open: "8am", close: "17:00", slotMinutes: 30},
		{name: "zero slot duration", open: "08:00", close: "17:00", slotMinutes: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWindow(tc.open, tc.close, tc.slotMinutes)
			assert.Error(t, err)
		})
	}
}

func TestAligned(t *testing.T) {
	w := Default()

	testCases := []struct {
		name     string
		t        time.Time
		expected bool
	}{
		{name: "on the hour", t: time.Date(2025, 1, 6, 9, 0, 0, 0, time.Local), expected: true},
		{name: "on the half hour", t: time.Date(2025, 1, 6, 9, 30, 0, 0, time.Local), expected: true},
		{name: "quarter past", t: time.Date(2025, 1, 6, 8, 15, 0, 0, time.Local), expected: false},
		{name: "nonzero seconds", t: time.Date(2025, 1, 6, 8, 0, 30, 0, time.Local), expected: false},
		{name: "aligned but before open", t: time.Date(2025, 1, 6, 7, 30, 0, 0, time.Local), expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, w.Aligned(tc.t))
		})
	}
}

func TestContains(t *testing.T) {
	w := Default()

	assert.True(t, w.Contains(time.Date(2025, 1, 6, 8, 0, 0, 0, time.Local)))
	assert.True(t, w.Contains(time.Date(2025, 1, 6, 16, 30, 0, 0, time.Local)))
	assert.False(t, w.Contains(time.Date(2025, 1, 6, 7, 30, 0, 0, time.Local)))
	// The close bound is exclusive.
	assert.False(t, w.Contains(time.Date(2025, 1, 6, 17, 0, 0, 0, time.Local)))
}
