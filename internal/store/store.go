package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"appointment-booking-backend/internal/model"
	"appointment-booking-backend/internal/schedule"
)

// Sentinel errors surfaced by the store's write primitives. The engine
// translates them into its client-visible error taxonomy.
var (
	ErrDuplicateActiveBooking = errors.New("an active booking already exists for this contact")
	ErrSlotTaken              = errors.New("an active booking already occupies this slot")
	ErrBookingNotFound        = errors.New("no active booking found for this contact")
)

// Store defines the interface for all booking persistence operations. It
// is the sole owner of shared mutable state; every write is a single
// transaction so callers can safely retry a failed operation from
// scratch.
type Store interface {
	// FindActiveByContact returns the contact's active booking, or nil
	// when none exists.
	FindActiveByContact(ctx context.Context, contact string) (*model.Booking, error)
	// FindActiveByDay returns all active bookings scheduled within the
	// calendar day containing day, ordered by scheduled time.
	FindActiveByDay(ctx context.Context, day time.Time) ([]model.Booking, error)
	// Insert persists a new active booking. It fails with
	// ErrDuplicateActiveBooking when the contact already has an active
	// booking and with ErrSlotTaken when the slot is occupied; both
	// checks run inside the insert transaction.
	Insert(ctx context.Context, booking *model.Booking) error
	// UpdateSchedule moves the contact's active booking (the most
	// recently scheduled one, should several exist) to newTime.
	UpdateSchedule(ctx context.Context, contact string, newTime time.Time) (*model.Booking, error)
	// Cancel transitions the contact's active booking to cancelled. The
	// row is retained.
	Cancel(ctx context.Context, contact string) error
	// MarkElapsedDone transitions active bookings whose time has passed
	// to done and returns how many rows changed.
	MarkElapsedDone(ctx context.Context, now time.Time) (int64, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) FindActiveByContact(ctx context.Context, contact string) (*model.Booking, error) {
	var booking model.Booking
	err := s.db.WithContext(ctx).
		Where("requester_contact = ? AND status = ?", contact, model.StatusActive).
		Order("scheduled_at DESC").
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up active booking for %s: %w", contact, err)
	}
	return &booking, nil
}

func (s *gormStore) FindActiveByDay(ctx context.Context, day time.Time) ([]model.Booking, error) {
	start := schedule.Day(day)
	end := start.Add(24 * time.Hour)

	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Where("status = ? AND scheduled_at >= ? AND scheduled_at < ?", model.StatusActive, start, end).
		Order("scheduled_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active bookings for %s: %w", start.Format("2006-01-02"), err)
	}
	return bookings, nil
}

func (s *gormStore) Insert(ctx context.Context, booking *model.Booking) error {
	booking.Status = model.StatusActive

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Booking{}).
			Where("requester_contact = ? AND status = ?", booking.RequesterContact, model.StatusActive).
			Count(&count).Error; err != nil {
			return fmt.Errorf("duplicate-booking check failed: %w", err)
		}
		if count > 0 {
			return ErrDuplicateActiveBooking
		}

		if err := tx.Model(&model.Booking{}).
			Where("scheduled_at = ? AND status = ?", booking.ScheduledAt, model.StatusActive).
			Count(&count).Error; err != nil {
			return fmt.Errorf("slot-conflict check failed: %w", err)
		}
		if count > 0 {
			return ErrSlotTaken
		}

		if err := tx.Create(booking).Error; err != nil {
			// The partial unique indexes are the backstop for writers
			// racing past the checks above: the loser must re-validate.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotTaken
			}
			return fmt.Errorf("failed to insert booking: %w", err)
		}
		return nil
	})
}

func (s *gormStore) UpdateSchedule(ctx context.Context, contact string, newTime time.Time) (*model.Booking, error) {
	var booking model.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("requester_contact = ? AND status = ?", contact, model.StatusActive).
			Order("scheduled_at DESC").
			First(&booking).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to look up active booking for %s: %w", contact, err)
		}

		var count int64
		if err := tx.Model(&model.Booking{}).
			Where("scheduled_at = ? AND status = ? AND id <> ?", newTime, model.StatusActive, booking.ID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("slot-conflict check failed: %w", err)
		}
		if count > 0 {
			return ErrSlotTaken
		}

		booking.ScheduledAt = newTime
		if err := tx.Model(&booking).Update("scheduled_at", newTime).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotTaken
			}
			return fmt.Errorf("failed to reschedule booking %d: %w", booking.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *gormStore) Cancel(ctx context.Context, contact string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking model.Booking
		err := tx.Where("requester_contact = ? AND status = ?", contact, model.StatusActive).
			Order("scheduled_at DESC").
			First(&booking).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to look up active booking for %s: %w", contact, err)
		}

		if err := tx.Model(&booking).Update("status", model.StatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel booking %d: %w", booking.ID, err)
		}
		return nil
	})
}

func (s *gormStore) MarkElapsedDone(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("status = ? AND scheduled_at < ?", model.StatusActive, now).
		Update("status", model.StatusDone)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark elapsed bookings done: %w", result.Error)
	}
	return result.RowsAffected, nil
}
