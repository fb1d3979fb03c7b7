package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/gomail.v2"

	"appointment-booking-backend/config"
	"appointment-booking-backend/internal/model"
)

// mockSender is a mock implementation of the Sender interface.
type mockSender struct {
	SendFunc func(m *gomail.Message) error
}

func (m *mockSender) Send(msg *gomail.Message) error {
	return m.SendFunc(msg)
}

func TestWorkerPool_BookingConfirmed(t *testing.T) {
	wp := NewWorkerPool(1, config.MailerConfig{From: "bookings@example.com"})

	booking := model.Booking{
		RequesterName:    "Ana",
		RequesterContact: "a@x.com",
		ScheduledAt:      time.Date(2025, 1, 6, 8, 0, 0, 0, time.Local),
	}
	wp.BookingConfirmed(booking)

	select {
	case job := <-wp.Jobs():
		assert.Equal(t, "a@x.com", job.RequesterContact)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_DoesNotBlockWhenQueueFull(t *testing.T) {
	wp := NewWorkerPool(1, config.MailerConfig{From: "bookings@example.com"})

	booking := model.Booking{RequesterContact: "a@x.com"}

	// No worker is running, so the buffered channel eventually fills.
	// Dispatch must still return instead of blocking the caller.
	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(wp.Jobs())+10; i++ {
			wp.BookingConfirmed(booking)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("BookingConfirmed blocked on a full queue")
	}
}

func TestWorkerPool_SendsConfirmation(t *testing.T) {
	wp := NewWorkerPool(1, config.MailerConfig{From: "bookings@example.com"})

	var wg sync.WaitGroup
	wg.Add(1)
	var got *gomail.Message
	wp.sender = &mockSender{
		SendFunc: func(m *gomail.Message) error {
			got = m
			wg.Done()
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.BookingConfirmed(model.Booking{
		RequesterName:    "Ana",
		RequesterContact: "a@x.com",
		ScheduledAt:      time.Date(2025, 1, 6, 8, 0, 0, 0, time.Local),
	})
	wg.Wait()

	assert.Equal(t, []string{"a@x.com"}, got.GetHeader("To"))
	assert.Equal(t, []string{"Appointment confirmed"}, got.GetHeader("Subject"))
}

func TestWorkerPool_SendErrorDoesNotPanic(t *testing.T) {
	wp := NewWorkerPool(1, config.MailerConfig{From: "bookings@example.com"})

	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func(m *gomail.Message) error {
			defer wg.Done()
			return assert.AnError
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.BookingConfirmed(model.Booking{RequesterContact: "a@x.com"})
	wg.Wait()
}
