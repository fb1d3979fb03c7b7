// Package notification delivers booking confirmation emails on a small
// worker pool. Delivery runs strictly after the booking transaction has
// committed and is best-effort: a slow or failed send is logged and
// never propagated back to the booking.
package notification

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"appointment-booking-backend/config"
	"appointment-booking-backend/internal/model"
)

// Sender delivers a single email message.
type Sender interface {
	Send(m *gomail.Message) error
}

// SMTPSender is the real Sender implementation using gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
}

// NewSMTPSender creates a sender for the configured SMTP server.
func NewSMTPSender(cfg config.MailerConfig) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)}
}

// Send dials the SMTP server and sends the message.
func (s *SMTPSender) Send(m *gomail.Message) error {
	return s.dialer.DialAndSend(m)
}

// logSender stands in when the mailer is disabled.
type logSender struct{}

func (logSender) Send(m *gomail.Message) error {
	log.Printf("mailer disabled, would send %q to %v", m.GetHeader("Subject"), m.GetHeader("To"))
	return nil
}

// WorkerPool manages a pool of workers for sending confirmation emails.
type WorkerPool struct {
	size   int
	jobs   chan model.Booking
	cfg    config.MailerConfig
	sender Sender
}

// NewWorkerPool creates a new worker pool. When the mailer is disabled
// the pool logs messages instead of sending them.
func NewWorkerPool(size int, cfg config.MailerConfig) *WorkerPool {
	var sender Sender = logSender{}
	if cfg.Enabled {
		sender = NewSMTPSender(cfg)
	}
	return &WorkerPool{
		size:   size,
		jobs:   make(chan model.Booking, size*4),
		cfg:    cfg,
		sender: sender,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("notification worker %d started", id)
	for {
		select {
		case booking := <-wp.jobs:
			wp.sendConfirmation(booking)
		case <-ctx.Done():
			log.Printf("notification worker %d shutting down", id)
			return
		}
	}
}

// BookingConfirmed queues a confirmation email for the booking. It never
// blocks the caller: when the queue is full the job is dropped.
func (wp *WorkerPool) BookingConfirmed(booking model.Booking) {
	select {
	case wp.jobs <- booking:
	default:
		log.Printf("notification queue full, dropping confirmation for %s", booking.RequesterContact)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan model.Booking {
	return wp.jobs
}

func (wp *WorkerPool) sendConfirmation(booking model.Booking) {
	m := gomail.NewMessage()
	m.SetHeader("From", wp.cfg.From)
	m.SetHeader("To", booking.RequesterContact)
	m.SetHeader("Subject", "Appointment confirmed")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour appointment is scheduled for %s.\n\nRegards.",
		booking.RequesterName,
		booking.ScheduledAt.Format("Monday, 2 January 2006 at 15:04"),
	))

	if err := wp.sender.Send(m); err != nil {
		log.Printf("error sending confirmation to %s: %v", booking.RequesterContact, err)
	}
}
