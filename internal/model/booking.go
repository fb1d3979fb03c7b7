package model

import "time"

// Status is the lifecycle state of a booking. Only active bookings occupy
// a slot or block new bookings for the same requester; cancelled and done
// are terminal.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusDone      Status = "done"
)

// Booking represents a single scheduled appointment slot.
type Booking struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	RequesterName    string    `gorm:"size:128;not null" json:"requester_name"`
	RequesterContact string    `gorm:"size:128;not null;index" json:"requester_contact"`
	ScheduledAt      time.Time `gorm:"not null;index" json:"scheduled_at"`
	Status           Status    `gorm:"size:32;not null" json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
