package engine

// Kind classifies an Error for transport mapping and retry policy.
type Kind int

const (
	// KindValidation marks caller-fixable input errors; never retried.
	KindValidation Kind = iota
	// KindConflict marks slot or requester conflicts; the caller must
	// re-query availability and retry with a different input.
	KindConflict
	// KindNotFound marks lookups that matched no active booking.
	KindNotFound
	// KindTransient marks store timeouts and outages; the whole
	// operation is safe to retry since every write is one transaction.
	KindTransient
)

// Error is the client-visible error type of the scheduling engine. Code
// is stable and machine-readable; the transport layer maps Kind to a
// protocol status.
type Error struct {
	Code    string
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrPastTime = &Error{
		Code:    "PAST_TIME",
		Kind:    KindValidation,
		Message: "cannot book an appointment in the past",
	}
	ErrInvalidGranularity = &Error{
		Code:    "INVALID_GRANULARITY",
		Kind:    KindValidation,
		Message: "the requested time does not land on the slot grid",
	}
	ErrOutsideBusinessHours = &Error{
		Code:    "OUTSIDE_BUSINESS_HOURS",
		Kind:    KindValidation,
		Message: "the requested time is outside business hours",
	}
	ErrSlotUnavailable = &Error{
		Code:    "SLOT_UNAVAILABLE",
		Kind:    KindConflict,
		Message: "the requested slot is already booked",
	}
	ErrDuplicateActiveBooking = &Error{
		Code:    "DUPLICATE_ACTIVE_BOOKING",
		Kind:    KindConflict,
		Message: "an active booking already exists for this contact",
	}
	ErrBookingNotFound = &Error{
		Code:    "BOOKING_NOT_FOUND",
		Kind:    KindNotFound,
		Message: "no active booking found for this contact",
	}
	ErrPastDate = &Error{
		Code:    "PAST_DATE",
		Kind:    KindValidation,
		Message: "cannot check availability for a past date",
	}
	ErrNoAvailability = &Error{
		Code:    "NO_AVAILABILITY",
		Kind:    KindNotFound,
		Message: "no slots left for that day",
	}
	ErrStoreUnavailable = &Error{
		Code:    "STORE_UNAVAILABLE",
		Kind:    KindTransient,
		Message: "the booking store did not respond in time, please retry",
	}
)
