package domain

import "errors"

// Sentinel errors for the booking domain. Use errors.Is() to check these.
var (
	// ErrBookingNotFound indicates the booking does not exist for the caller.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotUnavailable indicates the requested date/time cannot be booked.
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrInvalidBooking indicates the booking payload violates domain constraints.
	ErrInvalidBooking = errors.New("invalid booking")

	// ErrNotCancellable indicates the booking has progressed past cancellation.
	ErrNotCancellable = errors.New("booking can no longer be cancelled")

	// ErrDuplicateRequest indicates the idempotency key was already used for a
	// different payload.
	ErrDuplicateRequest = errors.New("idempotency key reused with a different request")
)
