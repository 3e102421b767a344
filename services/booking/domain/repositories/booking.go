package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/homebook/services/booking/domain/models"
)

// QueryOpts contains pagination and filter parameters for list queries.
type QueryOpts struct {
	Limit  int           // Maximum number of records to return
	Offset int           // Number of records to skip
	Status models.Status // Only bookings in this status; empty for all
}

// BookingRepository is the persistence interface for the Booking aggregate.
// Every read is scoped to the owning user.
type BookingRepository interface {
	// Create inserts b and publishes BookingCreatedEvent atomically. When the
	// user already has a booking under b.IdempotencyKey, nothing is inserted
	// and that booking is returned with created=false. Otherwise a slot that
	// already holds SlotCapacity active bookings fails with ErrSlotUnavailable;
	// the count and the insert are atomic across concurrent creates.
	Create(ctx context.Context, b *models.Booking) (stored *models.Booking, created bool, err error)

	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Booking, error)

	// FindByIdempotencyKey returns ErrBookingNotFound when the user never
	// created a booking under key.
	FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*models.Booking, error)

	// FindByUserID returns the user's bookings, newest first, plus the total count.
	FindByUserID(ctx context.Context, userID uuid.UUID, opts QueryOpts) ([]*models.Booking, int, error)

	// Cancel sets the status to cancelled when the current status allows it and
	// publishes BookingCancelledEvent in the same transaction.
	Cancel(ctx context.Context, userID, id uuid.UUID) (*models.Booking, error)
}
