package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the booking context.
const (
	TopicBookingCreated   = "booking.created"
	TopicBookingCancelled = "booking.cancelled"
)

// BookingCreatedEvent is published in the same transaction that inserts a
// booking. It carries the whole record so consumers can build read models
// without querying Postgres.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicBookingCreated).
type BookingCreatedEvent struct {
	EventID       uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version       int       `json:"version"`  // Schema version; increment on breaking changes
	BookingID     uuid.UUID `json:"booking_id"`
	UserID        uuid.UUID `json:"user_id"`
	ServiceID     string    `json:"service_id"`
	ServiceTitle  string    `json:"service_title"`
	Category      string    `json:"category"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Address       string    `json:"address"`
	Landmark      string    `json:"landmark,omitempty"`
	Phone         string    `json:"phone"`
	Instructions  string    `json:"instructions,omitempty"`
	PaymentMethod string    `json:"payment_method"`
	Price         string    `json:"price"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published when a customer cancels.
type BookingCancelledEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	BookingID  uuid.UUID `json:"booking_id"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
