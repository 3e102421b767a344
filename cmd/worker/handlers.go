package main

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/homebook/pkg/cache"
	"github.com/ghuser/homebook/pkg/events"
	"github.com/ghuser/homebook/pkg/logger"
	bookingEvents "github.com/ghuser/homebook/services/booking/domain/events"
)

// readModel is the slice of *cache.BookingCache the handlers write.
type readModel interface {
	Set(ctx context.Context, b *cache.CachedBooking) error
	Delete(ctx context.Context, userID, bookingID uuid.UUID) error
}

// handleBookingCreated returns a handler for booking.created events.
// Handlers must be idempotent: EventBus retries up to 3x on failure.
// Warms the Redis read-model cache so subsequent GetByID calls are served from
// cache, then records the confirmation notice for the customer.
func handleBookingCreated(rm readModel, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var evt bookingEvents.BookingCreatedEvent
		if err := events.Decode(msg, &evt); err != nil {
			return err
		}

		if err := rm.Set(ctx, cachedFromEvent(evt)); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			log.WarnContext(ctx, "cache warm failed for booking.created",
				"booking_id", evt.BookingID, "error", err)
		} else {
			log.InfoContext(ctx, "cache warmed", "booking_id", evt.BookingID, "user_id", evt.UserID)
		}

		log.InfoContext(ctx, "booking confirmation",
			"booking_id", evt.BookingID,
			"phone", evt.Phone,
			"notice", confirmationNotice(evt))
		return nil
	}
}

// handleBookingCancelled evicts the cached booking.
func handleBookingCancelled(rm readModel, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var evt bookingEvents.BookingCancelledEvent
		if err := events.Decode(msg, &evt); err != nil {
			return err
		}
		if err := rm.Delete(ctx, evt.UserID, evt.BookingID); err != nil {
			log.WarnContext(ctx, "cache evict failed for booking.cancelled",
				"booking_id", evt.BookingID, "error", err)
		}
		return nil
	}
}

func confirmationNotice(evt bookingEvents.BookingCreatedEvent) string {
	return fmt.Sprintf("Your %s booking for %s at %s is confirmed. Service partner will reach you shortly.",
		evt.ServiceTitle, evt.Date, evt.Time)
}

func cachedFromEvent(evt bookingEvents.BookingCreatedEvent) *cache.CachedBooking {
	return &cache.CachedBooking{
		ID:            evt.BookingID,
		UserID:        evt.UserID,
		ServiceID:     evt.ServiceID,
		ServiceTitle:  evt.ServiceTitle,
		Category:      evt.Category,
		Date:          evt.Date,
		Time:          evt.Time,
		Address:       evt.Address,
		Landmark:      evt.Landmark,
		Phone:         evt.Phone,
		Instructions:  evt.Instructions,
		PaymentMethod: evt.PaymentMethod,
		Price:         evt.Price,
		Latitude:      evt.Latitude,
		Longitude:     evt.Longitude,
		Status:        evt.Status,
		CreatedAt:     evt.OccurredAt,
		UpdatedAt:     evt.OccurredAt,
	}
}
