package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/homebook/pkg/cache"
	"github.com/ghuser/homebook/pkg/events"
	"github.com/ghuser/homebook/pkg/logger"
	bookingEvents "github.com/ghuser/homebook/services/booking/domain/events"
)

type fakeReadModel struct {
	set     []*cache.CachedBooking
	deleted []uuid.UUID
	err     error
}

func (f *fakeReadModel) Set(_ context.Context, b *cache.CachedBooking) error {
	f.set = append(f.set, b)
	return f.err
}

func (f *fakeReadModel) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func createdMessage(t *testing.T, evt bookingEvents.BookingCreatedEvent) *message.Message {
	t.Helper()
	msg, err := events.NewMessage(evt.EventID, evt.Version, evt)
	if err != nil {
		t.Fatalf("new message: %v", err)
	}
	return msg
}

func sampleCreated() bookingEvents.BookingCreatedEvent {
	return bookingEvents.BookingCreatedEvent{
		EventID:      uuid.New(),
		Version:      1,
		BookingID:    uuid.New(),
		UserID:       uuid.New(),
		ServiceTitle: "Deep Home Cleaning",
		Date:         "2026-10-20",
		Time:         "10:00 AM",
		Status:       "pending",
		OccurredAt:   time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC),
	}
}

func TestHandleBookingCreated_WarmsCache(t *testing.T) {
	rm := &fakeReadModel{}
	evt := sampleCreated()

	if err := handleBookingCreated(rm, logger.Nop())(context.Background(), createdMessage(t, evt)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rm.set) != 1 {
		t.Fatalf("expected one cache write, got %d", len(rm.set))
	}
	got := rm.set[0]
	if got.ID != evt.BookingID || got.UserID != evt.UserID || got.Status != "pending" {
		t.Fatalf("unexpected cached booking %+v", got)
	}
	if !got.CreatedAt.Equal(evt.OccurredAt) {
		t.Fatalf("expected created_at %v, got %v", evt.OccurredAt, got.CreatedAt)
	}
}

func TestHandleBookingCreated_CacheFailureIsNotFatal(t *testing.T) {
	rm := &fakeReadModel{err: errors.New("redis down")}
	if err := handleBookingCreated(rm, logger.Nop())(context.Background(), createdMessage(t, sampleCreated())); err != nil {
		t.Fatalf("expected best-effort cache warm, got %v", err)
	}
}

func TestHandleBookingCreated_BadPayload(t *testing.T) {
	msg := message.NewMessage("1", []byte("{not json"))
	if err := handleBookingCreated(&fakeReadModel{}, logger.Nop())(context.Background(), msg); err == nil {
		t.Fatal("expected decode error so the bus retries")
	}
}

func TestHandleBookingCancelled_Evicts(t *testing.T) {
	rm := &fakeReadModel{}
	evt := bookingEvents.BookingCancelledEvent{EventID: uuid.New(), Version: 1, BookingID: uuid.New(), UserID: uuid.New()}
	msg, err := events.NewMessage(evt.EventID, evt.Version, evt)
	if err != nil {
		t.Fatalf("new message: %v", err)
	}

	if err := handleBookingCancelled(rm, logger.Nop())(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rm.deleted) != 1 || rm.deleted[0] != evt.BookingID {
		t.Fatalf("expected eviction of %s, got %v", evt.BookingID, rm.deleted)
	}
}

func TestConfirmationNotice(t *testing.T) {
	got := confirmationNotice(sampleCreated())
	for _, want := range []string{"Deep Home Cleaning", "2026-10-20", "10:00 AM", "confirmed"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}
