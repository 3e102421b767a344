package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type sessionEvent struct {
	Reason string `json:"reason"`
}

func TestNewMessage_SetsMetadata(t *testing.T) {
	id := uuid.New()
	msg, err := NewMessage(id, 2, sessionEvent{Reason: "unauthorized"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := msg.Metadata.Get(MetaEventID); got != id.String() {
		t.Fatalf("expected event_id %s, got %s", id, got)
	}
	if got := msg.Metadata.Get(MetaEventVersion); got != "2" {
		t.Fatalf("expected event_version 2, got %s", got)
	}

	var back sessionEvent
	if err := Decode(msg, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Reason != "unauthorized" {
		t.Fatalf("expected reason round trip, got %q", back.Reason)
	}
}

func TestDecode_InvalidPayload(t *testing.T) {
	msg := message.NewMessage("id", []byte("{not json"))
	if err := Decode(msg, &sessionEvent{}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLocalBus_DeliversToEverySubscriber(t *testing.T) {
	bus := NewLocalBus(8, nopLogger())
	defer bus.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan string, 2)
	for i := 0; i < 2; i++ {
		errCh, err := bus.Subscribe(ctx, "session.invalidated", func(_ context.Context, msg *message.Message) error {
			var evt sessionEvent
			if err := Decode(msg, &evt); err != nil {
				return err
			}
			got <- evt.Reason
			return nil
		})
		if err != nil {
			t.Fatalf("subscribe: %v", err)
		}
		go func() {
			for range errCh {
			}
		}()
	}

	msg, _ := NewMessage(uuid.New(), 1, sessionEvent{Reason: "unauthorized"})
	if err := bus.Publish(ctx, "session.invalidated", msg); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for i := 0; i < 2; i++ {
		select {
		case r := <-got:
			if r != "unauthorized" {
				t.Fatalf("unexpected reason %q", r)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("subscriber %d did not receive the message", i)
		}
	}
}

func TestLocalBus_PropagatesTraceContext(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	bus := NewLocalBus(1, nopLogger())
	defer bus.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	traces := make(chan trace.TraceID, 1)
	errCh, err := bus.Subscribe(ctx, "t", func(ctx context.Context, _ *message.Message) error {
		traces <- trace.SpanFromContext(ctx).SpanContext().TraceID()
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	go func() {
		for range errCh {
		}
	}()

	pubCtx, span := otel.Tracer("test").Start(ctx, "publish")
	defer span.End()
	msg, _ := NewMessage(uuid.New(), 1, sessionEvent{})
	if err := bus.Publish(pubCtx, "t", msg); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case id := <-traces:
		if id != span.SpanContext().TraceID() {
			t.Fatalf("trace ID mismatch: want %s, got %s", span.SpanContext().TraceID(), id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler not called")
	}
}

func TestLocalBus_FailingHandlerReportsError(t *testing.T) {
	bus := NewLocalBus(1, nopLogger())
	defer bus.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	boom := errors.New("boom")
	errCh, err := bus.Subscribe(ctx, "t", func(context.Context, *message.Message) error {
		calls.Add(1)
		return boom
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	msg, _ := NewMessage(uuid.New(), 1, sessionEvent{})
	go func() { _ = bus.Publish(ctx, "t", msg) }()

	select {
	case err := <-errCh:
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("expected error after retries")
	}
	if calls.Load() < maxRetries {
		t.Fatalf("expected at least %d calls, got %d", maxRetries, calls.Load())
	}
}
