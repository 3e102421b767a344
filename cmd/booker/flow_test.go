package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ghuser/homebook/services/booking/application/wizard"
	"github.com/ghuser/homebook/services/booking/domain/models"
)

type fakeSubmitter struct {
	errs   []error
	keys   []string
	drafts []models.Draft
}

func (f *fakeSubmitter) CreateBooking(_ context.Context, d models.Draft, key string) (*models.BookingRecord, error) {
	f.keys = append(f.keys, key)
	f.drafts = append(f.drafts, d)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &models.BookingRecord{ID: "b-1", ServiceTitle: d.Service.Title, Status: models.StatusPending}, nil
}

func newTestFlow(input string, sub *fakeSubmitter) (*flow, *bytes.Buffer) {
	n := 0
	w := wizard.New(
		models.ServiceRef{ServiceID: "svc-1", Title: "Deep Home Cleaning", Category: "Cleaning", UnitPrice: "₹1,299"},
		sub,
		wizard.WithClock(func() time.Time { return time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC) }),
		wizard.WithKeyGenerator(func() string { n++; return "key-" + string(rune('a'+n)) }),
	)
	var out bytes.Buffer
	return &flow{w: w, p: newPrompter(strings.NewReader(input), &out), defaultPhone: "9876543210"}, &out
}

func lines(l ...string) string { return strings.Join(l, "\n") + "\n" }

func TestFlow_HappyPath(t *testing.T) {
	sub := &fakeSubmitter{}
	f, out := newTestFlow(lines(
		"2", "2", // tomorrow, 10:00 AM
		"12 MG Road, Bengaluru", "",
		"", "Ring twice",
		"1",
		"y",
	), sub)

	rec, err := f.run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out.String())
	}
	if rec == nil || rec.ID != "b-1" {
		t.Fatalf("expected created record, got %+v", rec)
	}
	if len(sub.drafts) != 1 {
		t.Fatalf("expected one submission, got %d", len(sub.drafts))
	}
	d := sub.drafts[0]
	if d.Schedule.Date == nil || d.Schedule.Date.String() != "2026-10-19" {
		t.Fatalf("expected date 2026-10-19, got %v", d.Schedule.Date)
	}
	if d.Schedule.Time != "10:00 AM" {
		t.Fatalf("expected 10:00 AM, got %q", d.Schedule.Time)
	}
	if d.Contact.Phone != "9876543210" {
		t.Fatalf("expected default phone, got %q", d.Contact.Phone)
	}
	if d.Payment.MethodID != models.PaymentMethods[0] {
		t.Fatalf("expected first payment method, got %q", d.Payment.MethodID)
	}
	if !strings.Contains(out.String(), "Total:    ₹1,299") {
		t.Fatalf("expected total in review, got:\n%s", out.String())
	}
}

func TestFlow_ValidationKeepsStep(t *testing.T) {
	sub := &fakeSubmitter{}
	f, out := newTestFlow(lines(
		"1", "10",
		"short", "",
		"12 MG Road, Bengaluru", "",
		"", "",
		"3",
		"y",
	), sub)

	if _, err := f.run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "! address: Please provide a complete address") {
		t.Fatalf("expected address error, got:\n%s", out.String())
	}
	if got := sub.drafts[0].Location.Address; got != "12 MG Road, Bengaluru" {
		t.Fatalf("expected corrected address, got %q", got)
	}
}

func TestFlow_RetryAfterFailureReusesKey(t *testing.T) {
	sub := &fakeSubmitter{errs: []error{errors.New("connection reset")}}
	f, out := newTestFlow(lines(
		"1", "10",
		"12 MG Road, Bengaluru", "",
		"", "",
		"1",
		"y",
		"y",
	), sub)

	rec, err := f.run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out.String())
	}
	if rec == nil {
		t.Fatal("expected record after retry")
	}
	if len(sub.keys) != 2 || sub.keys[0] != sub.keys[1] {
		t.Fatalf("expected the retry to reuse the idempotency key, got %v", sub.keys)
	}
	if !strings.Contains(out.String(), wizard.SubmitFailedMessage) {
		t.Fatalf("expected failure message, got:\n%s", out.String())
	}
}

func TestFlow_BackAfterFailureWithSameAnswersReusesKey(t *testing.T) {
	sub := &fakeSubmitter{errs: []error{errors.New("connection reset")}}
	f, out := newTestFlow(lines(
		"1", "10",
		"12 MG Road, Bengaluru", "",
		"", "",
		"1",
		"y",
		"n", // back to payment
		"1",
		"y",
	), sub)

	if _, err := f.run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out.String())
	}
	if len(sub.keys) != 2 || sub.keys[0] != sub.keys[1] {
		t.Fatalf("expected the unchanged draft to keep its idempotency key, got %v", sub.keys)
	}
}

func TestFlow_BackFromFirstStepAborts(t *testing.T) {
	sub := &fakeSubmitter{}
	f, _ := newTestFlow(lines("<"), sub)

	if _, err := f.run(context.Background()); !errors.Is(err, errAborted) {
		t.Fatalf("expected errAborted, got %v", err)
	}
	if len(sub.keys) != 0 {
		t.Fatalf("expected no submission, got %d", len(sub.keys))
	}
}

func TestFlow_BackReturnsToPreviousStep(t *testing.T) {
	sub := &fakeSubmitter{}
	f, _ := newTestFlow(lines(
		"1", "10",
		"<",
		"2", "3",
		"12 MG Road, Bengaluru", "",
		"", "",
		"2",
		"y",
	), sub)

	if _, err := f.run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sub.drafts[0].Schedule.Date.String(); got != "2026-10-19" {
		t.Fatalf("expected re-picked date, got %s", got)
	}
	if got := sub.drafts[0].Schedule.Time; got != "11:00 AM" {
		t.Fatalf("expected re-picked slot, got %s", got)
	}
}
