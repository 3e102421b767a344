// Package wizard is the five-step booking flow: date and time, address,
// contact, payment, review. It owns the draft until the booking is created.
//
// Advance, Retreat and Submit are serialized. A call that arrives while
// another is still running is rejected, never queued, so a repeated tap on
// "Confirm" cannot create a second booking. SetField and Total are
// synchronous and may be called at any time.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/homebook/pkg/gateway"
	"github.com/ghuser/homebook/pkg/geo"
	"github.com/ghuser/homebook/pkg/logger"
	"github.com/ghuser/homebook/services/booking/domain/models"
	"github.com/ghuser/homebook/services/booking/domain/services"
)

// Submitter creates the booking. submission.Service satisfies it.
type Submitter interface {
	CreateBooking(ctx context.Context, d models.Draft, idempotencyKey string) (*models.BookingRecord, error)
}

// LocationResolver supplies the current address. geo.Resolver satisfies it.
type LocationResolver interface {
	ResolveAddress(ctx context.Context) (*geo.Resolution, error)
}

// Outcome describes the wizard after Advance.
type Outcome struct {
	Step  Step
	State State
	// Record is set when Advance from Review created the booking.
	Record *models.BookingRecord
}

// Wizard is safe for concurrent use.
type Wizard struct {
	submitter Submitter
	resolver  LocationResolver
	log       logger.Logger
	now       func() time.Time
	newKey    func() string

	mu          sync.Mutex
	busy        bool
	state       State
	step        Step
	draft       models.Draft
	window      []models.Date
	fieldErrors services.FieldErrors
	lastErr     string
	key         string
	record      *models.BookingRecord
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithResolver enables ResolveCurrentLocation.
func WithResolver(r LocationResolver) Option {
	return func(w *Wizard) { w.resolver = r }
}

// WithLogger sets the logger for transition records.
func WithLogger(l logger.Logger) Option {
	return func(w *Wizard) { w.log = l }
}

// WithClock overrides time.Now. Its location decides the date window.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

// WithKeyGenerator overrides the idempotency key source.
func WithKeyGenerator(fn func() string) Option {
	return func(w *Wizard) { w.newKey = fn }
}

// New starts a wizard for ref on the first step. The date window is fixed
// here: today and the six days after it.
func New(ref models.ServiceRef, submitter Submitter, opts ...Option) *Wizard {
	w := &Wizard{
		submitter:   submitter,
		log:         logger.Nop(),
		now:         time.Now,
		newKey:      uuid.NewString,
		step:        StepDateTime,
		draft:       models.Draft{Service: ref},
		fieldErrors: services.FieldErrors{},
	}
	for _, opt := range opts {
		opt(w)
	}
	w.window = models.DateWindow(models.DateOf(w.now()))
	w.key = w.newKey()
	return w
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// State returns the submission state.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Draft returns a copy of the draft.
func (w *Wizard) Draft() models.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Clone()
}

// Window returns the selectable dates.
func (w *Wizard) Window() []models.Date {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.Date(nil), w.window...)
}

// FieldErrors returns a copy of the current field errors.
func (w *Wizard) FieldErrors() services.FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return copyErrors(w.fieldErrors)
}

// LastError is the message of the last failed submission, empty otherwise.
func (w *Wizard) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Record returns the created booking once submitted.
func (w *Wizard) Record() *models.BookingRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.record
}

// IdempotencyKey is the key the next submission will carry.
func (w *Wizard) IdempotencyKey() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.key
}

// Total is the price of the draft. It never changes the draft.
func (w *Wizard) Total() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Total()
}

// Advance validates the current step and moves to the next one. A failing
// step returns *ValidationError and stays put. From Review it submits.
func (w *Wizard) Advance(ctx context.Context) (Outcome, error) {
	if err := w.begin(); err != nil {
		return w.outcome(nil), err
	}
	defer w.end()

	w.mu.Lock()
	if w.step == StepReview {
		w.mu.Unlock()
		rec, err := w.submit(ctx)
		return w.outcome(rec), err
	}

	from := w.step
	errs := from.Validate(w.draft)
	if !errs.OK() {
		w.fieldErrors = errs
		w.mu.Unlock()
		w.log.DebugContext(ctx, "wizard: step invalid", "step", int(from), "fields", len(errs))
		return w.outcome(nil), &ValidationError{Step: from, Fields: copyErrors(errs)}
	}
	w.fieldErrors = services.FieldErrors{}
	w.step = from + 1
	w.mu.Unlock()

	w.log.DebugContext(ctx, "wizard: advanced", "from", int(from), "to", int(from+1))
	return w.outcome(nil), nil
}

// Retreat moves back one step. On the first step it returns exit=true and
// leaves the wizard unchanged; leaving the flow is up to the caller.
func (w *Wizard) Retreat() (exit bool, err error) {
	if err := w.begin(); err != nil {
		return false, err
	}
	defer w.end()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepDateTime {
		return true, nil
	}
	w.step--
	w.log.Debug("wizard: retreated", "to", int(w.step))
	return false, nil
}

// Submit creates the booking from Review. A second call while the first is
// in flight gets ErrSubmissionInProgress and sends nothing. On failure the
// wizard returns to Review with the draft untouched and LastError set.
func (w *Wizard) Submit(ctx context.Context) (*models.BookingRecord, error) {
	if err := w.begin(); err != nil {
		return nil, err
	}
	defer w.end()
	return w.submit(ctx)
}

func (w *Wizard) submit(ctx context.Context) (*models.BookingRecord, error) {
	w.mu.Lock()
	if w.step != StepReview {
		w.mu.Unlock()
		return nil, ErrNotOnReview
	}
	if errs := services.ValidateDraft(w.draft); !errs.OK() {
		w.fieldErrors = errs
		w.mu.Unlock()
		return nil, &ValidationError{Step: StepReview, Fields: copyErrors(errs)}
	}
	w.state = StateSubmitting
	w.lastErr = ""
	draft := w.draft.Clone()
	key := w.key
	w.mu.Unlock()

	w.log.DebugContext(ctx, "wizard: submitting", "service_id", draft.Service.ServiceID, "idempotency_key", key)
	rec, err := w.submitter.CreateBooking(ctx, draft, key)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state = StateEditing
		w.lastErr = gateway.Message(err, SubmitFailedMessage)
		w.log.DebugContext(ctx, "wizard: submission failed", "error", err)
		return nil, err
	}
	w.state = StateSubmitted
	w.record = rec
	w.draft = models.Draft{}
	w.fieldErrors = services.FieldErrors{}
	w.log.DebugContext(ctx, "wizard: submitted", "booking_id", rec.ID)
	return rec, nil
}

// SetField writes value into the named draft field and clears that field's
// error. Dates must come from Window and times from models.Slots; other
// values are checked on the next Advance. An edit that changes the draft
// gives the next submission a fresh idempotency key; writing the value
// already held keeps the current one.
func (w *Wizard) SetField(field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateEditing {
		return ErrDraftLocked
	}

	before := w.draft.Clone()
	d := &w.draft
	switch field {
	case services.FieldDate:
		date, err := models.ParseDate(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		if !models.InWindow(w.window[0], date) {
			return fmt.Errorf("%w: %s is not selectable", ErrInvalidValue, date)
		}
		d.Schedule.Date = &date
	case services.FieldTime:
		slot, err := models.ParseSlot(value)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		d.Schedule.Time = slot
	case services.FieldAddress:
		d.Location.Address = value
	case services.FieldLandmark:
		d.Location.Landmark = value
	case services.FieldPhone:
		d.Contact.Phone = value
	case services.FieldInstructions:
		d.Contact.Instructions = value
	case services.FieldPayment:
		d.Payment.MethodID = models.PaymentMethod(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	delete(w.fieldErrors, field)
	w.rotateKeyIfChanged(before)
	return nil
}

// AddSurcharge adds an extra charge to the total.
func (w *Wizard) AddSurcharge(s models.Surcharge) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateEditing {
		return ErrDraftLocked
	}
	before := w.draft.Clone()
	w.draft.Surcharges = append(w.draft.Surcharges, s)
	w.rotateKeyIfChanged(before)
	return nil
}

// ResolveCurrentLocation fills the address and coordinates from the
// resolver. On failure the address is left as it was and the resolver's
// error is returned; the step never changes either way.
func (w *Wizard) ResolveCurrentLocation(ctx context.Context) (*geo.Resolution, error) {
	if w.resolver == nil {
		return nil, geo.ErrLocationUnavailable
	}

	res, err := w.resolver.ResolveAddress(ctx)
	if err != nil {
		w.log.DebugContext(ctx, "wizard: location not resolved", "error", err)
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateEditing {
		return nil, ErrDraftLocked
	}
	before := w.draft.Clone()
	coords := res.Coordinates
	w.draft.Location.Address = res.FormattedAddress
	w.draft.Location.Coordinates = &coords
	delete(w.fieldErrors, services.FieldAddress)
	w.rotateKeyIfChanged(before)
	w.log.DebugContext(ctx, "wizard: location resolved", "structured", res.Structured)
	return res, nil
}

// rotateKeyIfChanged issues a new idempotency key when the draft differs
// from before. A retry after a lost response must reuse the old key for an
// identical payload. Callers hold w.mu.
func (w *Wizard) rotateKeyIfChanged(before models.Draft) {
	if reflect.DeepEqual(before, w.draft.Clone()) {
		return
	}
	w.key = w.newKey()
}

func (w *Wizard) begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.state == StateSubmitting:
		return ErrSubmissionInProgress
	case w.state == StateSubmitted:
		return ErrSubmitted
	case w.busy:
		return ErrBusy
	}
	w.busy = true
	return nil
}

func (w *Wizard) end() {
	w.mu.Lock()
	w.busy = false
	w.mu.Unlock()
}

func (w *Wizard) outcome(rec *models.BookingRecord) Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Outcome{Step: w.step, State: w.state, Record: rec}
}

func copyErrors(src services.FieldErrors) services.FieldErrors {
	dst := make(services.FieldErrors, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// IsValidation reports whether err is a step validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
