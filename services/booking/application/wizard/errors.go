package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ghuser/homebook/services/booking/domain/services"
)

// SubmitFailedMessage is shown when a failed submission carries no server message.
const SubmitFailedMessage = "Failed to create booking. Please try again."

var (
	// ErrBusy rejects Advance, Retreat or Submit while another of them is running.
	ErrBusy = errors.New("wizard: another operation is in progress")
	// ErrSubmissionInProgress rejects any transition while a submission is in flight.
	ErrSubmissionInProgress = errors.New("wizard: submission in progress")
	// ErrSubmitted rejects transitions after the booking was created.
	ErrSubmitted = errors.New("wizard: booking already submitted")
	// ErrDraftLocked rejects edits while submitting or after success.
	ErrDraftLocked = errors.New("wizard: draft is locked")
	// ErrNotOnReview rejects Submit from any step but Review.
	ErrNotOnReview = errors.New("wizard: submit is only allowed from the review step")
	// ErrUnknownField rejects SetField for a name no step edits.
	ErrUnknownField = errors.New("wizard: unknown field")
	// ErrInvalidValue rejects a date outside the window or an unknown slot.
	ErrInvalidValue = errors.New("wizard: invalid value")
)

// ValidationError is returned by Advance when the current step fails its
// validator. Fields is exactly the set of failing fields.
type ValidationError struct {
	Step   Step
	Fields services.FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("wizard: step %d has invalid fields: %s", int(e.Step), strings.Join(names, ", "))
}
