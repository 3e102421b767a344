package wizard

import (
	"fmt"

	"github.com/ghuser/homebook/services/booking/domain/models"
	"github.com/ghuser/homebook/services/booking/domain/services"
)

// Step is a position in the five-step flow. Each step carries its own
// title, the draft fields it edits and the validator gating Advance.
type Step int

const (
	StepDateTime Step = iota + 1
	StepAddress
	StepContact
	StepPayment
	StepReview
)

// Steps lists the flow in order.
var Steps = []Step{StepDateTime, StepAddress, StepContact, StepPayment, StepReview}

type stepDef struct {
	title    string
	fields   []string
	validate func(models.Draft) services.FieldErrors
}

var stepDefs = map[Step]stepDef{
	StepDateTime: {
		title:    "Select Date & Time",
		fields:   []string{services.FieldDate, services.FieldTime},
		validate: func(d models.Draft) services.FieldErrors { return services.ValidateSchedule(d.Schedule) },
	},
	StepAddress: {
		title:    "Service Address",
		fields:   []string{services.FieldAddress, services.FieldLandmark},
		validate: func(d models.Draft) services.FieldErrors { return services.ValidateLocation(d.Location) },
	},
	StepContact: {
		title:    "Contact Details",
		fields:   []string{services.FieldPhone, services.FieldInstructions},
		validate: func(d models.Draft) services.FieldErrors { return services.ValidateContact(d.Contact) },
	},
	StepPayment: {
		title:    "Payment Method",
		fields:   []string{services.FieldPayment},
		validate: func(d models.Draft) services.FieldErrors { return services.ValidatePayment(d.Payment) },
	},
	StepReview: {
		title:    "Review & Confirm",
		validate: func(models.Draft) services.FieldErrors { return services.FieldErrors{} },
	},
}

// Valid reports whether s is one of Steps.
func (s Step) Valid() bool {
	_, ok := stepDefs[s]
	return ok
}

// Title is the heading shown for the step.
func (s Step) Title() string { return stepDefs[s].title }

// Fields returns the draft fields edited on this step.
func (s Step) Fields() []string {
	return append([]string(nil), stepDefs[s].fields...)
}

// Validate runs the step's validator against d.
func (s Step) Validate(d models.Draft) services.FieldErrors {
	def, ok := stepDefs[s]
	if !ok {
		return services.FieldErrors{}
	}
	return def.validate(d)
}

func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return fmt.Sprintf("%d/%d %s", int(s), len(Steps), s.Title())
}

// State is where the wizard is beyond the step index.
type State int

const (
	// StateEditing is any of the five steps, including Review after a
	// failed submission.
	StateEditing State = iota
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return "editing"
	}
}
