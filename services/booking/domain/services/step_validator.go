// Package services contains stateless domain services for the booking
// context: per-step draft validation and slot availability rules. They
// operate purely on domain types.
package services

import (
	"strings"
	"unicode/utf8"

	"github.com/ghuser/homebook/services/booking/domain/models"
)

// Field names used as FieldErrors keys.
const (
	FieldDate         = "date"
	FieldTime         = "time"
	FieldAddress      = "address"
	FieldLandmark     = "landmark"
	FieldPhone        = "phone"
	FieldInstructions = "instructions"
	FieldPayment      = "payment"
)

// Messages shown next to a failing field.
const (
	MsgDateRequired    = "Please select a date"
	MsgTimeRequired    = "Please select a time"
	MsgAddressRequired = "Address is required"
	MsgAddressTooShort = "Please provide a complete address"
	MsgPhoneRequired   = "Phone number is required"
	MsgPhoneInvalid    = "Please enter a valid phone number"
	MsgPaymentRequired = "Please select a payment method"
	MsgAddressTooLong  = "Address is too long"
	MsgLandmarkTooLong = "Landmark is too long"
	MsgNotesTooLong    = "Instructions are too long"
)

// Length limits match the validate tags on models.BookingRequest.
const (
	minAddressLength      = 10
	maxAddressLength      = 500
	maxLandmarkLength     = 200
	maxInstructionsLength = 1000
)

// FieldErrors maps a field name to its message. Empty means valid.
type FieldErrors map[string]string

// OK reports whether no field failed.
func (f FieldErrors) OK() bool { return len(f) == 0 }

// ValidateSchedule requires both a date and a known slot.
func ValidateSchedule(s models.Schedule) FieldErrors {
	errs := FieldErrors{}
	if s.Date == nil || s.Date.IsZero() {
		errs[FieldDate] = MsgDateRequired
	}
	if !s.Time.Valid() {
		errs[FieldTime] = MsgTimeRequired
	}
	return errs
}

// ValidateLocation requires an address of 10 to 500 characters once trimmed
// and a landmark of at most 200.
func ValidateLocation(l models.Location) FieldErrors {
	errs := FieldErrors{}
	addr := strings.TrimSpace(l.Address)
	switch n := utf8.RuneCountInString(addr); {
	case addr == "":
		errs[FieldAddress] = MsgAddressRequired
	case n < minAddressLength:
		errs[FieldAddress] = MsgAddressTooShort
	case n > maxAddressLength:
		errs[FieldAddress] = MsgAddressTooLong
	}
	if utf8.RuneCountInString(strings.TrimSpace(l.Landmark)) > maxLandmarkLength {
		errs[FieldLandmark] = MsgLandmarkTooLong
	}
	return errs
}

// ValidateContact requires exactly 10 digits once non-digits are stripped
// and instructions of at most 1000 characters.
func ValidateContact(c models.Contact) FieldErrors {
	errs := FieldErrors{}
	switch {
	case strings.TrimSpace(c.Phone) == "":
		errs[FieldPhone] = MsgPhoneRequired
	case !models.ValidPhone(c.Phone):
		errs[FieldPhone] = MsgPhoneInvalid
	}
	if utf8.RuneCountInString(strings.TrimSpace(c.Instructions)) > maxInstructionsLength {
		errs[FieldInstructions] = MsgNotesTooLong
	}
	return errs
}

// ValidatePayment requires one of the accepted payment methods.
func ValidatePayment(p models.Payment) FieldErrors {
	errs := FieldErrors{}
	if !p.MethodID.Valid() {
		errs[FieldPayment] = MsgPaymentRequired
	}
	return errs
}

// ValidateDraft runs every step validator and merges the results.
func ValidateDraft(d models.Draft) FieldErrors {
	errs := FieldErrors{}
	for _, fe := range []FieldErrors{
		ValidateSchedule(d.Schedule),
		ValidateLocation(d.Location),
		ValidateContact(d.Contact),
		ValidatePayment(d.Payment),
	} {
		for k, v := range fe {
			errs[k] = v
		}
	}
	return errs
}
