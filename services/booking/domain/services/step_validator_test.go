package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ghuser/homebook/services/booking/domain"
	"github.com/ghuser/homebook/services/booking/domain/models"
)

func date(y int, m time.Month, d int) *models.Date {
	return &models.Date{Year: y, Month: m, Day: d}
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name  string
		s     models.Schedule
		wants map[string]string
	}{
		{"complete", models.Schedule{Date: date(2026, 10, 20), Time: "10:00 AM"}, map[string]string{}},
		{"empty", models.Schedule{}, map[string]string{FieldDate: MsgDateRequired, FieldTime: MsgTimeRequired}},
		{"missing time", models.Schedule{Date: date(2026, 10, 20)}, map[string]string{FieldTime: MsgTimeRequired}},
		{"unknown slot", models.Schedule{Date: date(2026, 10, 20), Time: "8:00 PM"}, map[string]string{FieldTime: MsgTimeRequired}},
		{"missing date", models.Schedule{Time: "9:00 AM"}, map[string]string{FieldDate: MsgDateRequired}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFieldErrors(t, ValidateSchedule(tt.s), tt.wants)
		})
	}
}

func TestValidateLocation(t *testing.T) {
	tests := []struct {
		address string
		wants   map[string]string
	}{
		{"42, MG Road, Bengaluru", map[string]string{}},
		{"", map[string]string{FieldAddress: MsgAddressRequired}},
		{"    ", map[string]string{FieldAddress: MsgAddressRequired}},
		{"MG Road", map[string]string{FieldAddress: MsgAddressTooShort}},
		{"  123456789  ", map[string]string{FieldAddress: MsgAddressTooShort}},
		{"1234567890", map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			assertFieldErrors(t, ValidateLocation(models.Location{Address: tt.address}), tt.wants)
		})
	}
}

func TestValidateLocation_LengthLimits(t *testing.T) {
	long := strings.Repeat("ह", maxAddressLength+1)
	assertFieldErrors(t, ValidateLocation(models.Location{Address: long}),
		map[string]string{FieldAddress: MsgAddressTooLong})
	assertFieldErrors(t, ValidateLocation(models.Location{Address: strings.Repeat("ह", maxAddressLength)}),
		map[string]string{})
	assertFieldErrors(t, ValidateLocation(models.Location{Address: "42, MG Road, Bengaluru", Landmark: strings.Repeat("x", maxLandmarkLength+1)}),
		map[string]string{FieldLandmark: MsgLandmarkTooLong})
}

func TestValidateContact_InstructionsLimit(t *testing.T) {
	assertFieldErrors(t, ValidateContact(models.Contact{Phone: "9876543210", Instructions: strings.Repeat("x", maxInstructionsLength+1)}),
		map[string]string{FieldInstructions: MsgNotesTooLong})
	assertFieldErrors(t, ValidateContact(models.Contact{Phone: "9876543210", Instructions: strings.Repeat("x", maxInstructionsLength)}),
		map[string]string{})
}

func TestValidateContact(t *testing.T) {
	tests := []struct {
		phone string
		wants map[string]string
	}{
		{"98765-43210", map[string]string{}},
		{"9876543210", map[string]string{}},
		{"12345", map[string]string{FieldPhone: MsgPhoneInvalid}},
		{"98765432101", map[string]string{FieldPhone: MsgPhoneInvalid}},
		{"", map[string]string{FieldPhone: MsgPhoneRequired}},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assertFieldErrors(t, ValidateContact(models.Contact{Phone: tt.phone}), tt.wants)
		})
	}
}

func TestValidatePayment(t *testing.T) {
	assertFieldErrors(t, ValidatePayment(models.Payment{MethodID: models.PaymentCard}), map[string]string{})
	assertFieldErrors(t, ValidatePayment(models.Payment{}), map[string]string{FieldPayment: MsgPaymentRequired})
	assertFieldErrors(t, ValidatePayment(models.Payment{MethodID: "cheque"}), map[string]string{FieldPayment: MsgPaymentRequired})
}

func TestValidateDraft_MergesAllSteps(t *testing.T) {
	errs := ValidateDraft(models.Draft{})
	for _, f := range []string{FieldDate, FieldTime, FieldAddress, FieldPhone, FieldPayment} {
		if _, ok := errs[f]; !ok {
			t.Errorf("expected %s error, got %v", f, errs)
		}
	}
	if errs.OK() {
		t.Fatal("expected errors")
	}
}

func TestCheckSlot(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2026, 10, 18, 11, 30, 0, 0, loc)
	today := models.DateOf(now)

	tests := []struct {
		name    string
		date    models.Date
		slot    models.Slot
		wantErr bool
	}{
		{"later today", today, "2:00 PM", false},
		{"current hour today", today, "11:00 AM", true},
		{"earlier today", today, "9:00 AM", true},
		{"tomorrow morning", today.AddDays(1), "9:00 AM", false},
		{"last window day", today.AddDays(6), "6:00 PM", false},
		{"beyond window", today.AddDays(7), "9:00 AM", true},
		{"yesterday", today.AddDays(-1), "2:00 PM", true},
		{"unknown slot", today.AddDays(1), "7:00 PM", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSlot(now, tt.date, tt.slot)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrSlotUnavailable) {
					t.Fatalf("expected ErrSlotUnavailable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckCapacity(t *testing.T) {
	if err := CheckCapacity(SlotCapacity - 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckCapacity(SlotCapacity); !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
}

func assertFieldErrors(t *testing.T, got FieldErrors, want map[string]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("field %s: expected %q, got %q", k, v, got[k])
		}
	}
}
