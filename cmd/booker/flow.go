package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ghuser/homebook/pkg/geo"
	"github.com/ghuser/homebook/services/booking/application/wizard"
	"github.com/ghuser/homebook/services/booking/domain/models"
	"github.com/ghuser/homebook/services/booking/domain/services"
)

var errAborted = errors.New("booking abandoned")

// flow drives one wizard from the terminal.
type flow struct {
	w            *wizard.Wizard
	p            *prompter
	defaultPhone string
	// offerLocation asks whether to fill the address from the current position.
	offerLocation bool
}

// run walks the steps until the booking is created or the user backs out of
// the first step.
func (f *flow) run(ctx context.Context) (*models.BookingRecord, error) {
	f.p.printf("Type %s at any prompt to go back.\n", backInput)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		step := f.w.Step()
		f.p.printf("\n== %s ==\n", step)

		var err error
		switch step {
		case wizard.StepDateTime:
			err = f.schedule()
		case wizard.StepAddress:
			err = f.address(ctx)
		case wizard.StepContact:
			err = f.contact()
		case wizard.StepPayment:
			err = f.payment()
		case wizard.StepReview:
			var rec *models.BookingRecord
			rec, err = f.review(ctx)
			if err == nil && rec != nil {
				return rec, nil
			}
			if err == nil {
				continue
			}
		}

		if errors.Is(err, errBack) {
			exit, rerr := f.w.Retreat()
			if rerr != nil {
				return nil, rerr
			}
			if exit {
				return nil, errAborted
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		if _, err := f.w.Advance(ctx); err != nil {
			var ve *wizard.ValidationError
			if errors.As(err, &ve) {
				f.printFieldErrors(ve.Fields)
				continue
			}
			return nil, err
		}
	}
}

func (f *flow) schedule() error {
	window := f.w.Window()
	dates := make([]string, len(window))
	for i, d := range window {
		dates[i] = fmt.Sprintf("%s (%s)", d, d.Weekday().String()[:3])
	}
	i, err := f.p.choose("Date", dates)
	if err != nil {
		return err
	}
	if err := f.w.SetField(services.FieldDate, window[i].String()); err != nil {
		return err
	}

	slots := make([]string, len(models.Slots))
	for i, s := range models.Slots {
		slots[i] = s.String()
	}
	i, err = f.p.choose("Time", slots)
	if err != nil {
		return err
	}
	return f.w.SetField(services.FieldTime, slots[i])
}

func (f *flow) address(ctx context.Context) error {
	if f.offerLocation {
		ok, err := f.p.confirm("Use current location?")
		if err != nil {
			return err
		}
		if ok {
			f.p.printf("Getting location...\n")
			res, err := f.w.ResolveCurrentLocation(ctx)
			switch {
			case errors.Is(err, geo.ErrPermissionDenied):
				f.p.printf("Location permission denied. Set LOCATION_CONSENT=true to allow it.\n")
			case err != nil:
				f.p.printf("Could not get your current location. Please enter the address.\n")
			default:
				f.p.printf("Found: %s\n", res.FormattedAddress)
			}
		}
	}

	loc := f.w.Draft().Location
	addr, err := f.p.ask("Address", loc.Address)
	if err != nil {
		return err
	}
	if err := f.w.SetField(services.FieldAddress, addr); err != nil {
		return err
	}
	landmark, err := f.p.ask("Landmark (optional)", loc.Landmark)
	if err != nil {
		return err
	}
	return f.w.SetField(services.FieldLandmark, landmark)
}

func (f *flow) contact() error {
	c := f.w.Draft().Contact
	def := c.Phone
	if def == "" {
		def = f.defaultPhone
	}
	phone, err := f.p.ask("Phone", def)
	if err != nil {
		return err
	}
	if err := f.w.SetField(services.FieldPhone, phone); err != nil {
		return err
	}
	instructions, err := f.p.ask("Instructions (optional)", c.Instructions)
	if err != nil {
		return err
	}
	return f.w.SetField(services.FieldInstructions, instructions)
}

func (f *flow) payment() error {
	names := make([]string, len(models.PaymentMethods))
	for i, m := range models.PaymentMethods {
		names[i] = m.DisplayName()
	}
	i, err := f.p.choose("Payment method", names)
	if err != nil {
		return err
	}
	return f.w.SetField(services.FieldPayment, string(models.PaymentMethods[i]))
}

// review shows the summary and submits on confirmation. A nil record with a
// nil error means stay on Review.
func (f *flow) review(ctx context.Context) (*models.BookingRecord, error) {
	d := f.w.Draft()
	f.p.printf("Service:  %s (%s)\n", d.Service.Title, d.Service.Category)
	if d.Schedule.Date != nil {
		f.p.printf("When:     %s at %s\n", d.Schedule.Date, d.Schedule.Time)
	}
	f.p.printf("Address:  %s\n", d.Location.Address)
	if d.Location.Landmark != "" {
		f.p.printf("Landmark: %s\n", d.Location.Landmark)
	}
	f.p.printf("Phone:    %s\n", d.Contact.Phone)
	if d.Contact.Instructions != "" {
		f.p.printf("Notes:    %s\n", d.Contact.Instructions)
	}
	f.p.printf("Payment:  %s\n", d.Payment.MethodID.DisplayName())
	f.p.printf("Total:    %s\n", models.FormatPrice(f.w.Total()))

	ok, err := f.p.confirm("Confirm booking?")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errBack
	}

	f.p.printf("Booking...\n")
	out, err := f.w.Advance(ctx)
	if err != nil {
		var ve *wizard.ValidationError
		if errors.As(err, &ve) {
			f.printFieldErrors(ve.Fields)
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.p.printf("%s\n", f.w.LastError())
		return nil, nil
	}
	return out.Record, nil
}

func (f *flow) printFieldErrors(errs services.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		f.p.printf("  ! %s: %s\n", field, errs[field])
	}
}
