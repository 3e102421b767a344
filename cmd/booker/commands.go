package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/ghuser/homebook/pkg/gateway"
	"github.com/ghuser/homebook/pkg/session"
	bookingServices "github.com/ghuser/homebook/services/booking/application/services"
	"github.com/ghuser/homebook/services/booking/application/wizard"
	"github.com/ghuser/homebook/services/booking/domain/models"
)

var errNotLoggedIn = errors.New("you are not logged in; run `booker login` first")

func (c *client) login(ctx context.Context, p *prompter) error {
	phone, err := p.ask("Phone number", "")
	if err != nil {
		return err
	}
	resp, err := c.auth.RequestOTP(ctx, phone)
	if err != nil {
		return errors.New(gateway.Message(err, "Could not send the code. Please try again."))
	}
	p.printf("%s\n", resp.Message)
	if resp.DevCode != "" {
		p.printf("(development code: %s)\n", resp.DevCode)
	}

	code, err := p.ask("Code", "")
	if err != nil {
		return err
	}
	name, err := p.ask("Your name (optional)", "")
	if err != nil {
		return err
	}
	profile, err := c.auth.VerifyOTP(ctx, phone, code, name)
	if err != nil {
		return errors.New(gateway.Message(err, "Verification failed. Please try again."))
	}

	who := profile.Name
	if who == "" {
		who = profile.Phone
	}
	p.printf("Logged in as %s\n", who)
	return nil
}

func (c *client) book(ctx context.Context, p *prompter, serviceID, title, category, price string) error {
	profile, err := c.requireProfile(ctx)
	if err != nil {
		return err
	}

	loc := bookingServices.Location(c.cfg.Timezone)
	w := wizard.New(
		models.ServiceRef{ServiceID: serviceID, Title: title, Category: category, UnitPrice: price},
		c.booking,
		wizard.WithResolver(c.resolver),
		wizard.WithLogger(c.log),
		wizard.WithClock(func() time.Time { return time.Now().In(loc) }),
	)
	f := &flow{w: w, p: p, defaultPhone: profile.Phone, offerLocation: true}

	rec, err := f.run(ctx)
	if errors.Is(err, errAborted) {
		p.printf("Booking abandoned.\n")
		return nil
	}
	if err != nil {
		return err
	}

	p.printf("\nBooking confirmed! Service partner will reach you shortly.\n")
	p.printf("Booking ID: %s\nStatus:     %s\n", rec.ID, rec.Status)
	return nil
}

func (c *client) bookings(ctx context.Context, out io.Writer, status string) error {
	if _, err := c.requireProfile(ctx); err != nil {
		return err
	}
	s := models.Status(status)
	if s != "" && !s.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}

	list, err := c.booking.ListBookings(ctx, s)
	if err != nil {
		return errors.New(gateway.Message(err, "Could not load bookings."))
	}
	return printBookings(out, list)
}

func (c *client) cancel(ctx context.Context, p *prompter, id string) error {
	if _, err := c.requireProfile(ctx); err != nil {
		return err
	}
	ok, err := p.confirm("Cancel booking " + id + "?")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	rec, err := c.booking.CancelBooking(ctx, id)
	if err != nil {
		return errors.New(gateway.Message(err, "Could not cancel the booking."))
	}
	p.printf("Booking %s is now %s.\n", rec.ID, rec.Status)
	return nil
}

func (c *client) logout(ctx context.Context, out io.Writer) error {
	if err := c.auth.Logout(ctx); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, "Logged out.")
	return err
}

// requireProfile returns the cached profile, or errNotLoggedIn when there
// is no stored credential.
func (c *client) requireProfile(ctx context.Context) (*session.Profile, error) {
	_, ok, err := c.sessions.Credential(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errNotLoggedIn
	}
	profile, err := c.sessions.Profile(ctx)
	if err != nil || profile == nil {
		profile, err = c.auth.Me(ctx)
		if err != nil {
			return nil, errors.New(gateway.Message(err, errNotLoggedIn.Error()))
		}
	}
	return profile, nil
}

func printBookings(out io.Writer, list *models.BookingList) error {
	if len(list.Bookings) == 0 {
		_, err := fmt.Fprintln(out, "No bookings yet.")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSERVICE\tDATE\tTIME\tPRICE\tSTATUS")
	for _, b := range list.Bookings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", b.ID, b.ServiceTitle, b.Date, b.Time, b.Price, b.Status)
	}
	fmt.Fprintf(tw, "\n%d of %d\n", len(list.Bookings), list.Total)
	return tw.Flush()
}
