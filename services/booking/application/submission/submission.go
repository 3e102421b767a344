// Package submission turns a completed wizard draft into a booking on the
// API. It issues exactly one request per call and never retries; transport
// retries happen below it in the gateway and are made safe by the
// idempotency key.
package submission

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ghuser/homebook/pkg/gateway"
	"github.com/ghuser/homebook/pkg/logger"
	"github.com/ghuser/homebook/pkg/validator"
	"github.com/ghuser/homebook/services/booking/domain"
	"github.com/ghuser/homebook/services/booking/domain/models"
)

const bookingsPath = "/bookings"

// API is the part of the gateway the service uses.
type API interface {
	Do(ctx context.Context, req gateway.Request, out any) error
}

// Service talks to the bookings endpoints.
type Service struct {
	api API
	log logger.Logger
}

// New returns a Service sending requests through api.
func New(api API, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{api: api, log: log}
}

// BuildRequest maps d onto the flat creation payload and validates it.
// Validation failures wrap domain.ErrInvalidBooking.
func BuildRequest(d models.Draft) (models.BookingRequest, error) {
	req := models.BookingRequest{
		ServiceID:     d.Service.ServiceID,
		ServiceTitle:  d.Service.Title,
		Category:      d.Service.Category,
		Time:          d.Schedule.Time.String(),
		Address:       strings.TrimSpace(d.Location.Address),
		Landmark:      strings.TrimSpace(d.Location.Landmark),
		Phone:         strings.TrimSpace(d.Contact.Phone),
		Instructions:  strings.TrimSpace(d.Contact.Instructions),
		PaymentMethod: string(d.Payment.MethodID),
		Price:         d.Service.UnitPrice,
	}
	if d.Schedule.Date != nil {
		req.Date = d.Schedule.Date.String()
	}
	if len(d.Surcharges) > 0 {
		req.Price = models.FormatPrice(d.Total())
	}
	if c := d.Location.Coordinates; c != nil {
		lat, lon := c.Latitude, c.Longitude
		req.Latitude, req.Longitude = &lat, &lon
	}

	if err := validator.Validate(req); err != nil {
		fields := validator.FormatValidationErrors(err)
		return req, fmt.Errorf("%w: %v", domain.ErrInvalidBooking, fields)
	}
	return req, nil
}

// CreateBooking posts d once. idempotencyKey lets the server recognise a
// retried delivery of the same attempt. Gateway errors are returned as is.
func (s *Service) CreateBooking(ctx context.Context, d models.Draft, idempotencyKey string) (*models.BookingRecord, error) {
	req, err := BuildRequest(d)
	if err != nil {
		return nil, err
	}

	var rec models.BookingRecord
	err = s.api.Do(ctx, gateway.Request{
		Method:         http.MethodPost,
		Path:           bookingsPath,
		Body:           req,
		IdempotencyKey: idempotencyKey,
	}, &rec)
	if err != nil {
		s.log.WarnContext(ctx, "submission: create booking failed",
			"service_id", req.ServiceID,
			"status", gateway.StatusCode(err),
			"error", err,
		)
		return nil, err
	}

	s.log.InfoContext(ctx, "submission: booking created", "booking_id", rec.ID, "status", rec.Status)
	return &rec, nil
}

// ListBookings returns the caller's bookings, optionally filtered by status.
func (s *Service) ListBookings(ctx context.Context, status models.Status) (*models.BookingList, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	var list models.BookingList
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodGet, Path: bookingsPath, Query: q}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetBooking fetches one booking by id.
func (s *Service) GetBooking(ctx context.Context, id string) (*models.BookingRecord, error) {
	var rec models.BookingRecord
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodGet, Path: bookingPath(id)}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CancelBooking cancels a booking and returns its updated record.
func (s *Service) CancelBooking(ctx context.Context, id string) (*models.BookingRecord, error) {
	var rec models.BookingRecord
	if err := s.api.Do(ctx, gateway.Request{Method: http.MethodDelete, Path: bookingPath(id)}, &rec); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "submission: booking cancelled", "booking_id", rec.ID)
	return &rec, nil
}

func bookingPath(id string) string {
	return bookingsPath + "/" + url.PathEscape(id)
}
