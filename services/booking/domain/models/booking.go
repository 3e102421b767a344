package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingRecord is the persisted booking as the API returns it.
type BookingRecord struct {
	ID            string    `json:"id"                     example:"5f0c2b1e-8d8a-4c55-9a7e-2b1c4f0a9e11"`
	UserID        string    `json:"userId,omitempty"`
	ServiceID     string    `json:"serviceId"`
	ServiceTitle  string    `json:"serviceTitle"`
	Category      string    `json:"category"`
	Date          string    `json:"date"                   example:"2026-10-20"`
	Time          string    `json:"time"                   example:"10:00 AM"`
	Address       string    `json:"address"`
	Landmark      string    `json:"landmark,omitempty"`
	Phone         string    `json:"phone"`
	Instructions  string    `json:"instructions,omitempty"`
	PaymentMethod string    `json:"paymentMethod"`
	Price         string    `json:"price"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Status        Status    `json:"status"                 example:"pending"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
} // @name BookingRecord

// Booking is the server-side aggregate. IdempotencyKey scopes replays of
// the same create request per user.
type Booking struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	IdempotencyKey string
	Request        BookingRequest
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewBooking constructs a pending Booking with a generated ID.
func NewBooking(userID uuid.UUID, idempotencyKey string, req BookingRequest) *Booking {
	now := time.Now().UTC()
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	return &Booking{
		ID:             uuid.New(),
		UserID:         userID,
		IdempotencyKey: idempotencyKey,
		Request:        req,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Record renders b in its wire shape.
func (b *Booking) Record() *BookingRecord {
	r := b.Request
	return &BookingRecord{
		ID:            b.ID.String(),
		UserID:        b.UserID.String(),
		ServiceID:     r.ServiceID,
		ServiceTitle:  r.ServiceTitle,
		Category:      r.Category,
		Date:          r.Date,
		Time:          r.Time,
		Address:       r.Address,
		Landmark:      r.Landmark,
		Phone:         r.Phone,
		Instructions:  r.Instructions,
		PaymentMethod: r.PaymentMethod,
		Price:         r.Price,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// SamePayload reports whether req matches the request b was created from.
// Used to tell an honest replay from a reused idempotency key.
func (b *Booking) SamePayload(req BookingRequest) bool {
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	a := b.Request
	return a.ServiceID == req.ServiceID &&
		a.ServiceTitle == req.ServiceTitle &&
		a.Category == req.Category &&
		a.Date == req.Date &&
		a.Time == req.Time &&
		a.Address == req.Address &&
		a.Landmark == req.Landmark &&
		a.Phone == req.Phone &&
		a.Instructions == req.Instructions &&
		a.PaymentMethod == req.PaymentMethod &&
		a.Price == req.Price &&
		floatPtrEqual(a.Latitude, req.Latitude) &&
		floatPtrEqual(a.Longitude, req.Longitude)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// BookingList is the GET /bookings response.
type BookingList struct {
	Bookings []BookingRecord `json:"bookings"`
	Total    int             `json:"total"`
} // @name BookingList
