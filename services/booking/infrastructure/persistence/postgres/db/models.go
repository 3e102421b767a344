package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type BookingBooking struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	IdempotencyKey string
	ServiceID      string
	ServiceTitle   string
	Category       string
	BookingDate    time.Time
	TimeSlot       string
	Address        string
	Landmark       string
	Phone          string
	Instructions   string
	PaymentMethod  string
	Price          string
	Latitude       sql.NullFloat64
	Longitude      sql.NullFloat64
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
