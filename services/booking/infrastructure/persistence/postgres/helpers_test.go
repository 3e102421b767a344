package postgres

import (
	"time"

	"github.com/ghuser/homebook/services/booking/infrastructure/persistence/postgres/db"
)

// rowFromParams builds the row Postgres would return for p.
func rowFromParams(p db.InsertBookingParams, date time.Time) db.BookingBooking {
	return db.BookingBooking{
		ID:             p.ID,
		UserID:         p.UserID,
		IdempotencyKey: p.IdempotencyKey,
		ServiceID:      p.ServiceID,
		ServiceTitle:   p.ServiceTitle,
		Category:       p.Category,
		BookingDate:    date,
		TimeSlot:       p.TimeSlot,
		Address:        p.Address,
		Landmark:       p.Landmark,
		Phone:          p.Phone,
		Instructions:   p.Instructions,
		PaymentMethod:  p.PaymentMethod,
		Price:          p.Price,
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
