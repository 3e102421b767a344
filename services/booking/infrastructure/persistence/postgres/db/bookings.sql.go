package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const bookingColumns = `id, user_id, idempotency_key, service_id, service_title, category,
    booking_date, time_slot, address, landmark, phone, instructions,
    payment_method, price, latitude, longitude, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (BookingBooking, error) {
	var i BookingBooking
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.IdempotencyKey,
		&i.ServiceID,
		&i.ServiceTitle,
		&i.Category,
		&i.BookingDate,
		&i.TimeSlot,
		&i.Address,
		&i.Landmark,
		&i.Phone,
		&i.Instructions,
		&i.PaymentMethod,
		&i.Price,
		&i.Latitude,
		&i.Longitude,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertBooking = `-- name: InsertBooking :one
INSERT INTO booking.bookings (` + bookingColumns + `
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
)
ON CONFLICT (user_id, idempotency_key) DO NOTHING
RETURNING id
`

type InsertBookingParams struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	IdempotencyKey string
	ServiceID      string
	ServiceTitle   string
	Category       string
	BookingDate    string
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

// InsertBooking returns sql.ErrNoRows when the user already has a booking
// under the idempotency key.
func (q *Queries) InsertBooking(ctx context.Context, arg InsertBookingParams) (uuid.UUID, error) {
	row := q.db.QueryRowContext(ctx, insertBooking,
		arg.ID,
		arg.UserID,
		arg.IdempotencyKey,
		arg.ServiceID,
		arg.ServiceTitle,
		arg.Category,
		arg.BookingDate,
		arg.TimeSlot,
		arg.Address,
		arg.Landmark,
		arg.Phone,
		arg.Instructions,
		arg.PaymentMethod,
		arg.Price,
		arg.Latitude,
		arg.Longitude,
		arg.Status,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const getBookingByID = `-- name: GetBookingByID :one
SELECT ` + bookingColumns + ` FROM booking.bookings
WHERE id = $1 AND user_id = $2
`

type GetBookingByIDParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) GetBookingByID(ctx context.Context, arg GetBookingByIDParams) (BookingBooking, error) {
	return scanBooking(q.db.QueryRowContext(ctx, getBookingByID, arg.ID, arg.UserID))
}

const getBookingForUpdate = `-- name: GetBookingForUpdate :one
SELECT ` + bookingColumns + ` FROM booking.bookings
WHERE id = $1 AND user_id = $2
FOR UPDATE
`

func (q *Queries) GetBookingForUpdate(ctx context.Context, arg GetBookingByIDParams) (BookingBooking, error) {
	return scanBooking(q.db.QueryRowContext(ctx, getBookingForUpdate, arg.ID, arg.UserID))
}

const getBookingByIdempotencyKey = `-- name: GetBookingByIdempotencyKey :one
SELECT ` + bookingColumns + ` FROM booking.bookings
WHERE user_id = $1 AND idempotency_key = $2
`

type GetBookingByIdempotencyKeyParams struct {
	UserID         uuid.UUID
	IdempotencyKey string
}

func (q *Queries) GetBookingByIdempotencyKey(ctx context.Context, arg GetBookingByIdempotencyKeyParams) (BookingBooking, error) {
	return scanBooking(q.db.QueryRowContext(ctx, getBookingByIdempotencyKey, arg.UserID, arg.IdempotencyKey))
}

const findBookingsByUserID = `-- name: FindBookingsByUserID :many
SELECT ` + bookingColumns + ` FROM booking.bookings
WHERE user_id = $1 AND ($2::text = '' OR status = $2)
ORDER BY created_at DESC
LIMIT $3 OFFSET $4
`

type FindBookingsByUserIDParams struct {
	UserID uuid.UUID
	Status string
	Limit  int32
	Offset int32
}

func (q *Queries) FindBookingsByUserID(ctx context.Context, arg FindBookingsByUserIDParams) ([]BookingBooking, error) {
	rows, err := q.db.QueryContext(ctx, findBookingsByUserID, arg.UserID, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BookingBooking
	for rows.Next() {
		i, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countBookingsByUserID = `-- name: CountBookingsByUserID :one
SELECT count(*) FROM booking.bookings
WHERE user_id = $1 AND ($2::text = '' OR status = $2)
`

type CountBookingsByUserIDParams struct {
	UserID uuid.UUID
	Status string
}

func (q *Queries) CountBookingsByUserID(ctx context.Context, arg CountBookingsByUserIDParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countBookingsByUserID, arg.UserID, arg.Status)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countActiveBookingsInSlot = `-- name: CountActiveBookingsInSlot :one
SELECT count(*) FROM booking.bookings
WHERE booking_date = $1 AND time_slot = $2 AND status NOT IN ('cancelled', 'completed')
`

type CountActiveBookingsInSlotParams struct {
	BookingDate string
	TimeSlot    string
}

func (q *Queries) CountActiveBookingsInSlot(ctx context.Context, arg CountActiveBookingsInSlotParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countActiveBookingsInSlot, arg.BookingDate, arg.TimeSlot)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const lockSlot = `-- name: LockSlot :exec
SELECT pg_advisory_xact_lock(hashtext($1))
`

// LockSlot holds a transaction-scoped advisory lock on key until commit or rollback.
func (q *Queries) LockSlot(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, lockSlot, key)
	return err
}

const updateBookingStatus = `-- name: UpdateBookingStatus :exec
UPDATE booking.bookings
SET status = $3, updated_at = $4
WHERE id = $1 AND user_id = $2
`

type UpdateBookingStatusParams struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Status    string
	UpdatedAt time.Time
}

func (q *Queries) UpdateBookingStatus(ctx context.Context, arg UpdateBookingStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateBookingStatus,
		arg.ID,
		arg.UserID,
		arg.Status,
		arg.UpdatedAt,
	)
	return err
}
