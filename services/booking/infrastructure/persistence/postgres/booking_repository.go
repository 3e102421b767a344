package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/homebook/pkg/database"
	"github.com/ghuser/homebook/pkg/events"
	bookingdomain "github.com/ghuser/homebook/services/booking/domain"
	domainevents "github.com/ghuser/homebook/services/booking/domain/events"
	"github.com/ghuser/homebook/services/booking/domain/models"
	"github.com/ghuser/homebook/services/booking/domain/repositories"
	domainsvcs "github.com/ghuser/homebook/services/booking/domain/services"
	"github.com/ghuser/homebook/services/booking/infrastructure/persistence/postgres/db"
)

// BookingRepository implements repositories.BookingRepository against PostgreSQL.
type BookingRepository struct {
	db  *database.Database
	bus *events.EventBus
}

var _ repositories.BookingRepository = (*BookingRepository)(nil)

// NewBookingRepository returns a BookingRepository backed by the given connection pool
// and event bus. The bus is used to publish booking events through the outbox.
func NewBookingRepository(database *database.Database, bus *events.EventBus) *BookingRepository {
	return &BookingRepository{db: database, bus: bus}
}

// Create inserts b and publishes BookingCreatedEvent within the same transaction.
// Creates for one date and slot are serialized on an advisory lock, so the
// capacity count and the insert see the same slot. A key the user already
// booked under is returned with created=false before capacity is checked.
func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) (*models.Booking, bool, error) {
	var (
		stored  *models.Booking
		created bool
	)
	params := insertParams(b)
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.LockSlot(ctx, slotLockKey(params.BookingDate, params.TimeSlot)); err != nil {
			return fmt.Errorf("lock slot: %w", err)
		}

		loaded, err := r.loadByKey(ctx, q, b)
		if err != nil || loaded != nil {
			stored = loaded
			return err
		}

		active, err := q.CountActiveBookingsInSlot(ctx, db.CountActiveBookingsInSlotParams{
			BookingDate: params.BookingDate,
			TimeSlot:    params.TimeSlot,
		})
		if err != nil {
			return fmt.Errorf("count slot bookings: %w", err)
		}
		if err := domainsvcs.CheckCapacity(int(active)); err != nil {
			return err
		}

		_, err = q.InsertBooking(ctx, params)
		if errors.Is(err, sql.ErrNoRows) {
			// Same key inserted concurrently for a different slot.
			stored, err = r.loadByKey(ctx, q, b)
			if err == nil && stored == nil {
				err = errors.New("load replayed booking: row vanished")
			}
			return err
		}
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, b); err != nil {
				return fmt.Errorf("publish booking created: %w", err)
			}
		}
		stored, created = b, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

// loadByKey returns the booking b's user holds under b.IdempotencyKey, or nil.
func (r *BookingRepository) loadByKey(ctx context.Context, q *db.Queries, b *models.Booking) (*models.Booking, error) {
	row, err := q.GetBookingByIdempotencyKey(ctx, db.GetBookingByIdempotencyKeyParams{
		UserID:         b.UserID,
		IdempotencyKey: b.IdempotencyKey,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load booking by key: %w", err)
	}
	return rowToBooking(row), nil
}

func slotLockKey(date, slot string) string {
	return "booking.slot:" + date + "|" + slot
}

// GetByID retrieves a booking by ID scoped to the given user. Returns ErrBookingNotFound if not found.
func (r *BookingRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Booking, error) {
	q := db.New(r.db.DB())
	row, err := q.GetBookingByID(ctx, db.GetBookingByIDParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bookingdomain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("query booking: %w", err)
	}
	return rowToBooking(row), nil
}

// FindByIdempotencyKey retrieves the booking a user created under key.
func (r *BookingRepository) FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*models.Booking, error) {
	q := db.New(r.db.DB())
	row, err := q.GetBookingByIdempotencyKey(ctx, db.GetBookingByIdempotencyKeyParams{
		UserID:         userID,
		IdempotencyKey: key,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bookingdomain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("query booking by key: %w", err)
	}
	return rowToBooking(row), nil
}

// FindByUserID retrieves a paginated list of bookings and total count for the given user.
func (r *BookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, opts repositories.QueryOpts) ([]*models.Booking, int, error) {
	q := db.New(r.db.DB())

	rows, err := q.FindBookingsByUserID(ctx, db.FindBookingsByUserIDParams{
		UserID: userID,
		Status: string(opts.Status),
		Limit:  int32(opts.Limit),
		Offset: int32(opts.Offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("query bookings: %w", err)
	}

	total, err := q.CountBookingsByUserID(ctx, db.CountBookingsByUserIDParams{
		UserID: userID,
		Status: string(opts.Status),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	bookings := make([]*models.Booking, len(rows))
	for i, row := range rows {
		bookings[i] = rowToBooking(row)
	}
	return bookings, int(total), nil
}

// Cancel locks the booking row, checks its status and marks it cancelled.
// Returns ErrBookingNotFound or ErrNotCancellable without writing anything.
func (r *BookingRepository) Cancel(ctx context.Context, userID, id uuid.UUID) (*models.Booking, error) {
	var cancelled *models.Booking
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.GetBookingForUpdate(ctx, db.GetBookingByIDParams{ID: id, UserID: userID})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return bookingdomain.ErrBookingNotFound
			}
			return fmt.Errorf("lock booking: %w", err)
		}

		b := rowToBooking(row)
		if !b.Status.CanCancel() {
			return fmt.Errorf("%w: booking is %s", bookingdomain.ErrNotCancellable, b.Status)
		}

		b.Status = models.StatusCancelled
		b.UpdatedAt = time.Now().UTC()
		if err := q.UpdateBookingStatus(ctx, db.UpdateBookingStatusParams{
			ID:        b.ID,
			UserID:    b.UserID,
			Status:    string(b.Status),
			UpdatedAt: b.UpdatedAt,
		}); err != nil {
			return fmt.Errorf("update booking status: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCancelled(tx, b); err != nil {
				return fmt.Errorf("publish booking cancelled: %w", err)
			}
		}
		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (r *BookingRepository) publishCreated(tx *sql.Tx, b *models.Booking) error {
	req := b.Request
	event := domainevents.BookingCreatedEvent{
		EventID:       uuid.New(),
		Version:       1,
		BookingID:     b.ID,
		UserID:        b.UserID,
		ServiceID:     req.ServiceID,
		ServiceTitle:  req.ServiceTitle,
		Category:      req.Category,
		Date:          req.Date,
		Time:          req.Time,
		Address:       req.Address,
		Landmark:      req.Landmark,
		Phone:         req.Phone,
		Instructions:  req.Instructions,
		PaymentMethod: req.PaymentMethod,
		Price:         req.Price,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Status:        string(b.Status),
		OccurredAt:    b.CreatedAt,
	}
	return r.publish(tx, domainevents.TopicBookingCreated, event.EventID, event.Version, event)
}

func (r *BookingRepository) publishCancelled(tx *sql.Tx, b *models.Booking) error {
	event := domainevents.BookingCancelledEvent{
		EventID:    uuid.New(),
		Version:    1,
		BookingID:  b.ID,
		UserID:     b.UserID,
		OccurredAt: b.UpdatedAt,
	}
	return r.publish(tx, domainevents.TopicBookingCancelled, event.EventID, event.Version, event)
}

func (r *BookingRepository) publish(tx *sql.Tx, topic string, eventID uuid.UUID, version int, event any) error {
	msg, err := events.NewMessage(eventID, version, event)
	if err != nil {
		return err
	}
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

func insertParams(b *models.Booking) db.InsertBookingParams {
	req := b.Request
	return db.InsertBookingParams{
		ID:             b.ID,
		UserID:         b.UserID,
		IdempotencyKey: b.IdempotencyKey,
		ServiceID:      req.ServiceID,
		ServiceTitle:   req.ServiceTitle,
		Category:       req.Category,
		BookingDate:    req.Date,
		TimeSlot:       req.Time,
		Address:        req.Address,
		Landmark:       req.Landmark,
		Phone:          req.Phone,
		Instructions:   req.Instructions,
		PaymentMethod:  req.PaymentMethod,
		Price:          req.Price,
		Latitude:       nullFloat(req.Latitude),
		Longitude:      nullFloat(req.Longitude),
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// rowToBooking maps a db.BookingBooking to a domain models.Booking.
func rowToBooking(row db.BookingBooking) *models.Booking {
	return &models.Booking{
		ID:             row.ID,
		UserID:         row.UserID,
		IdempotencyKey: row.IdempotencyKey,
		Request: models.BookingRequest{
			ServiceID:     row.ServiceID,
			ServiceTitle:  row.ServiceTitle,
			Category:      row.Category,
			Date:          row.BookingDate.Format(models.DateLayout),
			Time:          row.TimeSlot,
			Address:       row.Address,
			Landmark:      row.Landmark,
			Phone:         row.Phone,
			Instructions:  row.Instructions,
			PaymentMethod: row.PaymentMethod,
			Price:         row.Price,
			Latitude:      floatPtr(row.Latitude),
			Longitude:     floatPtr(row.Longitude),
		},
		Status:    models.Status(row.Status),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
