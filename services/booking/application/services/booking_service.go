package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/homebook/pkg/cache"
	"github.com/ghuser/homebook/pkg/logger"
	"github.com/ghuser/homebook/pkg/telemetry"
	"github.com/ghuser/homebook/pkg/validator"
	bookingdomain "github.com/ghuser/homebook/services/booking/domain"
	"github.com/ghuser/homebook/services/booking/domain/models"
	"github.com/ghuser/homebook/services/booking/domain/repositories"
	domainsvcs "github.com/ghuser/homebook/services/booking/domain/services"
)

// Page size bounds for List.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ReadModel is the booking cache. *pkgcache.BookingCache satisfies it.
type ReadModel interface {
	Get(ctx context.Context, userID, bookingID uuid.UUID) (*pkgcache.CachedBooking, error)
	Set(ctx context.Context, b *pkgcache.CachedBooking) error
	Delete(ctx context.Context, userID, bookingID uuid.UUID) error
}

// BookingService orchestrates creation, retrieval and cancellation of bookings.
// Event publishing is handled by the repository layer (outbox pattern).
// Reads are served from Redis cache when available.
type BookingService struct {
	repo    repositories.BookingRepository
	cache   ReadModel
	log     logger.Logger
	now     func() time.Time
	created *telemetry.Counter
}

// NewBookingService returns a BookingService. cache may be nil. now decides
// both the current time and the zone slots are interpreted in.
func NewBookingService(repo repositories.BookingRepository, cache ReadModel, log logger.Logger, now func() time.Time) *BookingService {
	return &BookingService{
		repo:    repo,
		cache:   cache,
		log:     log,
		now:     now,
		created: telemetry.NewCounter("homebook/booking", "bookings.created", "Bookings by creation outcome"),
	}
}

// Create validates req, checks the slot and persists a pending booking.
// Capacity is enforced by the repository inside the insert.
// created is false when key replays an earlier identical request; the
// stored booking is returned unchanged. The same key with a different
// payload is ErrDuplicateRequest. An empty key disables replay detection.
func (s *BookingService) Create(ctx context.Context, userID uuid.UUID, key string, req models.BookingRequest) (*models.Booking, bool, error) {
	if err := validator.Validate(req); err != nil {
		return nil, false, fmt.Errorf("%w: %w", bookingdomain.ErrInvalidBooking, err)
	}

	if key == "" {
		key = uuid.NewString()
	} else {
		existing, err := s.repo.FindByIdempotencyKey(ctx, userID, key)
		switch {
		case err == nil:
			return s.replay(ctx, existing, req)
		case !errors.Is(err, bookingdomain.ErrBookingNotFound):
			return nil, false, fmt.Errorf("check idempotency key: %w", err)
		}
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", bookingdomain.ErrInvalidBooking, err)
	}
	slot := models.Slot(req.Time)
	if err := domainsvcs.CheckSlot(s.now(), date, slot); err != nil {
		s.created.Inc(ctx, "outcome", "slot_unavailable")
		return nil, false, err
	}

	stored, created, err := s.repo.Create(ctx, models.NewBooking(userID, key, req))
	if errors.Is(err, bookingdomain.ErrSlotUnavailable) {
		s.created.Inc(ctx, "outcome", "slot_full")
		return nil, false, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("save booking: %w", err)
	}
	if !created {
		return s.replay(ctx, stored, req)
	}

	s.created.Inc(ctx, "outcome", "created")
	s.log.InfoContext(ctx, "booking created",
		"booking_id", stored.ID, "service_id", req.ServiceID, "date", req.Date, "time", req.Time)
	return stored, true, nil
}

func (s *BookingService) replay(ctx context.Context, existing *models.Booking, req models.BookingRequest) (*models.Booking, bool, error) {
	if !existing.SamePayload(req) {
		s.log.WarnContext(ctx, "idempotency key reused with different payload", "booking_id", existing.ID)
		return nil, false, bookingdomain.ErrDuplicateRequest
	}
	s.created.Inc(ctx, "outcome", "replayed")
	s.log.InfoContext(ctx, "booking request replayed", "booking_id", existing.ID)
	return existing, false, nil
}

// GetByID retrieves a booking using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *BookingService) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Booking, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, userID, id); err == nil {
			return FromCached(cached), nil
		} else if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "booking cache read failed", "booking_id", id, "error", err)
		}
	}

	b, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	if s.cache != nil {
		go func() {
			if err := s.cache.Set(context.Background(), ToCached(b)); err != nil {
				s.log.Warn("booking cache warm failed", "booking_id", b.ID, "error", err)
			}
		}()
	}

	return b, nil
}

// List returns a page of the user's bookings plus the total count.
func (s *BookingService) List(ctx context.Context, userID uuid.UUID, opts repositories.QueryOpts) ([]*models.Booking, int, error) {
	if opts.Status != "" && !opts.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", bookingdomain.ErrInvalidBooking, opts.Status)
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultPageSize
	}
	if opts.Limit > MaxPageSize {
		opts.Limit = MaxPageSize
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	bookings, total, err := s.repo.FindByUserID(ctx, userID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, total, nil
}

// Cancel cancels the booking and drops it from the cache.
// Returns ErrBookingNotFound or ErrNotCancellable.
func (s *BookingService) Cancel(ctx context.Context, userID, id uuid.UUID) (*models.Booking, error) {
	b, err := s.repo.Cancel(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, userID, id); err != nil {
			s.log.WarnContext(ctx, "booking cache evict failed", "booking_id", id, "error", err)
		}
	}
	s.log.InfoContext(ctx, "booking cancelled", "booking_id", id)
	return b, nil
}

// ToCached flattens b into the cache read model.
func ToCached(b *models.Booking) *pkgcache.CachedBooking {
	r := b.Request
	return &pkgcache.CachedBooking{
		ID:            b.ID,
		UserID:        b.UserID,
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
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromCached rebuilds a Booking from the cache read model.
func FromCached(c *pkgcache.CachedBooking) *models.Booking {
	return &models.Booking{
		ID:     c.ID,
		UserID: c.UserID,
		Request: models.BookingRequest{
			ServiceID:     c.ServiceID,
			ServiceTitle:  c.ServiceTitle,
			Category:      c.Category,
			Date:          c.Date,
			Time:          c.Time,
			Address:       c.Address,
			Landmark:      c.Landmark,
			Phone:         c.Phone,
			Instructions:  c.Instructions,
			PaymentMethod: c.PaymentMethod,
			Price:         c.Price,
			Latitude:      c.Latitude,
			Longitude:     c.Longitude,
		},
		Status:    models.Status(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
