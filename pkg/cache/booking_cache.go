package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// BookingCacheTTL is the time-to-live for cached bookings.
	BookingCacheTTL = 24 * time.Hour

	bookingCacheKeyPrefix = "booking"
)

// CachedBooking is the denormalized read model stored in Redis.
// Fields are stored as a Redis hash. Coordinates are empty strings when absent.
type CachedBooking struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ServiceID     string
	ServiceTitle  string
	Category      string
	Date          string
	Time          string
	Address       string
	Landmark      string
	Phone         string
	Instructions  string
	PaymentMethod string
	Price         string
	Latitude      *float64
	Longitude     *float64
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BookingCache provides structured read/write operations for booking cache entries.
// Keys are scoped by userID so one customer can never read another's booking.
// Key format: "booking:{userID}:{bookingID}"
type BookingCache struct {
	client *RedisClient
}

// NewBookingCache creates a new BookingCache backed by the given RedisClient.
func NewBookingCache(r *RedisClient) *BookingCache {
	return &BookingCache{client: r}
}

// Get retrieves a cached booking by user + booking ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *BookingCache) Get(ctx context.Context, userID, bookingID uuid.UUID) (*CachedBooking, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(userID, bookingID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}
	return decodeBooking(vals)
}

// Set writes a cached booking as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *BookingCache) Set(ctx context.Context, b *CachedBooking) error {
	key := c.key(b.UserID, b.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key, encodeBooking(b)...)
	pipe.Expire(ctx, key, BookingCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached booking.
func (c *BookingCache) Delete(ctx context.Context, userID, bookingID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(userID, bookingID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "booking:{userID}:{bookingID}"
func (c *BookingCache) key(userID, bookingID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", bookingCacheKeyPrefix, userID, bookingID)
}

func encodeBooking(b *CachedBooking) []any {
	return []any{
		"id", b.ID.String(),
		"user_id", b.UserID.String(),
		"service_id", b.ServiceID,
		"service_title", b.ServiceTitle,
		"category", b.Category,
		"date", b.Date,
		"time", b.Time,
		"address", b.Address,
		"landmark", b.Landmark,
		"phone", b.Phone,
		"instructions", b.Instructions,
		"payment_method", b.PaymentMethod,
		"price", b.Price,
		"latitude", formatCoord(b.Latitude),
		"longitude", formatCoord(b.Longitude),
		"status", b.Status,
		"created_at", b.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at", b.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeBooking(vals map[string]string) (*CachedBooking, error) {
	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	userID, err := uuid.Parse(vals["user_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse user_id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}
	lat, err := parseCoord(vals["latitude"])
	if err != nil {
		return nil, fmt.Errorf("cache parse latitude: %w", err)
	}
	lon, err := parseCoord(vals["longitude"])
	if err != nil {
		return nil, fmt.Errorf("cache parse longitude: %w", err)
	}

	return &CachedBooking{
		ID:            id,
		UserID:        userID,
		ServiceID:     vals["service_id"],
		ServiceTitle:  vals["service_title"],
		Category:      vals["category"],
		Date:          vals["date"],
		Time:          vals["time"],
		Address:       vals["address"],
		Landmark:      vals["landmark"],
		Phone:         vals["phone"],
		Instructions:  vals["instructions"],
		PaymentMethod: vals["payment_method"],
		Price:         vals["price"],
		Latitude:      lat,
		Longitude:     lon,
		Status:        vals["status"],
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseCoord(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
