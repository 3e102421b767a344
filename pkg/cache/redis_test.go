package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/homebook/pkg/config"
)

// newTestConfig returns a config pointing to REDIS_URL env var, falling back to localhost.
func newTestConfig(url string) *config.Config {
	return &config.Config{
		RedisURL: url,
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(newTestConfig("not-a-valid-url"))
	if err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	_, err := NewRedisClient(newTestConfig("redis://localhost:19999"))
	if err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

// Integration tests: skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	t.Run("NewRedisClient_Success", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck
	})

	t.Run("Ping_Success", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		if err := rc.Ping(context.Background()); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("Close_Idempotent", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := rc.Close(); err != nil {
			t.Fatalf("first Close failed: %v", err)
		}
	})

	t.Run("Client_NotNil", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		if rc.Client() == nil {
			t.Fatal("expected non-nil underlying client")
		}
	})
}

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != OTPLength {
			t.Fatalf("expected %d digits, got %q", OTPLength, code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("expected digits only, got %q", code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected codes to vary")
	}
}

func TestBookingCache_EncodeDecodeRoundTrip(t *testing.T) {
	lat := 12.9716
	in := &CachedBooking{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		ServiceID:     "svc-deep-clean",
		ServiceTitle:  "Deep Home Cleaning",
		Date:          "2026-10-20",
		Time:          "10:00 AM",
		Address:       "42, MG Road, Bengaluru",
		PaymentMethod: "upi",
		Price:         "₹1,299",
		Latitude:      &lat,
		Status:        "pending",
		CreatedAt:     time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
	}

	args := encodeBooking(in)
	vals := make(map[string]string, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		vals[args[i].(string)] = args[i+1].(string)
	}

	out, err := decodeBooking(vals)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != in.ID || out.UserID != in.UserID || out.Price != in.Price || !out.CreatedAt.Equal(in.CreatedAt) {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if out.Latitude == nil || *out.Latitude != lat {
		t.Fatalf("expected latitude %v, got %v", lat, out.Latitude)
	}
	if out.Longitude != nil {
		t.Fatalf("expected nil longitude, got %v", *out.Longitude)
	}
}

func TestBookingCacheAndOTPIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	rc, err := NewRedisClient(newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close() //nolint:errcheck
	ctx := context.Background()

	t.Run("BookingCache_SetGetDelete", func(t *testing.T) {
		c := NewBookingCache(rc)
		b := &CachedBooking{ID: uuid.New(), UserID: uuid.New(), Status: "pending", CreatedAt: time.Now(), UpdatedAt: time.Now()}
		if err := c.Set(ctx, b); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, err := c.Get(ctx, b.UserID, b.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status != "pending" {
			t.Fatalf("expected pending, got %q", got.Status)
		}
		if _, err := c.Get(ctx, uuid.New(), b.ID); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil for other user, got %v", err)
		}
		if err := c.Delete(ctx, b.UserID, b.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := c.Get(ctx, b.UserID, b.ID); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil after delete, got %v", err)
		}
	})

	t.Run("OTP_IssueVerifyConsume", func(t *testing.T) {
		s := NewOTPStore(rc, time.Minute)
		phone := "test-" + uuid.NewString()
		code, err := s.Issue(ctx, phone)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		if err := s.Verify(ctx, phone, "wrong!"); !errors.Is(err, ErrOTPMismatch) {
			t.Fatalf("expected ErrOTPMismatch, got %v", err)
		}
		if err := s.Verify(ctx, phone, code); err != nil {
			t.Fatalf("verify: %v", err)
		}
		if err := s.Verify(ctx, phone, code); !errors.Is(err, ErrOTPNotFound) {
			t.Fatalf("expected ErrOTPNotFound after consume, got %v", err)
		}
	})

	t.Run("OTP_AttemptsExhausted", func(t *testing.T) {
		s := NewOTPStore(rc, time.Minute)
		phone := "test-" + uuid.NewString()
		code, _ := s.Issue(ctx, phone)
		for i := 0; i < OTPMaxAttempts; i++ {
			_ = s.Verify(ctx, phone, "000000x")
		}
		if err := s.Verify(ctx, phone, code); !errors.Is(err, ErrOTPExhausted) {
			t.Fatalf("expected ErrOTPExhausted, got %v", err)
		}
	})
}
