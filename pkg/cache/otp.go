package cache

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// OTPLength is the number of digits in a one-time code.
	OTPLength = 6
	// OTPMaxAttempts is how many wrong guesses burn a code.
	OTPMaxAttempts = 5

	otpKeyPrefix = "otp"
)

var (
	// ErrOTPNotFound means no code is pending for the phone (never issued or expired).
	ErrOTPNotFound = errors.New("otp not found")
	// ErrOTPMismatch means the submitted code is wrong.
	ErrOTPMismatch = errors.New("otp mismatch")
	// ErrOTPExhausted means too many wrong codes were tried; the code is discarded.
	ErrOTPExhausted = errors.New("otp attempts exhausted")
)

// OTPStore keeps one pending code per phone number.
// Key format: "otp:{phone}" holding a hash {code, attempts} with the code TTL.
type OTPStore struct {
	client   *RedisClient
	ttl      time.Duration
	generate func() (string, error)
}

// NewOTPStore returns an OTPStore whose codes expire after ttl.
func NewOTPStore(r *RedisClient, ttl time.Duration) *OTPStore {
	return &OTPStore{client: r, ttl: ttl, generate: GenerateOTP}
}

// Issue stores a fresh code for phone, replacing any pending one.
func (s *OTPStore) Issue(ctx context.Context, phone string) (string, error) {
	code, err := s.generate()
	if err != nil {
		return "", fmt.Errorf("otp generate: %w", err)
	}
	key := otpKey(phone)
	pipe := s.client.Client().TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, "code", code, "attempts", 0)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("otp issue: %w", err)
	}
	return code, nil
}

// Verify consumes the pending code for phone when code matches.
func (s *OTPStore) Verify(ctx context.Context, phone, code string) error {
	key := otpKey(phone)
	rdb := s.client.Client()

	stored, err := rdb.HGet(ctx, key, "code").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrOTPNotFound
		}
		return fmt.Errorf("otp get: %w", err)
	}

	attempts, err := rdb.HIncrBy(ctx, key, "attempts", 1).Result()
	if err != nil {
		return fmt.Errorf("otp attempts: %w", err)
	}
	if attempts > OTPMaxAttempts {
		_ = rdb.Del(ctx, key).Err()
		return ErrOTPExhausted
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return ErrOTPMismatch
	}
	if err := rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("otp consume: %w", err)
	}
	return nil
}

// GenerateOTP returns OTPLength random decimal digits.
func GenerateOTP() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < OTPLength; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", OTPLength, n.Int64()), nil
}

func otpKey(phone string) string {
	return otpKeyPrefix + ":" + phone
}
