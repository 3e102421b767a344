package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/homebook/pkg/auth"
	"github.com/ghuser/homebook/pkg/cache"
	"github.com/ghuser/homebook/pkg/logger"
	"github.com/ghuser/homebook/pkg/telemetry"
	authdomain "github.com/ghuser/homebook/services/auth/domain"
	"github.com/ghuser/homebook/services/auth/domain/models"
)

// OTPStore keeps pending one-time codes. *cache.OTPStore satisfies it.
type OTPStore interface {
	Issue(ctx context.Context, phone string) (string, error)
	Verify(ctx context.Context, phone, code string) error
}

// TokenIssuer signs access tokens. *auth.Tokens satisfies it.
type TokenIssuer interface {
	Issue(userID uuid.UUID, phone, name string) (string, time.Time, error)
}

// AuthService runs the phone + OTP login flow.
type AuthService struct {
	otps       OTPStore
	tokens     TokenIssuer
	otpTTL     time.Duration
	exposeCode bool
	log        logger.Logger
	sent       *telemetry.Counter
	verified   *telemetry.Counter
}

// NewAuthService returns an AuthService. With exposeCode set the issued code
// is echoed in the response; use it only where no SMS provider is wired.
func NewAuthService(otps OTPStore, tokens TokenIssuer, otpTTL time.Duration, exposeCode bool, log logger.Logger) *AuthService {
	return &AuthService{
		otps:       otps,
		tokens:     tokens,
		otpTTL:     otpTTL,
		exposeCode: exposeCode,
		log:        log,
		sent:       telemetry.NewCounter("homebook/auth", "auth.otp_sent", "One-time codes issued"),
		verified:   telemetry.NewCounter("homebook/auth", "auth.otp_verified", "OTP verifications by outcome"),
	}
}

// RequestOTP issues a code for rawPhone.
func (s *AuthService) RequestOTP(ctx context.Context, rawPhone string) (*models.OTPResponse, error) {
	phone, err := models.NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}
	code, err := s.otps.Issue(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("issue otp: %w", err)
	}
	s.sent.Inc(ctx)
	s.log.InfoContext(ctx, "otp issued", "phone", maskPhone(phone))

	resp := &models.OTPResponse{Message: "OTP sent", ExpiresIn: int(s.otpTTL.Seconds())}
	if s.exposeCode {
		resp.DevCode = code
	}
	return resp, nil
}

// VerifyOTP checks code for rawPhone and signs an access token for the user.
func (s *AuthService) VerifyOTP(ctx context.Context, rawPhone, code, name string) (*models.AuthResponse, error) {
	phone, err := models.NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}

	if err := s.otps.Verify(ctx, phone, code); err != nil {
		s.verified.Inc(ctx, "outcome", "rejected")
		switch {
		case errors.Is(err, cache.ErrOTPNotFound), errors.Is(err, cache.ErrOTPMismatch):
			return nil, authdomain.ErrInvalidOTP
		case errors.Is(err, cache.ErrOTPExhausted):
			return nil, authdomain.ErrOTPAttemptsExceeded
		}
		return nil, fmt.Errorf("verify otp: %w", err)
	}

	user := models.NewUser(phone, name)
	token, exp, err := s.tokens.Issue(user.ID, user.Phone, user.Name)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	s.verified.Inc(ctx, "outcome", "accepted")
	s.log.InfoContext(ctx, "user logged in", "user_id", user.ID)

	return &models.AuthResponse{AccessToken: token, ExpiresAt: exp, User: user}, nil
}

// Me returns the authenticated caller.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	userID, err := auth.UserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:    userID,
		Phone: auth.PhoneFromCtx(ctx),
		Name:  auth.NameFromCtx(ctx),
	}, nil
}

// maskPhone keeps the last four digits.
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return "******" + phone[len(phone)-4:]
}
