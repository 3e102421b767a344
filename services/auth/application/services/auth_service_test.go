package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ghuser/homebook/pkg/auth"
	"github.com/ghuser/homebook/pkg/cache"
	"github.com/ghuser/homebook/pkg/logger"
	authdomain "github.com/ghuser/homebook/services/auth/domain"
	"github.com/ghuser/homebook/services/auth/domain/models"
)

const testSecret = "test-secret-that-is-at-least-32-bytes"

// fakeOTPStore keeps codes in memory and returns verifyErr when set.
type fakeOTPStore struct {
	codes     map[string]string
	verifyErr error
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{codes: map[string]string{}}
}

func (f *fakeOTPStore) Issue(_ context.Context, phone string) (string, error) {
	f.codes[phone] = "123456"
	return "123456", nil
}

func (f *fakeOTPStore) Verify(_ context.Context, phone, code string) error {
	if f.verifyErr != nil {
		return f.verifyErr
	}
	stored, ok := f.codes[phone]
	if !ok {
		return cache.ErrOTPNotFound
	}
	if stored != code {
		return cache.ErrOTPMismatch
	}
	delete(f.codes, phone)
	return nil
}

func newTestService(t *testing.T, otps OTPStore, exposeCode bool) (*AuthService, *auth.Tokens) {
	t.Helper()
	tokens, err := auth.NewTokens(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("new tokens: %v", err)
	}
	return NewAuthService(otps, tokens, 5*time.Minute, exposeCode, logger.Nop()), tokens
}

func TestRequestOTP_NormalizesPhone(t *testing.T) {
	otps := newFakeOTPStore()
	svc, _ := newTestService(t, otps, true)

	resp, err := svc.RequestOTP(context.Background(), "+91 98765-43210")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := otps.codes["9876543210"]; !ok {
		t.Fatalf("expected code stored under normalized phone, got %v", otps.codes)
	}
	if resp.ExpiresIn != 300 {
		t.Fatalf("expected expiresIn 300, got %d", resp.ExpiresIn)
	}
	if resp.DevCode != "123456" {
		t.Fatalf("expected dev code, got %q", resp.DevCode)
	}
}

func TestRequestOTP_HidesCodeInProduction(t *testing.T) {
	svc, _ := newTestService(t, newFakeOTPStore(), false)
	resp, err := svc.RequestOTP(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.DevCode != "" {
		t.Fatalf("expected no dev code, got %q", resp.DevCode)
	}
}

func TestRequestOTP_InvalidPhone(t *testing.T) {
	svc, _ := newTestService(t, newFakeOTPStore(), true)
	_, err := svc.RequestOTP(context.Background(), "12345")
	if !errors.Is(err, authdomain.ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
}

func TestVerifyOTP_IssuesToken(t *testing.T) {
	otps := newFakeOTPStore()
	svc, tokens := newTestService(t, otps, true)
	ctx := context.Background()

	if _, err := svc.RequestOTP(ctx, "9876543210"); err != nil {
		t.Fatalf("request otp: %v", err)
	}
	resp, err := svc.VerifyOTP(ctx, "98765 43210", "123456", "Asha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := tokens.Verify(resp.AccessToken)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	wantID := models.UserIDForPhone("9876543210")
	if claims.Subject != wantID.String() {
		t.Fatalf("expected subject %s, got %s", wantID, claims.Subject)
	}
	if claims.Phone != "9876543210" || claims.Name != "Asha" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if resp.User == nil || resp.User.ID != wantID {
		t.Fatalf("expected user %s, got %+v", wantID, resp.User)
	}
}

func TestVerifyOTP_ErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		verifyErr error
		want      error
	}{
		{"not found", cache.ErrOTPNotFound, authdomain.ErrInvalidOTP},
		{"mismatch", cache.ErrOTPMismatch, authdomain.ErrInvalidOTP},
		{"exhausted", cache.ErrOTPExhausted, authdomain.ErrOTPAttemptsExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			otps := newFakeOTPStore()
			otps.verifyErr = tt.verifyErr
			svc, _ := newTestService(t, otps, true)

			_, err := svc.VerifyOTP(context.Background(), "9876543210", "000000", "")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestVerifyOTP_StoreFailureIsWrapped(t *testing.T) {
	otps := newFakeOTPStore()
	otps.verifyErr = errors.New("redis down")
	svc, _ := newTestService(t, otps, true)

	_, err := svc.VerifyOTP(context.Background(), "9876543210", "123456", "")
	if err == nil || errors.Is(err, authdomain.ErrInvalidOTP) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestMe(t *testing.T) {
	svc, _ := newTestService(t, newFakeOTPStore(), true)

	if _, err := svc.Me(context.Background()); !errors.Is(err, auth.ErrUserIDNotFound) {
		t.Fatalf("expected ErrUserIDNotFound, got %v", err)
	}

	id := models.UserIDForPhone("9876543210")
	ctx := auth.WithUserID(context.Background(), id)
	ctx = auth.WithPhone(ctx, "9876543210")
	ctx = auth.WithName(ctx, "Asha")
	u, err := svc.Me(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != id || u.Phone != "9876543210" || u.Name != "Asha" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestMaskPhone(t *testing.T) {
	if got := maskPhone("9876543210"); got != "******3210" {
		t.Fatalf("expected masked phone, got %q", got)
	}
}
