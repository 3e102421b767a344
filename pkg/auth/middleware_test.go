package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ghuser/homebook/pkg/logger"
)

func requestWithToken(raw string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
	if raw != "" {
		r.Header.Set("Authorization", "Bearer "+raw)
	}
	return r
}

func mustNotCall(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	})
}

func assertUnauthorized(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] == "" {
		t.Fatalf("expected message in body, got %s", w.Body.String())
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tk := newTestTokens(t)
	userID := uuid.New()
	raw, _, err := tk.Issue(userID, "9876543210", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var capturedUserID uuid.UUID
	var capturedPhone string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserID, _ = UserIDFromCtx(r.Context())
		capturedPhone = PhoneFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	RequireAuth(tk, logger.Nop())(next).ServeHTTP(w, requestWithToken(raw))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if capturedUserID != userID {
		t.Fatalf("expected user %v in context, got %v", userID, capturedUserID)
	}
	if capturedPhone != "9876543210" {
		t.Fatalf("expected phone in context, got %q", capturedPhone)
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	w := httptest.NewRecorder()
	RequireAuth(newTestTokens(t), logger.Nop())(mustNotCall(t)).ServeHTTP(w, requestWithToken(""))
	assertUnauthorized(t, w)
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	RequireAuth(newTestTokens(t), logger.Nop())(mustNotCall(t)).ServeHTTP(w, r)
	assertUnauthorized(t, w)
}

func TestRequireAuth_TamperedToken(t *testing.T) {
	tk := newTestTokens(t)
	raw, _, _ := tk.Issue(uuid.New(), "9876543210", "")

	w := httptest.NewRecorder()
	RequireAuth(tk, logger.Nop())(mustNotCall(t)).ServeHTTP(w, requestWithToken(raw+"x"))
	assertUnauthorized(t, w)
}

func TestRequireAuth_InvalidSubject(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "not-a-valid-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	w := httptest.NewRecorder()
	RequireAuth(newTestTokens(t), logger.Nop())(mustNotCall(t)).ServeHTTP(w, requestWithToken(raw))
	assertUnauthorized(t, w)
}
