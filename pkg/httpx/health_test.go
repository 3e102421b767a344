package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/homebook/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

type healthBody struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

func serveHealth(t *testing.T, probes ...httpx.Probe) (*httptest.ResponseRecorder, healthBody) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(probes...).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var body healthBody
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr, body
}

func TestHealthHandler_AllHealthy(t *testing.T) {
	rr, body := serveHealth(t,
		httpx.Probe{Name: "database", Checker: &stubChecker{}},
		httpx.Probe{Name: "redis", Checker: &stubChecker{}},
	)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body.Status != "ok" {
		t.Errorf("status: got %q, want %q", body.Status, "ok")
	}
	if body.Dependencies["database"] != "ok" || body.Dependencies["redis"] != "ok" {
		t.Errorf("unexpected dependencies: %+v", body.Dependencies)
	}
}

func TestHealthHandler_Degraded(t *testing.T) {
	tests := []struct {
		name string
		down string
	}{
		{"database down", "database"},
		{"redis down", "redis"},
		{"event bus down", "event_bus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var probes []httpx.Probe
			for _, name := range []string{"database", "redis", "event_bus"} {
				c := &stubChecker{}
				if name == tt.down {
					c.err = errors.New("conn refused")
				}
				probes = append(probes, httpx.Probe{Name: name, Checker: c})
			}

			rr, body := serveHealth(t, probes...)
			if rr.Code != http.StatusServiceUnavailable {
				t.Fatalf("expected 503, got %d", rr.Code)
			}
			if body.Status != "degraded" || body.Dependencies[tt.down] != "unreachable" {
				t.Errorf("unexpected response: %+v", body)
			}
		})
	}
}

func TestHealthHandler_NoProbes(t *testing.T) {
	rr, body := serveHealth(t)
	if rr.Code != http.StatusOK || body.Status != "ok" {
		t.Fatalf("expected ok with no probes, got %d %+v", rr.Code, body)
	}
}

func TestHealthHandler_ContentType(t *testing.T) {
	rr, _ := serveHealth(t, httpx.Probe{Name: "database", Checker: &stubChecker{}})

	ct := rr.Header().Get("Content-Type")
	if ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json; charset=utf-8")
	}
}
