package httpx

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (database.DB, cache.RedisClient and the outbox publisher qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Probe names one dependency reported by the health endpoint.
type Probe struct {
	Name    string
	Checker HealthChecker
}

type healthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

// HealthHandler returns an http.HandlerFunc that pings every probe and
// reports degraded status with 503 if any of them fail.
func HealthHandler(probes ...Probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{
			Status:       "ok",
			Dependencies: make(map[string]string, len(probes)),
		}
		for _, p := range probes {
			if err := p.Checker.Ping(ctx); err != nil {
				resp.Status = "degraded"
				resp.Dependencies[p.Name] = "unreachable"
				continue
			}
			resp.Dependencies[p.Name] = "ok"
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
