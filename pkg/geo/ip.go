package geo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// IPLocator approximates the position from the caller's public IP using an
// ipapi.co style JSON endpoint. Consent stands in for the OS permission
// prompt: without it RequestPermission reports denied and no lookup is made.
type IPLocator struct {
	url     string
	consent bool
	http    *http.Client
}

// NewIPLocator returns an IPLocator querying url. hc may be nil.
func NewIPLocator(url string, consent bool, hc *http.Client) *IPLocator {
	if hc == nil {
		hc = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &IPLocator{url: url, consent: consent, http: hc}
}

func (l *IPLocator) RequestPermission(context.Context) (Permission, error) {
	if l.consent {
		return PermissionGranted, nil
	}
	return PermissionDenied, nil
}

func (l *IPLocator) CurrentPosition(ctx context.Context) (Coordinates, error) {
	if !l.consent {
		return Coordinates{}, ErrPermissionDenied
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, http.NoBody)
	if err != nil {
		return Coordinates{}, fmt.Errorf("ip locate: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.http.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("ip locate: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return Coordinates{}, fmt.Errorf("ip locate: read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("ip locate: status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return Coordinates{}, errors.New("ip locate: invalid json")
	}
	if gjson.GetBytes(body, "error").Bool() {
		return Coordinates{}, fmt.Errorf("ip locate: %s", gjson.GetBytes(body, "reason").String())
	}

	lat, lon := gjson.GetBytes(body, "latitude"), gjson.GetBytes(body, "longitude")
	if !lat.Exists() || !lon.Exists() {
		return Coordinates{}, errors.New("ip locate: response has no coordinates")
	}
	return Coordinates{Latitude: lat.Float(), Longitude: lon.Float()}, nil
}
