package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// GoogleGeocoder reverse-geocodes through the Google Geocoding API
// (latlng lookup). Requests are throttled client-side to stay under quota.
type GoogleGeocoder struct {
	endpoint string
	apiKey   string
	limiter  *rate.Limiter
	http     *http.Client
}

// NewGoogleGeocoder returns a geocoder allowing rps requests per second
// (burst 1). rps <= 0 disables throttling. hc may be nil.
func NewGoogleGeocoder(endpoint, apiKey string, rps float64, hc *http.Client) *GoogleGeocoder {
	if hc == nil {
		hc = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &GoogleGeocoder{
		endpoint: endpoint,
		apiKey:   apiKey,
		limiter:  rate.NewLimiter(limit, 1),
		http:     hc,
	}
}

// componentFields maps Google address component types onto Address fields.
// The first matching type wins.
var componentFields = []struct {
	kind string
	set  func(*Address, string)
}{
	{"street_number", func(a *Address, v string) { a.StreetNumber = v }},
	{"route", func(a *Address, v string) { a.Street = v }},
	{"sublocality_level_1", func(a *Address, v string) { a.District = v }},
	{"sublocality", func(a *Address, v string) { a.District = v }},
	{"locality", func(a *Address, v string) { a.City = v }},
	{"administrative_area_level_1", func(a *Address, v string) { a.Region = v }},
	{"postal_code", func(a *Address, v string) { a.PostalCode = v }},
	{"country", func(a *Address, v string) { a.Country = v }},
}

func (g *GoogleGeocoder) Reverse(ctx context.Context, c Coordinates) ([]Address, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geocode: rate limit: %w", err)
	}

	q := url.Values{}
	q.Set("latlng", strconv.FormatFloat(c.Latitude, 'f', -1, 64)+","+strconv.FormatFloat(c.Longitude, 'f', -1, 64))
	if g.apiKey != "" {
		q.Set("key", g.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("geocode: build request: %w", err)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("geocode: read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("geocode: invalid json")
	}

	switch status := gjson.GetBytes(body, "status").String(); status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, fmt.Errorf("geocode: api status %s: %s", status, gjson.GetBytes(body, "error_message").String())
	}

	var out []Address
	gjson.GetBytes(body, "results").ForEach(func(_, result gjson.Result) bool {
		var a Address
		seen := map[string]bool{}
		result.Get("address_components").ForEach(func(_, comp gjson.Result) bool {
			types := map[string]bool{}
			for _, t := range comp.Get("types").Array() {
				types[t.String()] = true
			}
			for _, f := range componentFields {
				if types[f.kind] && !seen[f.kind] {
					f.set(&a, comp.Get("long_name").String())
					seen[f.kind] = true
				}
			}
			return true
		})
		out = append(out, a)
		return true
	})
	return out, nil
}
