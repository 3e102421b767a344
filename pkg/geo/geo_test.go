package geo_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/homebook/pkg/geo"
)

var bengaluru = geo.Coordinates{Latitude: 12.9716, Longitude: 77.5946}

func TestAddressFormat(t *testing.T) {
	tests := []struct {
		name string
		addr geo.Address
		want string
	}{
		{
			"full",
			geo.Address{StreetNumber: "42", Street: "MG Road", District: "Ashok Nagar", City: "Bengaluru", Region: "Karnataka", PostalCode: "560001", Country: "India"},
			"42, MG Road, Ashok Nagar, Bengaluru, Karnataka, 560001, India",
		},
		{
			"skips blanks",
			geo.Address{Street: "MG Road", City: "Bengaluru", Country: " "},
			"MG Road, Bengaluru",
		},
		{"empty", geo.Address{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.addr.Format())
		})
	}
}

func TestCoordinatesString(t *testing.T) {
	assert.Equal(t, "12.9716, 77.5946", bengaluru.String())
	assert.Equal(t, "-33.5, 0", geo.Coordinates{Latitude: -33.5}.String())
}

func TestResolveAddress_Structured(t *testing.T) {
	r := geo.NewResolver(
		geo.StaticLocator{Permission: geo.PermissionGranted, Coordinates: bengaluru},
		geo.StaticGeocoder{Addresses: []geo.Address{{Street: "MG Road", City: "Bengaluru"}}},
	)

	res, err := r.ResolveAddress(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Structured)
	assert.Equal(t, "MG Road, Bengaluru", res.FormattedAddress)
	assert.Equal(t, bengaluru, res.Coordinates)
}

func TestResolveAddress_PermissionDenied(t *testing.T) {
	tests := []struct {
		name    string
		locator geo.StaticLocator
	}{
		{"denied", geo.StaticLocator{Permission: geo.PermissionDenied}},
		{"undetermined", geo.StaticLocator{Permission: geo.PermissionUndetermined}},
		{"permission error", geo.StaticLocator{PermErr: errors.New("no location services")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := geo.NewResolver(tt.locator, geo.StaticGeocoder{}).ResolveAddress(context.Background())
			assert.ErrorIs(t, err, geo.ErrPermissionDenied)
			assert.Nil(t, res)
		})
	}
}

func TestResolveAddress_LocationUnavailable(t *testing.T) {
	r := geo.NewResolver(
		geo.StaticLocator{Permission: geo.PermissionGranted, Err: errors.New("gps off")},
		geo.StaticGeocoder{},
	)
	_, err := r.ResolveAddress(context.Background())
	assert.ErrorIs(t, err, geo.ErrLocationUnavailable)
}

type slowLocator struct{}

func (slowLocator) RequestPermission(context.Context) (geo.Permission, error) {
	return geo.PermissionGranted, nil
}

func (slowLocator) CurrentPosition(ctx context.Context) (geo.Coordinates, error) {
	<-ctx.Done()
	return geo.Coordinates{}, ctx.Err()
}

func TestResolveAddress_FixTimeout(t *testing.T) {
	r := geo.NewResolver(slowLocator{}, geo.StaticGeocoder{}, geo.WithFixTimeout(10*time.Millisecond))
	_, err := r.ResolveAddress(context.Background())
	assert.ErrorIs(t, err, geo.ErrLocationUnavailable)
}

func TestResolveAddress_CoordinateFallback(t *testing.T) {
	tests := []struct {
		name     string
		geocoder geo.Geocoder
	}{
		{"zero results", geo.StaticGeocoder{}},
		{"geocoder error", geo.StaticGeocoder{Err: errors.New("quota exceeded")}},
		{"only blank addresses", geo.StaticGeocoder{Addresses: []geo.Address{{}}}},
		{"no geocoder", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := geo.NewResolver(geo.StaticLocator{Permission: geo.PermissionGranted, Coordinates: bengaluru}, tt.geocoder)
			res, err := r.ResolveAddress(context.Background())
			require.NoError(t, err)
			assert.False(t, res.Structured)
			assert.Equal(t, "12.9716, 77.5946", res.FormattedAddress)
			assert.Equal(t, bengaluru, res.Coordinates)
		})
	}
}

func TestIPLocator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ip":"203.0.113.7","city":"Bengaluru","latitude":12.9716,"longitude":77.5946}`))
	}))
	defer srv.Close()

	t.Run("with consent", func(t *testing.T) {
		l := geo.NewIPLocator(srv.URL, true, srv.Client())
		perm, err := l.RequestPermission(context.Background())
		require.NoError(t, err)
		assert.Equal(t, geo.PermissionGranted, perm)

		c, err := l.CurrentPosition(context.Background())
		require.NoError(t, err)
		assert.Equal(t, bengaluru, c)
	})

	t.Run("without consent", func(t *testing.T) {
		l := geo.NewIPLocator(srv.URL, false, srv.Client())
		perm, err := l.RequestPermission(context.Background())
		require.NoError(t, err)
		assert.Equal(t, geo.PermissionDenied, perm)

		_, err = geo.NewResolver(l, nil).ResolveAddress(context.Background())
		assert.ErrorIs(t, err, geo.ErrPermissionDenied)
	})
}

func TestIPLocator_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"api error", http.StatusOK, `{"error":true,"reason":"RateLimited"}`},
		{"no coordinates", http.StatusOK, `{"ip":"203.0.113.7"}`},
		{"bad status", http.StatusTooManyRequests, `{}`},
		{"invalid json", http.StatusOK, `nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			r := geo.NewResolver(geo.NewIPLocator(srv.URL, true, srv.Client()), nil)
			_, err := r.ResolveAddress(context.Background())
			assert.ErrorIs(t, err, geo.ErrLocationUnavailable)
		})
	}
}

const googleOK = `{
  "status": "OK",
  "results": [
    {
      "formatted_address": "42, MG Road, Bengaluru, Karnataka 560001, India",
      "address_components": [
        {"long_name": "42", "short_name": "42", "types": ["street_number"]},
        {"long_name": "Mahatma Gandhi Road", "short_name": "MG Rd", "types": ["route"]},
        {"long_name": "Ashok Nagar", "short_name": "Ashok Nagar", "types": ["political", "sublocality", "sublocality_level_1"]},
        {"long_name": "Bengaluru", "short_name": "Bengaluru", "types": ["locality", "political"]},
        {"long_name": "Karnataka", "short_name": "KA", "types": ["administrative_area_level_1", "political"]},
        {"long_name": "India", "short_name": "IN", "types": ["country", "political"]},
        {"long_name": "560001", "short_name": "560001", "types": ["postal_code"]}
      ]
    }
  ]
}`

func TestGoogleGeocoder_Reverse(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(googleOK))
	}))
	defer srv.Close()

	g := geo.NewGoogleGeocoder(srv.URL, "test-key", 0, srv.Client())
	addrs, err := g.Reverse(context.Background(), bengaluru)
	require.NoError(t, err)
	require.Len(t, addrs, 1)

	assert.Equal(t, geo.Address{
		StreetNumber: "42",
		Street:       "Mahatma Gandhi Road",
		District:     "Ashok Nagar",
		City:         "Bengaluru",
		Region:       "Karnataka",
		PostalCode:   "560001",
		Country:      "India",
	}, addrs[0])
	assert.Contains(t, gotQuery, "latlng=12.9716%2C77.5946")
	assert.Contains(t, gotQuery, "key=test-key")
}

func TestGoogleGeocoder_StatusHandling(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"zero results", `{"status":"ZERO_RESULTS","results":[]}`, false},
		{"denied", `{"status":"REQUEST_DENIED","error_message":"bad key"}`, true},
		{"invalid json", `{`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			addrs, err := geo.NewGoogleGeocoder(srv.URL, "", 0, srv.Client()).Reverse(context.Background(), bengaluru)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, addrs)
		})
	}
}

func TestGoogleGeocoder_RateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS"}`))
	}))
	defer srv.Close()

	g := geo.NewGoogleGeocoder(srv.URL, "", 0.001, srv.Client())
	_, err := g.Reverse(context.Background(), bengaluru)
	require.NoError(t, err, "first request uses the burst token")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = g.Reverse(ctx, bengaluru)
	assert.Error(t, err, "second request must wait far longer than the deadline")
}

func TestPermissionString(t *testing.T) {
	assert.Equal(t, "granted", geo.PermissionGranted.String())
	assert.Equal(t, "denied", geo.PermissionDenied.String())
	assert.Equal(t, "undetermined", geo.PermissionUndetermined.String())
}
