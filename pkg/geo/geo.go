// Package geo turns the device's position into a postal address for the
// booking form.
package geo

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrPermissionDenied means the user has not allowed location access.
	ErrPermissionDenied = errors.New("geo: location permission denied")
	// ErrLocationUnavailable means no coordinate fix could be acquired in time.
	ErrLocationUnavailable = errors.New("geo: location unavailable")
)

// Permission is the outcome of a location permission request.
type Permission int

const (
	PermissionUndetermined Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "undetermined"
	}
}

// Coordinates is a WGS84 position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String renders "<lat>, <lon>" with the shortest exact decimal form.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + ", " + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// Address is a structured reverse-geocoding result.
type Address struct {
	StreetNumber string `json:"streetNumber,omitempty"`
	Street       string `json:"street,omitempty"`
	District     string `json:"district,omitempty"`
	City         string `json:"city,omitempty"`
	Region       string `json:"region,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Country      string `json:"country,omitempty"`
}

// Format joins the non-blank parts from most to least specific with ", ".
func (a Address) Format() string {
	parts := make([]string, 0, 7)
	for _, p := range []string{a.StreetNumber, a.Street, a.District, a.City, a.Region, a.PostalCode, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Locator acquires the device position.
type Locator interface {
	RequestPermission(ctx context.Context) (Permission, error)
	CurrentPosition(ctx context.Context) (Coordinates, error)
}

// Geocoder maps coordinates to candidate addresses, best match first.
type Geocoder interface {
	Reverse(ctx context.Context, c Coordinates) ([]Address, error)
}
