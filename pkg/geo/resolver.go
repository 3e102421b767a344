package geo

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/homebook/pkg/logger"
)

// DefaultFixTimeout bounds coordinate acquisition.
const DefaultFixTimeout = 15 * time.Second

// Resolution is a usable address for the current position. Structured is
// false when the address is the coordinate fallback.
type Resolution struct {
	Coordinates      Coordinates
	FormattedAddress string
	Structured       bool
}

// Resolver combines a Locator and a Geocoder into one operation.
// It has no side effects beyond the calls it makes.
type Resolver struct {
	locator    Locator
	geocoder   Geocoder
	log        logger.Logger
	fixTimeout time.Duration
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithFixTimeout overrides DefaultFixTimeout.
func WithFixTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.fixTimeout = d
		}
	}
}

// WithResolverLogger sets the logger used for degraded results.
func WithResolverLogger(l logger.Logger) ResolverOption {
	return func(r *Resolver) { r.log = l }
}

// NewResolver returns a Resolver. A nil geocoder always yields the
// coordinate fallback.
func NewResolver(locator Locator, geocoder Geocoder, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		locator:    locator,
		geocoder:   geocoder,
		log:        logger.Nop(),
		fixTimeout: DefaultFixTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveAddress returns ErrPermissionDenied or ErrLocationUnavailable when
// no position is available. Once a position is known it always returns a
// Resolution, falling back to the raw coordinates when geocoding fails.
func (r *Resolver) ResolveAddress(ctx context.Context) (*Resolution, error) {
	perm, err := r.locator.RequestPermission(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	if perm != PermissionGranted {
		return nil, ErrPermissionDenied
	}

	fixCtx, cancel := context.WithTimeout(ctx, r.fixTimeout)
	coords, err := r.locator.CurrentPosition(fixCtx)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}

	fallback := &Resolution{Coordinates: coords, FormattedAddress: coords.String()}
	if r.geocoder == nil {
		return fallback, nil
	}

	addrs, err := r.geocoder.Reverse(ctx, coords)
	if err != nil {
		r.log.WarnContext(ctx, "geo: reverse geocoding failed, using coordinates", "error", err)
		return fallback, nil
	}
	for _, a := range addrs {
		if formatted := a.Format(); formatted != "" {
			return &Resolution{Coordinates: coords, FormattedAddress: formatted, Structured: true}, nil
		}
	}
	r.log.InfoContext(ctx, "geo: no address for position, using coordinates")
	return fallback, nil
}
