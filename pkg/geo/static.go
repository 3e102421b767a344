package geo

import "context"

// StaticLocator returns fixed answers. Used in tests and when a terminal
// user types coordinates.
type StaticLocator struct {
	Permission  Permission
	PermErr     error
	Coordinates Coordinates
	Err         error
}

func (s StaticLocator) RequestPermission(context.Context) (Permission, error) {
	return s.Permission, s.PermErr
}

func (s StaticLocator) CurrentPosition(ctx context.Context) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}
	return s.Coordinates, s.Err
}

// StaticGeocoder returns fixed addresses.
type StaticGeocoder struct {
	Addresses []Address
	Err       error
}

func (s StaticGeocoder) Reverse(context.Context, Coordinates) ([]Address, error) {
	return s.Addresses, s.Err
}
