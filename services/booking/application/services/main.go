package services

import (
	"time"

	"github.com/ghuser/homebook/pkg/app"
	"github.com/ghuser/homebook/pkg/cache"
	"github.com/ghuser/homebook/services/booking/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Booking *BookingService
}

// New wires all booking application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewBookingRepository(a.Db, a.EventBus)
	bookingCache := cache.NewBookingCache(a.Redis)
	loc := Location(a.Config.Timezone)
	now := func() time.Time { return time.Now().In(loc) }
	return &Services{
		Booking: NewBookingService(repo, bookingCache, a.Logger, now),
	}
}

// ist is used when the configured zone cannot be loaded.
var ist = time.FixedZone("IST", 5*3600+30*60)

// Location loads name, falling back to Indian Standard Time.
func Location(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil || name == "" {
		return ist
	}
	return loc
}
