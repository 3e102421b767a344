package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/homebook/pkg/app"
	"github.com/ghuser/homebook/pkg/auth"
	"github.com/ghuser/homebook/services/booking/application/handlers"
	appsvcs "github.com/ghuser/homebook/services/booking/application/services"
)

// BookingRoutes registers booking endpoints on the provided chi router.
func BookingRoutes(r chi.Router, a *app.Application) {
	Routes(r, appsvcs.New(a), a.Tokens, a)
}

// Routes registers booking endpoints backed by svcs. Every route needs a
// bearer token verified by tokens.
func Routes(r chi.Router, svcs *appsvcs.Services, tokens auth.TokenVerifier, a *app.Application) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens, a.Logger))
		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", handlers.NewPostBookingHandler(svcs).Execute)
			r.Get("/", handlers.NewListBookingsHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetBookingHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewCancelBookingHandler(svcs).Execute)
		})
	})
}
