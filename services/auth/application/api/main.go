package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/homebook/pkg/app"
	"github.com/ghuser/homebook/pkg/auth"
	"github.com/ghuser/homebook/services/auth/application/handlers"
	appsvcs "github.com/ghuser/homebook/services/auth/application/services"
)

// AuthRoutes registers auth endpoints on the provided chi router.
func AuthRoutes(r chi.Router, a *app.Application) {
	Routes(r, appsvcs.New(a), a)
}

// Routes registers auth endpoints backed by svcs. The OTP endpoints are
// anonymous; /auth/me needs a bearer token.
func Routes(r chi.Router, svcs *appsvcs.Services, a *app.Application) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/request-otp", handlers.NewRequestOTPHandler(svcs).Execute)
		r.Post("/verify-otp", handlers.NewVerifyOTPHandler(svcs).Execute)
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(a.Tokens, a.Logger))
			r.Get("/me", handlers.NewMeHandler(svcs).Execute)
		})
	})
}
