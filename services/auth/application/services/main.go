package services

import (
	"github.com/ghuser/homebook/pkg/app"
	"github.com/ghuser/homebook/pkg/cache"
	"github.com/ghuser/homebook/pkg/config"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Auth *AuthService
}

// New wires all auth application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	otps := cache.NewOTPStore(a.Redis, a.Config.OTPTTL)
	exposeCode := a.Config.Environment != config.EnvProduction
	return &Services{
		Auth: NewAuthService(otps, a.Tokens, a.Config.OTPTTL, exposeCode, a.Logger),
	}
}
