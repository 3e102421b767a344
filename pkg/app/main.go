package app

import (
	"github.com/ghuser/homebook/pkg/auth"
	"github.com/ghuser/homebook/pkg/cache"
	"github.com/ghuser/homebook/pkg/config"
	"github.com/ghuser/homebook/pkg/database"
	"github.com/ghuser/homebook/pkg/events"
	"github.com/ghuser/homebook/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to every service's XRoutes call during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "booking created", "booking_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient
	Tokens   *auth.Tokens // nil in worker process
}
