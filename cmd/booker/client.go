package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghuser/homebook/pkg/cache"
	"github.com/ghuser/homebook/pkg/config"
	"github.com/ghuser/homebook/pkg/events"
	"github.com/ghuser/homebook/pkg/gateway"
	"github.com/ghuser/homebook/pkg/geo"
	"github.com/ghuser/homebook/pkg/logger"
	"github.com/ghuser/homebook/pkg/session"
	authClient "github.com/ghuser/homebook/services/auth/application/client"
	"github.com/ghuser/homebook/services/booking/application/submission"
)

// topicSessionInvalidated is published on the local bus when the API
// rejected the stored credential.
const topicSessionInvalidated = "session.invalidated"

type sessionInvalidated struct {
	At time.Time `json:"at"`
}

// client holds everything a command needs. Close releases it.
type client struct {
	cfg      *config.Config
	log      logger.Logger
	sessions *session.Store
	api      *gateway.Client
	auth     *authClient.Client
	booking  *submission.Service
	resolver *geo.Resolver
	bus      *events.LocalBus
	closers  []func() error
}

func newClient(ctx context.Context, cfg *config.Config, log logger.Logger, out io.Writer) (*client, error) {
	c := &client{cfg: cfg, log: log}

	kv, err := c.sessionKV()
	if err != nil {
		return nil, err
	}
	c.sessions, err = session.NewStore(kv, []byte(cfg.SessionHashKey), []byte(cfg.SessionBlockKey))
	if err != nil {
		c.Close()
		return nil, err
	}

	c.bus = events.NewLocalBus(1, log)
	c.closers = append(c.closers, c.bus.Close)
	errCh, err := c.bus.Subscribe(ctx, topicSessionInvalidated, notifyLoggedOut(out))
	if err != nil {
		c.Close()
		return nil, err
	}
	go func() {
		for err := range errCh {
			log.Warn("session notice failed", "error", err)
		}
	}()

	c.api = gateway.New(cfg.APIBaseURL, c.sessions,
		gateway.WithLogger(log),
		gateway.WithTimeout(cfg.APITimeout),
		gateway.WithMaxRetries(cfg.APIMaxRetries),
		gateway.WithRetryBase(cfg.APIRetryBase),
		gateway.WithOnUnauthorized(c.publishInvalidated),
	)
	c.auth = authClient.New(c.api, c.sessions, log)
	c.booking = submission.New(c.api, log)
	c.resolver = newResolver(cfg, log)
	return c, nil
}

// sessionKV opens the backend named by SESSION_BACKEND.
func (c *client) sessionKV() (session.KV, error) {
	switch c.cfg.SessionBackend {
	case config.SessionBackendMemory:
		return session.NewMemoryKV(), nil
	case config.SessionBackendRedis:
		rc, err := cache.NewRedisClientFromURL(c.cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("session: connect redis: %w", err)
		}
		c.closers = append(c.closers, rc.Close)
		return session.NewRedisKV(rc.Client(), sessionNamespace()), nil
	default:
		path := c.cfg.SessionFile
		if !filepath.IsAbs(path) {
			if home, err := os.UserHomeDir(); err == nil {
				path = filepath.Join(home, path)
			}
		}
		return session.NewFileKV(path), nil
	}
}

func sessionNamespace() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "default"
}

func newResolver(cfg *config.Config, log logger.Logger) *geo.Resolver {
	hc := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	locator := geo.NewIPLocator(cfg.IPGeoURL, cfg.LocationConsent, hc)

	var geocoder geo.Geocoder
	if cfg.GoogleMapsAPIKey != "" {
		geocoder = geo.NewGoogleGeocoder(cfg.GeocodeURL, cfg.GoogleMapsAPIKey, cfg.GeocodeRPS, hc)
	}
	return geo.NewResolver(locator, geocoder, geo.WithResolverLogger(log))
}

// publishInvalidated runs after the gateway cleared the session.
func (c *client) publishInvalidated(ctx context.Context) {
	evt := sessionInvalidated{At: time.Now()}
	msg, err := events.NewMessage(uuid.New(), 1, evt)
	if err != nil {
		c.log.Warn("encode session notice", "error", err)
		return
	}
	if err := c.bus.Publish(ctx, topicSessionInvalidated, msg); err != nil {
		c.log.Warn("publish session notice", "error", err)
	}
}

func notifyLoggedOut(out io.Writer) events.Handler {
	return func(_ context.Context, _ *message.Message) error {
		_, err := fmt.Fprintln(out, "Your session has expired. Run `booker login` to sign in again.")
		return err
	}
}

// Close releases the bus and any backend connections in reverse order.
func (c *client) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.log.Warn("close failed", "error", err)
		}
	}
	c.closers = nil
}
