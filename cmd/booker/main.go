// Command booker is the terminal client: OTP login, the booking wizard and
// booking management against the Homebook API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/homebook/pkg/config"
	"github.com/ghuser/homebook/pkg/logger"
	"github.com/ghuser/homebook/pkg/telemetry"
)

const usage = `usage: booker <command> [args]

commands:
  login                                      sign in with a one-time code
  book <serviceId> <title> <category> <price>  book a service
  bookings [status]                          list your bookings
  cancel <id>                                cancel a booking
  logout                                     forget the stored session
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg, logger.WithWriter(os.Stderr), logger.WithText())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}

	err = run(ctx, cfg, log, os.Args[1:], os.Stdin, os.Stdout)

	telemetry.SentryFlush()
	_ = otelShutdown(context.Background())

	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

// run wires the client and executes one command.
func run(ctx context.Context, cfg *config.Config, log logger.Logger, args []string, in io.Reader, out io.Writer) error {
	c, err := newClient(ctx, cfg, log, out)
	if err != nil {
		return err
	}
	defer c.Close()

	p := newPrompter(in, out)
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return c.login(ctx, p)
	case "book":
		if len(rest) != 4 {
			return errUsage
		}
		return c.book(ctx, p, rest[0], rest[1], rest[2], rest[3])
	case "bookings":
		status := ""
		if len(rest) > 0 {
			status = rest[0]
		}
		return c.bookings(ctx, out, status)
	case "cancel":
		if len(rest) != 1 {
			return errUsage
		}
		return c.cancel(ctx, p, rest[0])
	case "logout":
		return c.logout(ctx, out)
	default:
		return errUsage
	}
}
