package main

import (
	"embed"
	"log/slog"
	"os"

	"github.com/ghuser/homebook/pkg/config"
	"github.com/ghuser/homebook/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := migrator.RunMigrations(cfg.DatabaseURL, MigrationsFS); err != nil {
		slog.Error("booking migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("booking migrations applied")
}
