package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"salon-scheduler/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/kelseyhightower/envconfig"
)

// Applies migrations/ with the atlas CLI, which must be on PATH.
func main() {
	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		slog.Error("failed to load database config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	wd, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS("migrations")))
	if err != nil {
		slog.Error("failed to prepare migration directory", "error", err)
		os.Exit(1)
	}
	defer wd.Close()

	client, err := atlasexec.NewClient(wd.Path(), "atlas")
	if err != nil {
		slog.Error("failed to initialize atlas client", "error", err)
		os.Exit(1)
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL: dbCfg.BuildDSN(),
	})
	if err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target)
}
