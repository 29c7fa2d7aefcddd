// Command server runs the SkillUp HTTP service.
package main

import (
	"context"
	"os"

	"github.com/sakif/skillup/internal/config"
	"github.com/sakif/skillup/internal/logger"
	"github.com/sakif/skillup/internal/repository/gormstore"
	"github.com/sakif/skillup/internal/seed"
	"github.com/sakif/skillup/internal/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{ServiceName: "skillup"}).Error(ctx, "loading config", err)
		return 1
	}

	logg := logger.New(logger.Options{
		ServiceName: "skillup",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	store, err := gormstore.Open(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "opening database", err)
		return 1
	}

	srv, err := server.New(cfg, logg, store)
	if err != nil {
		store.Close()
		logg.Error(ctx, "creating server", err)
		return 1
	}

	// Local databases start empty; give them the built-in catalog. Deployed
	// environments seed explicitly with skillup-admin.
	if cfg.App.IsDev() {
		catalog, err := seed.Default()
		if err == nil {
			_, err = srv.Catalog().Seed(ctx, catalog.CareerPaths)
		}
		if err != nil {
			logg.Error(ctx, "seeding career paths", err)
		}
	}

	if err := srv.Start(ctx); err != nil {
		logg.Error(ctx, "server stopped", err)
		return 1
	}
	return 0
}
