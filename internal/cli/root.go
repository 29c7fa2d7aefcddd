// Package cli implements skillup-admin, the operator command line: database
// migrations and career path catalog seeding.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sakif/skillup/internal/config"
	"github.com/sakif/skillup/internal/logger"
	"github.com/sakif/skillup/internal/repository/gormstore"
)

// RootOptions holds flags shared by every subcommand. Empty values fall
// back to the environment configuration.
type RootOptions struct {
	Driver string
	DSN    string
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "skillup-admin",
		Short: "Administrative tasks for the SkillUp service",
	}

	cmd.PersistentFlags().StringVar(&opts.Driver, "db-driver", "", "database driver (sqlite|postgres); defaults to SKILLUP_DB_DRIVER")
	cmd.PersistentFlags().StringVar(&opts.DSN, "db-dsn", "", "database DSN; defaults to SKILLUP_DB_DSN")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		return 1
	}
	return 0
}

func (o *RootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.Driver != "" {
		cfg.DB.Driver = o.Driver
	}
	if o.DSN != "" {
		cfg.DB.DSN = o.DSN
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: "skillup-admin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		Output:      os.Stderr,
	})
}

func openStore(ctx context.Context, cfg *config.Config, autoMigrate bool, logg *logger.Logger) (*gormstore.Store, error) {
	dbCfg := cfg.DB
	dbCfg.AutoMigrate = autoMigrate
	return gormstore.Open(ctx, dbCfg, logg)
}
