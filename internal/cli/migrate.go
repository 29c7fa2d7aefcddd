package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/sakif/skillup/internal/migrate"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <up|down|status|version|reset>",
		Short: "Apply or inspect database migrations",
		Long: `Run the embedded goose migrations against the configured database.

  up       apply every pending migration
  down     roll back the most recent migration
  status   print the state of each migration
  version  print the current schema version
  reset    roll back every migration`,
		Args:         cobra.ExactArgs(1),
		ValidArgs:    []string{migrate.CommandUp, migrate.CommandDown, migrate.CommandStatus, migrate.CommandVersion, migrate.CommandReset},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, rootOpts, args[0])
		},
	}
}

func runMigrate(cmd *cobra.Command, opts *RootOptions, command string) (err error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logg := newLogger(cfg)
	ctx := cmd.Context()

	store, err := openStore(ctx, cfg, false, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, store.Close())
	}()

	sqlDB, err := store.SQLDB()
	if err != nil {
		return err
	}

	if command == migrate.CommandVersion {
		v, err := migrate.Version(ctx, sqlDB, cfg.DB.Driver)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", v)
		return nil
	}

	if err := migrate.Run(ctx, sqlDB, cfg.DB.Driver, command); err != nil {
		return err
	}
	logg.Info(logg.WithField(ctx, "command", command), "migrations finished")
	return nil
}
