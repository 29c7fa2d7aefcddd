package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/sakif/skillup/internal/seed"
	"github.com/sakif/skillup/internal/service"
)

type seedOptions struct {
	File string
}

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the career path catalog",
		Long: `Upsert career paths by slug. Running it again is harmless: rows whose
name and description already match are left untouched.

Without --file the built-in catalog is used.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML catalog to seed instead of the built-in one")
	return cmd
}

func loadCatalog(file string) (*seed.Catalog, error) {
	if file == "" {
		return seed.Default()
	}
	return seed.LoadFile(file)
}

func runSeed(cmd *cobra.Command, rootOpts *RootOptions, opts *seedOptions) (err error) {
	catalog, err := loadCatalog(opts.File)
	if err != nil {
		return err
	}

	cfg, err := rootOpts.loadConfig()
	if err != nil {
		return err
	}
	logg := newLogger(cfg)
	ctx := cmd.Context()

	store, err := openStore(ctx, cfg, true, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, store.Close())
	}()

	report, err := service.NewCatalogService(store, logg, nil).Seed(ctx, catalog.CareerPaths)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "career paths: %d created, %d updated, %d unchanged\n",
		report.Created, report.Updated, report.Unchanged)
	return nil
}
