package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/chartseed/internal/config"
	"github.com/cleared-dev/chartseed/internal/seed"
	"github.com/cleared-dev/chartseed/internal/storage"
)

func newSeedCommand(dir *string) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Build the reference data and write it to the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, *dir)
			if err != nil {
				return err
			}
			snap, err := p.snapshot()
			if err != nil {
				return err
			}

			if dbPath == "" {
				dbPath = p.cfg.Database.Path
			}
			path := config.Resolve(p.dir, dbPath)

			store, err := storage.Open(cmd.Context(), path)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := seed.Run(cmd.Context(), snap, store, p.seedOptions())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d records into %s (%d warnings)\n",
				res.Batch.Len(), path, len(res.Warnings))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "database path (overrides config)")

	return cmd
}
