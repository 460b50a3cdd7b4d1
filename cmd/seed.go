package cmd

import (
	"fmt"

	"catalog-manager/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedReset bool
	seedCount int
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the catalog with sample books",
	Long:  `Adds "Book N" by "Author N" in "Genre N" for N up to --count. With --reset the catalog is cleared first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if seedCount < 0 {
			return fmt.Errorf("--count must not be negative, got %d", seedCount)
		}
		return withApp(cmd.Context(), "seed", func(a *app, l *zap.Logger) error {
			seeder := catalog.NewSeeder(a.svc)
			if seedReset {
				if err := seeder.Reset(cmd.Context()); err != nil {
					return err
				}
			}
			if err := seeder.Populate(cmd.Context(), seedCount); err != nil {
				return err
			}
			l.Info("Seed completed", zap.Bool("reset", seedReset), zap.Int("count", seedCount))
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d book(s)\n", seedCount)
			return nil
		})
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "Clear books, genres and authors first")
	seedCmd.Flags().IntVar(&seedCount, "count", catalog.DefaultSeedCount, "Number of sample books")
	RootCmd.AddCommand(seedCmd)
}
