package cmd

import (
	"fmt"
	"sort"
	"strings"

	"catalog-manager/core/config"
	"catalog-manager/core/database"
	"catalog-manager/core/logger"
	"catalog-manager/feature/catalog/store/orm"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the SQL schema of the catalog tables",
	Long:  `Connects with the database settings and reports columns missing from the authors, genres and books tables. Nothing is created or changed.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()
		l := logger.WithOperation(logg, "check")

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		report, err := checkSchema(db)
		if err != nil {
			return err
		}

		broken := 0
		for _, table := range report.tables {
			missing := report.missing[table]
			if len(missing) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", table)
				continue
			}
			broken++
			fmt.Fprintf(cmd.OutOrStdout(), "%s: missing %s\n", table, strings.Join(missing, ", "))
		}

		l.Info("Schema check completed", zap.Int("tables", len(report.tables)), zap.Int("broken", broken))
		if broken > 0 {
			return fmt.Errorf("%d table(s) are missing columns", broken)
		}
		return nil
	},
}

type schemaReport struct {
	tables  []string
	missing map[string][]string
}

// checkSchema compares each catalog table against the columns the stores expect.
func checkSchema(db *gorm.DB) (schemaReport, error) {
	report := schemaReport{
		tables:  lo.Keys(orm.Columns),
		missing: make(map[string][]string, len(orm.Columns)),
	}
	sort.Strings(report.tables)

	for _, table := range report.tables {
		missing, err := database.MissingColumns(db, table, orm.Columns[table])
		if err != nil {
			return report, fmt.Errorf("inspect %s: %w", table, err)
		}
		report.missing[table] = missing
	}
	return report, nil
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
