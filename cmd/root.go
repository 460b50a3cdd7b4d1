package cmd

import (
	"fmt"
	"os"

	"catalog-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "catalog-manager",
	Short: "Book catalog manager",
	Long: `Catalog Manager keeps a catalog of books, authors and genres.
Without a subcommand it starts the interactive menu. Storage is pluggable:
GORM or plain SQL over MySQL/SQLite, CSV files on disk or in a bucket, or memory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding at debug level gives readable ISO8601 timestamps for a CLI.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
