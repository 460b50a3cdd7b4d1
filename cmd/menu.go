package cmd

import (
	"catalog-manager/feature/console"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// menuCmd represents the menu command
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long:  `Starts the localized interactive menu. Set CONSOLE_LOCALE to skip the language prompt.`,
	Args:  cobra.NoArgs,
	RunE:  runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), "menu", func(a *app, l *zap.Logger) error {
		m, err := console.NewMenu(a.svc, cmd.InOrStdin(), cmd.OutOrStdout(), console.Options{
			Locale: a.cfg.Console.Locale,
			Color:  a.cfg.Console.Color,
			Logger: a.log,
		})
		if err != nil {
			return err
		}
		l.Debug("Session started", zap.String("locale", a.cfg.Console.Locale))
		return m.Run(cmd.Context())
	})
}

func init() {
	RootCmd.AddCommand(menuCmd)
}
