package console

// Config holds configuration for the interactive menu.
type Config struct {
	// Locale skips the language menu when set (en, ru).
	Locale string `mapstructure:"locale" default:""`
	// Color enables styled output on terminals.
	Color bool `mapstructure:"color" default:"true"`
}
