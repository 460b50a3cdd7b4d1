package config

import (
	"fmt"
	"reflect"
	"strings"

	"catalog-manager/core/database"
	"catalog-manager/core/logger"
	"catalog-manager/core/storage"
	"catalog-manager/feature/catalog"
	"catalog-manager/feature/catalog/store"
	"catalog-manager/feature/console"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Store selects the persistence backend.
	Store store.Config `mapstructure:"store"`
	// Database holds configuration for the orm and sql backends.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the object storage used by the bucket CSV backend.
	Storage storage.Config `mapstructure:"storage"`
	// Catalog tunes the catalog service.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Console tunes the interactive menu.
	Console console.Config `mapstructure:"console"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. STORE_BACKEND -> store.backend)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if !config.Store.IsValidBackend() {
		return nil, fmt.Errorf("unknown store backend %q", config.Store.Backend)
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
