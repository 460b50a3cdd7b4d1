package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "orm", cfg.Store.Backend)
	assert.True(t, cfg.Store.AutoCreate)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "catalog", cfg.Storage.Bucket)
	assert.True(t, cfg.Catalog.CascadeDelete)
	assert.Equal(t, 64, cfg.Catalog.SearchCacheSize)
	assert.Equal(t, "", cfg.Console.Locale)
	assert.True(t, cfg.Console.Color)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_Environment(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name:  "Backend",
			env:   map[string]string{"STORE_BACKEND": "csv", "STORE_CSV_DIR": "/tmp/books"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "csv", cfg.Store.Backend)
				assert.Equal(t, "/tmp/books", cfg.Store.CSVDir)
			},
		},
		{
			name:  "Catalog",
			env:   map[string]string{"CATALOG_CASCADE_DELETE": "false", "CATALOG_SEARCH_CACHE_SIZE": "0"},
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Catalog.CascadeDelete)
				assert.Equal(t, 0, cfg.Catalog.SearchCacheSize)
			},
		},
		{
			name:  "Database",
			env:   map[string]string{"DATABASE_DRIVER": "mysql", "DATABASE_PORT": "3307"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.Database.Driver)
				assert.Equal(t, 3307, cfg.Database.Port)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadConfig(t.TempDir())
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	// Registered so the value godotenv sets is restored afterwards.
	t.Setenv("CONSOLE_LOCALE", "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CONSOLE_LOCALE=ru\n"), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "ru", cfg.Console.Locale)
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")

	_, err := LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "mongo")
}
