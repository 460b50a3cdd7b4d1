package store

// Backend names accepted by Config.Backend.
const (
	BackendORM    = "orm"
	BackendSQL    = "sql"
	BackendCSV    = "csv"
	BackendMemory = "memory"
)

// CSV blob locations accepted by Config.CSVLocation.
const (
	CSVLocationFile   = "file"
	CSVLocationBucket = "bucket"
)

// Config selects and tunes the persistence backend.
type Config struct {
	// Backend is one of orm, sql, csv, memory.
	Backend string `mapstructure:"backend" default:"orm"`
	// AutoCreate creates missing SQL tables on startup (orm and sql backends).
	AutoCreate bool `mapstructure:"auto_create" default:"true"`
	// CSVLocation is where CSV files live: file (local directory) or bucket (object storage).
	CSVLocation string `mapstructure:"csv_location" default:"file"`
	// CSVDir is the local directory for CSV files.
	CSVDir string `mapstructure:"csv_dir" default:"data"`
	// CSVPrefix is the object key prefix for CSV files in the bucket.
	CSVPrefix string `mapstructure:"csv_prefix" default:"catalog"`
}

// IsValidBackend checks if the configured backend is known.
func (c Config) IsValidBackend() bool {
	switch c.Backend {
	case BackendORM, BackendSQL, BackendCSV, BackendMemory:
		return true
	default:
		return false
	}
}
