package cmd

import (
	"context"
	"fmt"

	"catalog-manager/core/config"
	"catalog-manager/core/database"
	"catalog-manager/core/logger"
	"catalog-manager/core/storage"
	"catalog-manager/feature/catalog"
	"catalog-manager/feature/catalog/store"
	"catalog-manager/feature/catalog/store/csvfile"
	"catalog-manager/feature/catalog/store/memory"
	"catalog-manager/feature/catalog/store/orm"
	"catalog-manager/feature/catalog/store/sqlstore"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app is the wiring shared by every command.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store store.Store
	svc   *catalog.Service
}

// newApp loads configuration and opens the configured store.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	st, err := openStore(ctx, cfg, logg)
	if err != nil {
		_ = logg.Sync()
		return nil, err
	}

	svc, err := catalog.NewService(st, cfg.Catalog, logg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &app{cfg: cfg, log: logg, store: st, svc: svc}, nil
}

// Close releases the store and flushes the logger.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("Failed to close store", zap.Error(err))
	}
	_ = a.log.Sync()
}

// openStore builds the backend named by cfg.Store.Backend.
func openStore(ctx context.Context, cfg *config.Config, logg *zap.Logger) (store.Store, error) {
	logg = logg.With(zap.String("backend", cfg.Store.Backend))

	switch cfg.Store.Backend {
	case store.BackendORM:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		st, err := orm.New(db, cfg.Store.AutoCreate)
		if err != nil {
			closeGorm(db)
			return nil, err
		}
		logg.Debug("Connected to database", zap.String("driver", cfg.Database.Driver))
		return st, nil

	case store.BackendSQL:
		db, dialect, err := database.OpenSQL(cfg.Database)
		if err != nil {
			return nil, err
		}
		st := sqlstore.New(db, dialect)
		if cfg.Store.AutoCreate {
			if err := st.Bootstrap(ctx); err != nil {
				_ = st.Close()
				return nil, err
			}
		}
		logg.Debug("Connected to database", zap.String("driver", dialect))
		return st, nil

	case store.BackendCSV:
		blob, err := openBlob(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logg.Debug("Using CSV files", zap.String("location", cfg.Store.CSVLocation))
		return csvfile.New(blob), nil

	case store.BackendMemory:
		logg.Warn("Using in-memory store, data is lost on exit")
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// closeGorm releases the pool behind db.
func closeGorm(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func openBlob(ctx context.Context, cfg *config.Config) (csvfile.Blob, error) {
	switch cfg.Store.CSVLocation {
	case store.CSVLocationFile, "":
		return csvfile.NewFSBlob(afero.NewOsFs(), cfg.Store.CSVDir), nil
	case store.CSVLocationBucket:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
		return csvfile.NewBucketBlob(client, cfg.Storage.Bucket, cfg.Store.CSVPrefix), nil
	default:
		return nil, fmt.Errorf("unknown csv location %q", cfg.Store.CSVLocation)
	}
}

// withApp runs fn with a fresh app and a logger tagged with the operation.
func withApp(ctx context.Context, op string, fn func(a *app, l *zap.Logger) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a, logger.WithOperation(a.log, op))
}
