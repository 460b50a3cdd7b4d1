package database

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "catalog",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.ErrorContains(t, err, "unsupported")
		assert.Nil(t, db)
	})

	t.Run("SQLite In Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		assert.Equal(t, "sqlite", db.Dialector.Name())

		// The single pooled connection keeps the in-memory schema alive.
		require.NoError(t, db.Exec("CREATE TABLE t (id INTEGER)").Error)
		require.NoError(t, db.Exec("INSERT INTO t (id) VALUES (1)").Error)
		var n int64
		require.NoError(t, db.Raw("SELECT COUNT(*) FROM t").Scan(&n).Error)
		assert.Equal(t, int64(1), n)
	})
}

func TestOpenSQL(t *testing.T) {
	db, dialect, err := OpenSQL(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, DriverSQLite, dialect)
	_, err = db.ExecContext(context.Background(), "CREATE TABLE t (id INTEGER)")
	assert.NoError(t, err)

	_, _, err = OpenSQL(Config{Driver: "oracle"})
	assert.Error(t, err)
}

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN(Config{
		Host:           "db",
		Port:           3307,
		User:           "app",
		Password:       "p@ss",
		Name:           "catalog",
		TimeoutSeconds: 5,
	})

	assert.True(t, strings.HasPrefix(dsn, "app:p@ss@tcp(db:3307)/catalog?"))
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "timeout=5s")
	assert.Contains(t, dsn, "charset=utf8mb4")
}
