package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQLDSN builds the go-sql-driver DSN for cfg.
// The driver formatter splits credentials on the last @, so passwords may contain one.
func MySQLDSN(cfg Config) string {
	timeout := time.Duration(cfg.timeout()) * time.Second

	mc := mysqldriver.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Timeout = timeout
	mc.ReadTimeout = timeout
	mc.WriteTimeout = timeout
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// Connect establishes a GORM connection for the configured driver.
// It returns a *gorm.DB connection or an error if the connection fails.
func Connect(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: cfg.Name})
	case DriverMySQL, "":
		dialector = mysql.Open(MySQLDSN(cfg))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	// GORM logging is silenced; the store reports errors through zap instead.
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := tunePool(sqlDB, cfg); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenSQL opens a plain database/sql handle for the configured driver.
// The returned dialect is the driver name understood by the sql store.
func OpenSQL(cfg Config) (*sql.DB, string, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case DriverSQLite:
		db, err = sql.Open(sqliteDriverName, cfg.Name)
	case DriverMySQL, "":
		db, err = sql.Open("mysql", MySQLDSN(cfg))
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	if err := tunePool(db, cfg); err != nil {
		_ = db.Close()
		return nil, "", err
	}

	dialect := cfg.Driver
	if dialect == "" {
		dialect = DriverMySQL
	}
	return db, dialect, nil
}

func tunePool(sqlDB *sql.DB, cfg Config) error {
	if cfg.Driver == DriverSQLite {
		// Each sqlite connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.timeout())*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
