// Package database handles database connections and schema inspection.
//
// It wraps GORM and database/sql so both SQL-backed catalog stores share one
// configuration. MySQL and SQLite are supported.
//
// # Connect
//
// Connect returns a *gorm.DB for the orm store. OpenSQL returns a *sql.DB plus the
// dialect name for the squirrel-based sql store. Both verify the connection with a
// ping bounded by Config.TimeoutSeconds.
//
// SQLite handles are limited to a single open connection so that ":memory:"
// databases survive across calls.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns back the check command, which verifies the
// catalog tables carry the columns the stores expect.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "books", []string{"id", "title"})
package database
