// Package sqlstore implements the catalog store with hand-built SQL.
//
// Statements are assembled with squirrel and executed through database/sql,
// so the same code serves the mattn/go-sqlite3 and go-sql-driver/mysql drivers.
// Bootstrap creates the tables for the chosen dialect when they are missing.
package sqlstore
