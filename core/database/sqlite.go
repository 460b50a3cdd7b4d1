package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// sqliteDriverName is mattn/go-sqlite3 with a Unicode-aware lower().
// SQLite's built-in lower() folds ASCII only, which breaks title search on non-Latin text.
const sqliteDriverName = "sqlite3_catalog"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", unicodeLower, true)
		},
	})
}

// unicodeLower replaces lower(x). NULL and non-text values pass through unchanged.
func unicodeLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		return strings.ToLower(string(s))
	default:
		return v
	}
}
