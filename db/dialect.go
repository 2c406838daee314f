// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"github.com/danielhkuo/ridepolls/cliparse"
)

// dialectSQLite is sqlite3 with ON CONFLICT (target) DO UPDATE enabled, which
// SQLite has supported since 3.24.
const dialectSQLite = "sqlite3-upsert"

func init() {
	opts := sqlite3.DialectOptions()
	opts.SupportsConflictTarget = true
	opts.ConflictFragment = []byte(" ON CONFLICT")
	opts.ConflictDoNothingFragment = []byte(" DO NOTHING")
	opts.ConflictDoUpdateFragment = []byte(" DO UPDATE SET ")
	goqu.RegisterDialect(dialectSQLite, opts)
}

// Dialect returns the goqu dialect name for a database type
func Dialect(dbType string) string {
	if dbType == cliparse.DatabaseSQLite {
		return dialectSQLite
	}
	return "postgres"
}

// Goqu wraps a connection with the dialect for its database type
func Goqu(conn *sql.DB, dbType string) *goqu.Database {
	return goqu.New(Dialect(dbType), conn)
}
