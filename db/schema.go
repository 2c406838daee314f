// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ridepolls/cliparse"
)

//go:embed migrations
var migrationFS embed.FS

// Migrations returns the migration files for a database type, rooted so that
// file names sit at the top level
func Migrations(dbType string) (fs.FS, error) {
	if !supported(dbType) {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
	return fs.Sub(migrationFS, path.Join("migrations", dbType))
}

// DriverName maps a database type to its database/sql driver
func DriverName(dbType string) string {
	if dbType == cliparse.DatabaseSQLite {
		return "sqlite"
	}
	return "postgres"
}

// Open connects and pings the database
func Open(dbType, url string) (*sql.DB, error) {
	if !supported(dbType) {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(DriverName(dbType), url)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", dbType, err)
	}
	if dbType == cliparse.DatabaseSQLite {
		// one writer at a time keeps SQLITE_BUSY out of concurrent votes
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return conn, nil
}

// CreateSchema applies every up migration for the database type.
// Safe to call multiple times - all statements are IF NOT EXISTS / OR REPLACE.
func CreateSchema(conn *sql.DB, dbType string) error {
	fsys, err := Migrations(dbType)
	if err != nil {
		return err
	}

	names, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		if strings.TrimSpace(string(body)) == "" {
			continue
		}
		if _, err := conn.Exec(string(body)); err != nil {
			return fmt.Errorf("failed to create schema (%s): %w", name, err)
		}
	}

	return nil
}

func supported(dbType string) bool {
	return dbType == cliparse.DatabasePostgres || dbType == cliparse.DatabaseSQLite
}
