// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command migrator applies the versioned schema migrations and optionally
// seeds polls from a YAML file.
//
//	migrator -action up|down|version|force [-steps N] [-seed polls.yaml]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/ridepolls/cliparse"
	"github.com/danielhkuo/ridepolls/db"
)

func main() {
	_ = godotenv.Load()

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "migrator:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	var sc cliparse.StoreConfig
	if err := cleanenv.ReadEnv(&sc); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	var (
		action   string
		steps    int
		seedPath string
	)

	fs := flag.NewFlagSet("migrator", flag.ContinueOnError)
	fs.StringVar(&action, "action", "up", "Migration action: up, down, force, version")
	fs.IntVar(&steps, "steps", 0, "Steps for up/down, target version for force")
	fs.StringVar(&seedPath, "seed", "", "YAML file of polls to upsert after migrating")
	fs.StringVar(&sc.DatabaseURL, "d", sc.DatabaseURL, "Database URL")
	fs.StringVar(&sc.DatabaseType, "t", sc.DatabaseType, "Database type (postgres or sqlite)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if sc.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	conn, err := db.Open(sc.DatabaseType, sc.DatabaseURL)
	if err != nil {
		return err
	}

	var driver database.Driver
	switch sc.DatabaseType {
	case cliparse.DatabaseSQLite:
		driver, err = sqlite.WithInstance(conn, &sqlite.Config{})
	default:
		driver, err = postgres.WithInstance(conn, &postgres.Config{})
	}
	if err != nil {
		conn.Close()
		return fmt.Errorf("migration driver: %w", err)
	}

	migrations, err := db.Migrations(sc.DatabaseType)
	if err != nil {
		return err
	}
	src, err := iofs.New(migrations, ".")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, sc.DatabaseType, driver)
	if err != nil {
		return err
	}
	// closes conn as well
	defer m.Close()

	switch action {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "force":
		err = m.Force(steps)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Fprintln(out, "Version: none")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Version: %d, Dirty: %v\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown action: %s", action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	fmt.Fprintln(out, "Migration complete")

	if seedPath == "" {
		return nil
	}

	f, err := os.Open(seedPath)
	if err != nil {
		return err
	}
	defer f.Close()

	seeded, err := db.Seed(ctx, conn, sc.DatabaseType, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Seeded %d polls\n", len(seeded))
	return nil
}
