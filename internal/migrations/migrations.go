package migrations

import (
	"embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

const table = "schema_migrations"

// Up applies every pending migration. driver is "sqlite" or "postgres";
// target is the sqlite file path or the postgres DSN.
func Up(driver, target string) (applied bool, err error) {
	const op = "migrations.Up"

	m, err := open(driver, target)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer closeMigrate(m, &err)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Down rolls back every migration.
func Down(driver, target string) (applied bool, err error) {
	const op = "migrations.Down"

	m, err := open(driver, target)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer closeMigrate(m, &err)

	if err := m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

func open(driver, target string) (*migrate.Migrate, error) {
	dir, dbURL, err := locate(driver, target)
	if err != nil {
		return nil, err
	}
	src, err := iofs.New(files, dir)
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", src, dbURL)
}

func locate(driver, target string) (dir, dbURL string, err error) {
	switch driver {
	case "sqlite":
		file, rawQuery, _ := strings.Cut(target, "?")
		q, err := url.ParseQuery(rawQuery)
		if err != nil {
			return "", "", fmt.Errorf("parse query of %q: %w", target, err)
		}
		q.Set("x-migrations-table", table)
		return "sqlite", "sqlite3://" + file + "?" + q.Encode(), nil
	case "postgres":
		return "postgres", target, nil
	}
	return "", "", fmt.Errorf("unknown driver %q", driver)
}

func closeMigrate(m *migrate.Migrate, err *error) {
	srcErr, dbErr := m.Close()
	if *err != nil {
		return
	}
	if srcErr != nil {
		*err = srcErr
	} else if dbErr != nil {
		*err = dbErr
	}
}
