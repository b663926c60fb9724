package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

var defaultParams = map[string]string{
	"_busy_timeout": "5000",
	"_foreign_keys": "on",
}

// Open opens the database file and pings it. All callers share one
// connection. path may carry its own query parameters; they take
// precedence over the defaults.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	const op = "sqlite.Open"

	dsn, err := DSN(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return db, nil
}

// DSN merges the default connection parameters into path.
func DSN(path string) (string, error) {
	file, rawQuery, _ := strings.Cut(path, "?")
	if file == "" {
		return "", errors.New("empty database path")
	}
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", fmt.Errorf("parse query of %q: %w", path, err)
	}
	for k, v := range defaultParams {
		if !q.Has(k) {
			q.Set(k, v)
		}
	}
	return file + "?" + q.Encode(), nil
}
