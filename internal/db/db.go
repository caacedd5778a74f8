// Package db opens the relational store and initializes its schema.
//
// Two drivers are supported: SQLite (local development and tests) and
// PostgreSQL via the pgx stdlib driver (deployments). Repositories write
// portable SQL with `?` placeholders and call Rebind, which rewrites them
// to `$n` for PostgreSQL.
package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DB wraps *sql.DB with the driver it was opened with so repositories can
// rebind placeholders without caring which store is underneath.
type DB struct {
	*sql.DB
	driver string
}

// Driver returns the driver name the database was opened with.
func (d *DB) Driver() string { return d.driver }

// Rebind rewrites `?` placeholders to `$1..$n` when the underlying driver is
// PostgreSQL. SQLite queries pass through unchanged.
func (d *DB) Rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Open opens the store for the given driver and DSN, verifies connectivity,
// and creates any missing tables.
//
// For SQLite the DSN is a file path (or a `file:...?mode=memory` URL in
// tests). For PostgreSQL it is a key=value or URL DSN as accepted by pgx.
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		return openSQLite(dsn)
	case DriverPostgres:
		return openPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

func openSQLite(path string) (*DB, error) {
	if path == "" {
		path = "app.db"
	}
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}
	// journal_mode may not be supported in some contexts (e.g., in-memory). Ignore errors.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := d.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = d.Close()
		return nil, err
	}
	if _, err := d.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		_ = d.Close()
		return nil, err
	}
	out := &DB{DB: d, driver: DriverSQLite}
	if err := InitSchema(out); err != nil {
		_ = d.Close()
		return nil, err
	}
	return out, nil
}

func openPostgres(dsn string) (*DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	d := stdlib.OpenDB(*cfg)
	d.SetMaxOpenConns(10)
	d.SetMaxIdleConns(10)
	d.SetConnMaxLifetime(30 * time.Minute)
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}
	out := &DB{DB: d, driver: DriverPostgres}
	if err := InitSchema(out); err != nil {
		_ = d.Close()
		return nil, err
	}
	return out, nil
}
