package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// pgForeignKeyViolation is the PostgreSQL SQLSTATE for foreign_key_violation.
const pgForeignKeyViolation = "23503"

// isForeignKeyViolation reports whether err is a referential integrity failure
// from either supported driver.
func isForeignKeyViolation(err error) bool {
	var sq sqlite3.Error
	if errors.As(err, &sq) {
		return sq.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	var pg *pgconn.PgError
	if errors.As(err, &pg) {
		return pg.Code == pgForeignKeyViolation
	}
	return false
}
