package db

// InitSchema creates any missing tables and indexes. Statements are idempotent
// (CREATE ... IF NOT EXISTS); there is no versioned migration machinery.
func InitSchema(d *DB) error {
	stmts := sqliteSchema
	if d.driver == DriverPostgres {
		stmts = postgresSchema
	}
	for _, s := range stmts {
		if _, err := d.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Timestamps (creation_date, tracking_info.timestamp) are RFC3339 UTC strings
// written by the repositories, so the columns are TEXT in both dialects and
// ORDER BY compares chronologically.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'client'
	)`,
	`CREATE TABLE IF NOT EXISTS packages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sender_id INTEGER NOT NULL REFERENCES users(id),
		receiver_id INTEGER NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		sender_city TEXT NOT NULL,
		destination_city TEXT NOT NULL,
		is_tracked INTEGER NOT NULL DEFAULT 0,
		creation_date TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tracking_info (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		package_id INTEGER NOT NULL REFERENCES packages(id) ON DELETE CASCADE,
		city TEXT NOT NULL,
		timestamp TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_packages_sender ON packages(sender_id)`,
	`CREATE INDEX IF NOT EXISTS idx_packages_receiver ON packages(receiver_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tracking_package ON tracking_info(package_id, timestamp)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'client'
	)`,
	`CREATE TABLE IF NOT EXISTS packages (
		id BIGSERIAL PRIMARY KEY,
		sender_id BIGINT NOT NULL REFERENCES users(id),
		receiver_id BIGINT NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		sender_city TEXT NOT NULL,
		destination_city TEXT NOT NULL,
		is_tracked BOOLEAN NOT NULL DEFAULT FALSE,
		creation_date TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tracking_info (
		id BIGSERIAL PRIMARY KEY,
		package_id BIGINT NOT NULL REFERENCES packages(id) ON DELETE CASCADE,
		city TEXT NOT NULL,
		timestamp TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_packages_sender ON packages(sender_id)`,
	`CREATE INDEX IF NOT EXISTS idx_packages_receiver ON packages(receiver_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tracking_package ON tracking_info(package_id, timestamp)`,
}
