package db

import (
	"fmt"
	"testing"
)

func TestRebind_PostgresNumbersPlaceholders(t *testing.T) {
	d := &DB{driver: DriverPostgres}
	got := d.Rebind("INSERT INTO packages (name, is_tracked) VALUES (?, ?) RETURNING id")
	want := "INSERT INTO packages (name, is_tracked) VALUES ($1, $2) RETURNING id"
	if got != want {
		t.Errorf("Rebind = %q, want %q", got, want)
	}
}

func TestRebind_SQLitePassesThrough(t *testing.T) {
	d := &DB{driver: DriverSQLite}
	q := "SELECT id FROM users WHERE username = ?"
	if got := d.Rebind(q); got != q {
		t.Errorf("Rebind rewrote a sqlite query: %q", got)
	}
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "dsn"); err == nil {
		t.Fatal("unknown driver must be rejected")
	}
}

func TestOpenSQLite_SchemaIsIdempotent(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	d, err := Open(DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	// Opening created the tables; running InitSchema again must be a no-op.
	if err := InitSchema(d); err != nil {
		t.Fatalf("second InitSchema: %v", err)
	}

	for _, table := range []string{"users", "packages", "tracking_info"} {
		var name string
		err := d.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}
