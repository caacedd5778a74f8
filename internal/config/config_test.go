package config

import (
	"os"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DB_DRIVER", "DB_PATH", "DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PORT",
		"DIRECTORY_ADDRESS", "TRACKING_ADDRESS", "JWT_SECRET",
		"WEB_ADDRESS", "DIRECTORY_ENDPOINT", "TRACKING_ENDPOINT",
	} {
		if v, ok := os.LookupEnv(k); ok {
			t.Setenv(k, v) // restores on cleanup
			os.Unsetenv(k)
		}
	}
}

func TestLoadWithDefaults_Succeeds(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if cfg.Database.Driver != "sqlite3" || cfg.Database.Path != "app.db" {
		t.Errorf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.GRPC.DirectoryAddress != ":50051" || cfg.GRPC.TrackingAddress != ":50052" {
		t.Errorf("unexpected grpc defaults: %+v", cfg.GRPC)
	}
	if cfg.Web.Address != ":8080" {
		t.Errorf("unexpected web default: %+v", cfg.Web)
	}
	if cfg.Auth.JWTSecret == "" {
		t.Error("LoadWithDefaults must fill in a development JWT secret")
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil {
		t.Fatal("Load must fail without JWT_SECRET")
	}
	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with JWT_SECRET: %v", err)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("JWTSecret = %q", cfg.Auth.JWTSecret)
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "oracle")
	if _, err := Load(); err == nil {
		t.Fatal("unknown DB_DRIVER must be rejected")
	}
}

func TestLoad_PostgresDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "pts")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "tracking")
	t.Setenv("DB_PORT", "5433")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	dsn := cfg.Database.DSN()
	want := "host=db.internal port=5433 user=pts password=pw dbname=tracking"
	if dsn != want {
		t.Errorf("DSN = %q, want %q", dsn, want)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Fatal("non-numeric DB_PORT must be rejected")
	}
}

func TestString_MasksSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "super-secret-value")
	t.Setenv("DB_NAME", "trackingdb")
	t.Setenv("DB_PASSWORD", "db-pass")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.String()
	if strings.Contains(s, "super-secret-value") {
		t.Errorf("String() leaks the JWT secret: %s", s)
	}
	if strings.Contains(s, "db-pass") {
		t.Errorf("String() leaks the database password: %s", s)
	}
	// Name and path are separate fields, never concatenated.
	if strings.Contains(s, "trackingdbapp.db") {
		t.Errorf("String() runs name and path together: %s", s)
	}
	if !strings.Contains(s, `name="trackingdb"`) || !strings.Contains(s, `path="app.db"`) {
		t.Errorf("String() missing database fields: %s", s)
	}
}
