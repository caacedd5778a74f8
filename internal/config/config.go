package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	GRPC     GRPCConfig
	Auth     AuthConfig
	Web      WebConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Driver   string // "sqlite3" or "postgres"
	Path     string // SQLite database file path
	Host     string // PostgreSQL host
	User     string // PostgreSQL user
	Password string // PostgreSQL password
	Name     string // PostgreSQL database name
	Port     int    // PostgreSQL port
}

// DSN returns the data source name for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			d.Host, d.Port, d.User, d.Password, d.Name)
	}
	return d.Path
}

// GRPCConfig contains the service listen addresses.
type GRPCConfig struct {
	DirectoryAddress string // directory service listen address (e.g., ":50051")
	TrackingAddress  string // tracking service listen address (e.g., ":50052")
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string // signing key for service tokens and the web session cookie
}

// WebConfig contains the presentation layer settings.
type WebConfig struct {
	Address           string // HTTP listen address (e.g., ":8080")
	DirectoryEndpoint string // directory service target (host:port)
	TrackingEndpoint  string // tracking service target (host:port)
}

// Load loads configuration from environment variables.
// It fails when JWT_SECRET is unset; use LoadWithDefaults in development.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for JWT_SECRET in development.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

func load() (*Config, error) {
	port, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite3"),
			Path:     getEnv("DB_PATH", "app.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", ""),
			Port:     port,
		},
		GRPC: GRPCConfig{
			DirectoryAddress: getEnv("DIRECTORY_ADDRESS", ":50051"),
			TrackingAddress:  getEnv("TRACKING_ADDRESS", ":50052"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Web: WebConfig{
			Address:           getEnv("WEB_ADDRESS", ":8080"),
			DirectoryEndpoint: getEnv("DIRECTORY_ENDPOINT", "localhost:50051"),
			TrackingEndpoint:  getEnv("TRACKING_ENDPOINT", "localhost:50052"),
		},
	}
	if cfg.Database.Driver != "sqlite3" && cfg.Database.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	return cfg, nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: driver=%s name=%q path=%q, Directory: %s, Tracking: %s, Web: %s, Auth: *** (masked) ***}",
		c.Database.Driver, c.Database.Name, c.Database.Path,
		c.GRPC.DirectoryAddress, c.GRPC.TrackingAddress, c.Web.Address)
}
