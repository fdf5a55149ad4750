package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the postal code map service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the HTTP server (API, health and metrics).
// - PostalCode: The postal code looked up when the map is mounted.
// - Directory: Postal directory provider settings.
// - Geocoder: Geocoding provider settings.
// - UserAgent: User-Agent sent to upstream services.
// - Timeout: Timeout of a single upstream request.
// - Surface: Map surface backend (memory or postgres).
// - NotifyGeocoderErrors: Whether geocoder transport errors reach the user.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env                  string         `yaml:"env"`                    // Env is the current environment: local, development, production.
	Port                 int            `yaml:"port"`                   // Port is the HTTP server port.
	PostalCode           string         `yaml:"postal_code"`            // PostalCode is looked up on mount when not empty.
	Directory            ProviderConfig `yaml:"directory"`              // Directory configures the postal directory.
	Geocoder             ProviderConfig `yaml:"geocoder"`               // Geocoder configures the geocoding provider.
	UserAgent            string         `yaml:"user_agent"`             // UserAgent identifies the service upstream.
	Timeout              time.Duration  `yaml:"timeout"`                // Timeout bounds a single upstream request.
	Surface              string         `yaml:"surface"`                // Surface selects the map backend: memory, postgres.
	NotifyGeocoderErrors bool           `yaml:"notify_geocoder_errors"` // NotifyGeocoderErrors shows geocoder failures to the user.
	Database             PostgresConfig `yaml:"postgres"`               // Database holds the postgres database configuration
}

// ProviderConfig selects and addresses an upstream provider.
type ProviderConfig struct {
	Type    string `yaml:"type"`     // Type is the provider name.
	BaseURL string `yaml:"base_url"` // BaseURL overrides the public endpoint.
	APIKey  string `yaml:"api_key"`  // APIKey is needed by commercial providers.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`                        // Host is the database server address.
	Port     string `yaml:"port"     env-default:"5432"` // Port is the database server port.
	User     string `yaml:"user"`                        // User is the database user.
	Password string `yaml:"password"`                    // Password is the database user's password.
	Name     string `yaml:"db_name"`                     // Name is the name of the database.
}

// MustLoad loads the configuration from the environment, falling back to the given
// dotenv files (".env" when none are given). Process environment always wins.
// It panics when a value cannot be parsed.
func MustLoad(files ...string) *Config {
	dotenv, err := godotenv.Read(files...)
	if err != nil {
		dotenv = map[string]string{}
	}
	env := func(key, override string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		if value, exists := dotenv[key]; exists {
			return value
		}

		return override
	}

	port, err := strconv.Atoi(env("PINPOINT_PORT", "8080"))
	if err != nil {
		panic("failed to parse port from configuration")
	}

	timeout, err := time.ParseDuration(env("PINPOINT_TIMEOUT", "10s"))
	if err != nil {
		panic("failed to parse timeout from configuration")
	}

	notify, err := strconv.ParseBool(env("PINPOINT_NOTIFY_GEOCODER_ERRORS", "true"))
	if err != nil {
		panic("failed to parse notify geocoder errors from configuration, must be a boolean")
	}

	return &Config{
		Env:        env("PINPOINT_ENV", "production"),
		Port:       port,
		PostalCode: env("PINPOINT_POSTAL_CODE", ""),
		Directory: ProviderConfig{
			Type:    env("PINPOINT_DIRECTORY_TYPE", "viacep"),
			BaseURL: env("PINPOINT_DIRECTORY_URL", "https://viacep.com.br/ws"),
		},
		Geocoder: ProviderConfig{
			Type:    env("PINPOINT_PROVIDER_TYPE", "nominatim"),
			BaseURL: env("PINPOINT_PROVIDER_URL", "https://nominatim.openstreetmap.org/search"),
			APIKey:  env("PINPOINT_PROVIDER_KEY", ""),
		},
		UserAgent:            env("PINPOINT_USER_AGENT", "Pinpoint/1.0 (https://github.com/UnknownOlympus/pinpoint)"),
		Timeout:              timeout,
		Surface:              env("PINPOINT_SURFACE", "memory"),
		NotifyGeocoderErrors: notify,
		Database: PostgresConfig{
			Host:     env("DB_HOST", ""),
			Port:     env("DB_PORT", "5432"),
			User:     env("DB_USERNAME", ""),
			Password: env("DB_PASSWORD", ""),
			Name:     env("DB_NAME", ""),
		},
	}
}
