package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Clock     ClockConfig
	Geofence  GeofenceConfig
	Telemetry TelemetryConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	Timezone    string
	FrontendURL string
}

// ClockConfig holds the clock integrity limits and the network time source
type ClockConfig struct {
	NetworkTimeURL     string
	NetworkTimeTimeout time.Duration
	ServerMaxDrift     time.Duration
	ClientMaxDrift     time.Duration
	CheckInterval      time.Duration
}

type GeofenceConfig struct {
	DefaultRadius int
}

type TelemetryConfig struct {
	Endpoint string
	Insecure bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	config := &Config{}
	var err error

	// Database configuration
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
	if config.Database.Port, err = getEnvInt("DB_PORT", 5432); err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}
	config.Database.MaxConns = int32(maxConns)
	config.Database.MinConns = int32(minConns)

	// Application configuration
	config.App = AppConfig{
		Env:         getEnv("APP_ENV", "development"),
		Timezone:    getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		FrontendURL: getEnv("APP_FRONTEND_URL", "http://localhost:3000"),
	}
	if config.App.Port, err = getEnvInt("APP_PORT", 8080); err != nil {
		return nil, err
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Clock integrity
	config.Clock = ClockConfig{
		NetworkTimeURL: getEnv("NETWORK_TIME_URL", "https://worldtimeapi.org/api/timezone/Etc/UTC"),
	}
	if config.Clock.NetworkTimeTimeout, err = getEnvDuration("NETWORK_TIME_TIMEOUT", 2*time.Second); err != nil {
		return nil, err
	}
	if config.Clock.ServerMaxDrift, err = getEnvDuration("SERVER_CLOCK_MAX_DRIFT", 10*time.Minute); err != nil {
		return nil, err
	}
	if config.Clock.ClientMaxDrift, err = getEnvDuration("CLIENT_CLOCK_MAX_DRIFT", 5*time.Minute); err != nil {
		return nil, err
	}
	if config.Clock.CheckInterval, err = getEnvDuration("CLOCK_CHECK_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}

	if config.Geofence.DefaultRadius, err = getEnvInt("GEOFENCE_DEFAULT_RADIUS", 200); err != nil {
		return nil, err
	}

	// Tracing, disabled without an endpoint
	config.Telemetry = TelemetryConfig{
		Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		Insecure: getEnv("OTEL_EXPORTER_OTLP_INSECURE", "true") == "true",
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	if c.Geofence.DefaultRadius <= 0 {
		return fmt.Errorf("GEOFENCE_DEFAULT_RADIUS must be positive")
	}
	return nil
}

// Location returns the timezone that defines an attendance day
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AllowedOrigins splits APP_FRONTEND_URL on commas
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.App.FrontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
