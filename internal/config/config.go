// Package config loads service settings from the environment (and an
// optional .env file).
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Supported DATABASE_DRIVER values.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds every setting the service reads at startup.
type Config struct {
	AppPort string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string

	RabbitMQURL string
	InstanceID  string

	GeminiAPIKey string
	GeminiModel  string

	DriveCredentialsFile string
	DriveFolderID        string

	LogLevel string
	LogFile  string

	SeedDemoData bool
}

// Load reads the configuration. Values in a .env file at the working
// directory are used for keys not already set in the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper reads the configuration from v, applying defaults first.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "vitrine.db")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED_DEMO_DATA", false)
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:              v.GetString("APP_PORT"),
		DatabaseDriver:       strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:          v.GetString("DATABASE_DSN"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		AdminUsername:        v.GetString("ADMIN_USERNAME"),
		AdminPasswordHash:    v.GetString("ADMIN_PASSWORD_HASH"),
		RabbitMQURL:          v.GetString("RABBITMQ_URL"),
		InstanceID:           v.GetString("INSTANCE_ID"),
		GeminiAPIKey:         v.GetString("GEMINI_API_KEY"),
		GeminiModel:          v.GetString("GEMINI_MODEL"),
		DriveCredentialsFile: v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
		DriveFolderID:        v.GetString("DRIVE_FOLDER_ID"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFile:              v.GetString("LOG_FILE"),
		SeedDemoData:         v.GetBool("SEED_DEMO_DATA"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the service cannot start without.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
		if c.DatabaseDSN == "" {
			return errors.New("DATABASE_DSN is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

// DriveEnabled reports whether asset uploads are configured.
func (c *Config) DriveEnabled() bool {
	return c.DriveCredentialsFile != ""
}
