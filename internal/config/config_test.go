package config_test

import (
	"testing"

	"vitrine/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cret")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, config.DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "vitrine.db", cfg.DatabaseDSN)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.False(t, cfg.SeedDemoData)
	assert.False(t, cfg.DriveEnabled())
}

func TestFromViper_Env(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_DRIVER", "MEMORY")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/etc/sa.json")

	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, config.DriverMemory, cfg.DatabaseDriver)
	assert.True(t, cfg.SeedDemoData)
	assert.True(t, cfg.DriveEnabled())
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	_, err := config.FromViper(v)
	assert.ErrorContains(t, err, "JWT_SECRET")

	v = viper.New()
	v.Set("JWT_SECRET", "x")
	v.Set("DATABASE_DRIVER", "mysql")
	_, err = config.FromViper(v)
	assert.ErrorContains(t, err, "mysql")
}
