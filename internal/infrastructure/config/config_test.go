package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"ERP_APP_ENV",
	"ERP_DATABASE_DRIVER",
	"ERP_DATABASE_PASSWORD",
	"ERP_DATABASE_SSLMODE",
	"ERP_DATABASE_MAX_OPEN_CONNS",
	"ERP_DATABASE_MAX_IDLE_CONNS",
	"ERP_ORDERS_ALLOCATION_RETRIES",
	"ERP_TELEMETRY_SAMPLING_RATIO",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "backoffice", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Orders.AllocationRetries)
	assert.Equal(t, 24*time.Hour, cfg.Orders.IdempotencyTTL)
	assert.Equal(t, "backoffice", cfg.Telemetry.ServiceName)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
}

func TestLoadFile(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, `
[app]
name = "toko"

[database]
driver = "MySQL"
user = "root"
dbname = "toko"

[redis]
enabled = true
port = 6380

[orders]
allocation_retries = 0
idempotency_ttl = "1h"
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "toko", cfg.App.Name)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
	assert.Equal(t, 0, cfg.Orders.AllocationRetries)
	assert.Equal(t, time.Hour, cfg.Orders.IdempotencyTTL)
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, "[database]\ndriver = \"sqlite\"\n")
	t.Setenv("ERP_ORDERS_ALLOCATION_RETRIES", "5")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Orders.AllocationRetries)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, "database.driver"},
		{"idle exceeds open", func(c *Config) { c.Database.MaxIdleConns = 50 }, "max_idle_conns"},
		{"too many retries", func(c *Config) { c.Orders.AllocationRetries = 11 }, "allocation_retries"},
		{"sampling out of range", func(c *Config) { c.Telemetry.SamplingRatio = 1.5 }, "sampling_ratio"},
		{"sqlite in production", func(c *Config) {
			c.App.Env = "production"
			c.Database.Driver = DriverSQLite
		}, "sqlite"},
		{"production needs password", func(c *Config) { c.App.Env = "production" }, "database.password"},
		{"production needs ssl", func(c *Config) {
			c.App.Env = "production"
			c.Database.Password = "secret"
		}, "sslmode"},
		{"production rejects wildcard cors", func(c *Config) {
			c.App.Env = "production"
			c.Database.Password = "secret"
			c.Database.SSLMode = "require"
			c.HTTP.CORSAllowOrigins = []string{"*"}
		}, "cors_allow_origins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Orders: OrdersConfig{AllocationRetries: -1}}
			applyDefaults(cfg)
			require.NoError(t, cfg.validate())

			tt.mutate(cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("postgres escapes credentials", func(t *testing.T) {
		d := DatabaseConfig{Driver: DriverPostgres, User: "app", Password: "p@ss word", Host: "db", Port: 5432, DBName: "backoffice", SSLMode: "require"}
		assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/backoffice?sslmode=require", d.DSN())
	})

	t.Run("mysql", func(t *testing.T) {
		d := DatabaseConfig{Driver: DriverMySQL, User: "root", Password: "pw", Host: "db", Port: 3306, DBName: "toko"}
		assert.Equal(t, "root:pw@tcp(db:3306)/toko?charset=utf8mb4&parseTime=True&loc=UTC", d.DSN())
	})

	t.Run("sqlite", func(t *testing.T) {
		d := DatabaseConfig{Driver: DriverSQLite, Path: "data/app.db"}
		assert.Equal(t, "file:data/app.db?_foreign_keys=1&_busy_timeout=5000", d.DSN())
	})
}
