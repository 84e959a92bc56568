package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// baseValidConfig returns a fully-valid configuration object that callers
// can tweak inside table tests.
func baseValidConfig() Config {
	return Config{
		AppPort:            8080,
		BcryptCost:         12,
		SignInRatePerMin:   5,
		LogLevel:           "info",
		LogFormat:          "json",
		MongoURI:           "mongodb://localhost:27017",
		MongoDBName:        "test",
		JWTSecret:          "this-is-a-super-secret-jwt-key-with-32-plus-chars",
		JWTAlgorithm:       "HS256",
		AccessTokenMinutes: 60,
	}
}

// clearConfigEnvVars removes every environment variable that the loader
// consumes so each test starts with a clean slate.
func clearConfigEnvVars(t *testing.T) {
	t.Helper()

	for _, k := range []string{
		"APP_PORT",
		"BCRYPT_COST",
		"SIGNIN_RATE_PER_MIN",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"MONGO_URI",
		"MONGO_DB_NAME",
		"JWT_SECRET",
		"JWT_ALGORITHM",
		"ACCESS_TOKEN_MINUTES",
		"ROUTE_METRICS_ENABLED",
		"REQUEST_LOGGING_ENABLED",
	} {
		if err := os.Unsetenv(k); err != nil {
			t.Logf("warning: failed to unset %s: %v", k, err)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnvVars(t)
	ResetCache()
	defer ResetCache()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.AppPort)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "innerventory", cfg.MongoDBName)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 60, cfg.AccessTokenMinutes)
	assert.True(t, cfg.RouteMetricsEnabled)
	assert.False(t, cfg.RequestLoggingEnabled)
}

func TestLoadEnvOverride(t *testing.T) {
	clearConfigEnvVars(t)
	ResetCache()
	defer ResetCache()

	t.Setenv("APP_PORT", "9090")
	t.Setenv("MONGO_DB_NAME", "innerventory_test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.AppPort)
	assert.Equal(t, "innerventory_test", cfg.MongoDBName)
}

func TestLoadIsCached(t *testing.T) {
	clearConfigEnvVars(t)
	ResetCache()
	defer ResetCache()

	first, err := Load()
	require.NoError(t, err)

	// A change after the first Load must not be observed.
	t.Setenv("APP_PORT", "9999")
	second, err := Load()
	require.NoError(t, err)
	assert.Equal(t, first.AppPort, second.AppPort)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.AppPort = 0 }, "APP_PORT"},
		{"bcrypt cost too low", func(c *Config) { c.BcryptCost = 4 }, "BCRYPT_COST"},
		{"bcrypt cost too high", func(c *Config) { c.BcryptCost = 31 }, "BCRYPT_COST"},
		{"bad rate limit", func(c *Config) { c.SignInRatePerMin = 0 }, "SIGNIN_RATE_PER_MIN"},
		{"empty log level", func(c *Config) { c.LogLevel = "" }, "LOG_LEVEL"},
		{"empty mongo uri", func(c *Config) { c.MongoURI = "" }, "MONGO_URI"},
		{"empty db name", func(c *Config) { c.MongoDBName = "" }, "MONGO_DB_NAME"},
		{"empty jwt secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"short HS256 secret", func(c *Config) { c.JWTSecret = "short" }, "at least 32"},
		{"zero token lifetime", func(c *Config) { c.AccessTokenMinutes = 0 }, "ACCESS_TOKEN_MINUTES"},
		{"unknown algorithm", func(c *Config) { c.JWTAlgorithm = "none" }, "JWT_ALGORITHM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseValidConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
