package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, time.UTC.String(), cfg.Location.String())
	assert.Equal(t, "native", cfg.Receipt.Engine)
	assert.Equal(t, "FCFA", cfg.Receipt.CurrencyLabel)
	assert.Equal(t, 20*time.Second, cfg.Receipt.Timeout)
	assert.False(t, cfg.Billing.LateSweepEnabled)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
}

func TestLoadProdPrefixes(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("PROD_DB_HOST", "db.internal")
	t.Setenv("PROD_JWT_SECRET", "prod-secret")
	t.Setenv("ACCESS_TOKEN_MINUTES", "abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "prod-secret", cfg.JWT.Secret)
	assert.Equal(t, 60*24, cfg.JWT.AccessTokenMins)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "app mode", env: map[string]string{"APP_MODE": "staging"}},
		{name: "driver", env: map[string]string{"DB_DRIVER": "mongo"}},
		{name: "pdf engine", env: map[string]string{"PDF_ENGINE": "puppeteer"}},
		{name: "timezone", env: map[string]string{"TIMEZONE": "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_MODE", "dev")
			t.Setenv("DB_DRIVER", "memory")
			t.Setenv("TIMEZONE", "UTC")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestHealthCheckWithoutSQLDatabase(t *testing.T) {
	assert.NoError(t, HealthCheck(context.Background(), nil))
	assert.NoError(t, CloseDatabase(nil))
}
