package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-dashboard-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "America/Bogota", cfg.App.Timezone)
	require.NotNil(t, cfg.App.Location)
	assert.Equal(t, 10*time.Second, cfg.Dashboard.FetchTimeoutShort)
	assert.Equal(t, 30*time.Second, cfg.Dashboard.FetchTimeoutLong)
	assert.Contains(t, cfg.Dashboard.InternalClientKeywords, "tienda")
	assert.Equal(t, "Punto de venta", cfg.Dashboard.StoreName)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("DASHBOARD_FETCH_TIMEOUT_SHORT", "5")
	t.Setenv("DASHBOARD_FETCH_TIMEOUT_LONG", "45s")
	t.Setenv("DASHBOARD_INTERNAL_CLIENT_KEYWORDS", " Tienda Centro , ,caja")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Dashboard.FetchTimeoutShort, "un entero se interpreta en segundos")
	assert.Equal(t, 45*time.Second, cfg.Dashboard.FetchTimeoutLong)
	assert.Equal(t, []string{"Tienda Centro", "caja"}, cfg.Dashboard.InternalClientKeywords)
}

func TestLoad_ZonaHorariaInvalida(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Marte/Olympus")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProductionExigeSecretJWT(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss/word", DBName: "pos", SSLMode: "disable"}

	assert.Equal(t, "postgres://pos:p%40ss%2Fword@db:5432/pos?sslmode=disable", c.ConnectionString())
}
