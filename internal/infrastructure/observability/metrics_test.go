package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-dashboard-api/internal/infrastructure/observability"
)

func scrape(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_RecorderYMiddleware(t *testing.T) {
	m := observability.NewMetrics()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	app.Get("/api/ping/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	m.ObserveFetch("sales", 20*time.Millisecond, false)
	m.ObserveFetch("credits", time.Second, true)
	m.RefreshDropped()
	m.ChartInconsistent()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ping/42", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	out := scrape(t, app)
	assert.Contains(t, out, `pos_dashboard_fetch_failures_total{source="credits"} 1`)
	assert.NotContains(t, out, `pos_dashboard_fetch_failures_total{source="sales"}`)
	assert.Contains(t, out, "pos_dashboard_refresh_dropped_total 1")
	assert.Contains(t, out, "pos_dashboard_chart_inconsistent_total 1")
	assert.True(t, strings.Contains(out, `pos_http_requests_total{code="204",route="/api/ping/:id"} 1`),
		"la ruta se etiqueta por patrón, no por URL")
}
