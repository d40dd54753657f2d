package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/pos-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/pos-dashboard-api/internal/application/dto"
	"github.com/jhoicas/pos-dashboard-api/internal/domain"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/metrics"
	apphttp "github.com/jhoicas/pos-dashboard-api/internal/interfaces/http"
)

// fakeDashboard registra la última consulta y responde lo configurado.
type fakeDashboard struct {
	last  appanalytics.MetricsQuery
	calls int
	resp  *dto.DashboardMetricsResponse
	err   error
}

var _ apphttp.DashboardService = (*fakeDashboard)(nil)

func (f *fakeDashboard) GetMetrics(_ context.Context, q appanalytics.MetricsQuery) (*dto.DashboardMetricsResponse, error) {
	f.calls++
	f.last = q
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &dto.DashboardMetricsResponse{Metrics: metrics.Metrics{Filter: q.Filter}, RefreshID: "r-1"}, nil
}

func (f *fakeDashboard) ExportPDF(ctx context.Context, q appanalytics.MetricsQuery) ([]byte, string, error) {
	if _, err := f.GetMetrics(ctx, q); err != nil {
		return nil, "", err
	}
	return []byte("%PDF-1.3 prueba"), "dashboard-2025-10-16.pdf", nil
}

func buildDashboardApp(fake *fakeDashboard, rateLimit int) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName:  "pos-dashboard-test",
		DashboardUC:  fake,
		JWTSecret:    testJWTSecret,
		RateLimitMax: rateLimit,
	})
	return app
}

func get(t *testing.T, app *fiber.App, target, role string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestDashboardMetrics_PasaParametrosNormalizados(t *testing.T) {
	fake := &fakeDashboard{}
	app := buildDashboardApp(fake, 0)

	resp := get(t, app, "/api/dashboard/metrics?filter=%20SPECIFIC%20&date=2025-10-16", "admin")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, appanalytics.MetricsQuery{
		CompanyID: testCompanyID, Role: "admin", Filter: "specific", Date: "2025-10-16",
	}, fake.last)
}

func TestDashboardMetrics_SinToken(t *testing.T) {
	fake := &fakeDashboard{}
	resp := get(t, buildDashboardApp(fake, 0), "/api/dashboard/metrics", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, fake.calls)
}

func TestDashboardMetrics_ParametrosInvalidos(t *testing.T) {
	cases := map[string]string{
		"filtro desconocido": "/api/dashboard/metrics?filter=week",
		"fecha mal formada":  "/api/dashboard/metrics?filter=specific&date=16-10-2025",
		"año fuera de rango": "/api/dashboard/metrics?filter=all&year=1800",
		"año no numérico":    "/api/dashboard/metrics?filter=all&year=dos",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			fake := &fakeDashboard{}
			resp := get(t, buildDashboardApp(fake, 0), target, "admin")
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "INVALID_PARAMS", decodeError(t, resp).Code)
			assert.Zero(t, fake.calls, "no se consulta nada con parámetros inválidos")
		})
	}
}

func TestDashboardMetrics_MapeoDeErrores(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidFilter, http.StatusBadRequest, "INVALID_PARAMS"},
		{domain.ErrRefreshInProgress, http.StatusConflict, "REFRESH_IN_PROGRESS"},
		{context.DeadlineExceeded, http.StatusServiceUnavailable, "TIMEOUT"},
		{errors.New("inesperado"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			resp := get(t, buildDashboardApp(&fakeDashboard{err: tc.err}, 0), "/api/dashboard/metrics", "vendedor")
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp).Code)
		})
	}
}

func TestDashboardMetrics_SnapshotDesactualizado(t *testing.T) {
	fake := &fakeDashboard{resp: &dto.DashboardMetricsResponse{Stale: true}}
	resp := get(t, buildDashboardApp(fake, 0), "/api/dashboard/metrics", "admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Warning"))
}

func TestDashboardReport_SoloAdmin(t *testing.T) {
	fake := &fakeDashboard{}
	app := buildDashboardApp(fake, 0)

	denied := get(t, app, "/api/dashboard/report.pdf", "vendedor")
	defer denied.Body.Close()
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)
	assert.Zero(t, fake.calls)

	ok := get(t, app, "/api/dashboard/report.pdf?filter=today", "admin")
	defer ok.Body.Close()
	require.Equal(t, http.StatusOK, ok.StatusCode)
	assert.Equal(t, "application/pdf", ok.Header.Get("Content-Type"))
	assert.Contains(t, ok.Header.Get("Content-Disposition"), "dashboard-2025-10-16.pdf")
	body, err := io.ReadAll(ok.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(body[:4]))
}

func TestDashboard_RateLimit(t *testing.T) {
	app := buildDashboardApp(&fakeDashboard{}, 2)

	for i := 0; i < 2; i++ {
		resp := get(t, app, "/api/dashboard/metrics", "admin")
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp := get(t, app, "/api/dashboard/metrics", "admin")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMITED", decodeError(t, resp).Code)
}

func TestHealth(t *testing.T) {
	resp := get(t, buildDashboardApp(&fakeDashboard{}, 0), "/health", "")
	defer resp.Body.Close()

	var body dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "pos-dashboard-test", body.Service)
}
