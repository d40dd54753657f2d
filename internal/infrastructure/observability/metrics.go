// Package observability expone las métricas Prometheus del servicio.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/pos-dashboard-api/internal/application/analytics"
)

var _ analytics.Recorder = (*Metrics)(nil)

// Metrics registry propio (sin el DefaultRegisterer) con las métricas HTTP y del dashboard.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	fetchDuration     *prometheus.HistogramVec
	fetchFailures     *prometheus.CounterVec
	refreshDropped    prometheus.Counter
	refreshFailed     prometheus.Counter
	chartInconsistent prometheus.Counter
}

// NewMetrics inicializa el registry y las métricas.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "Peticiones HTTP por ruta y código de respuesta.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP por ruta.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pos_dashboard_fetch_duration_seconds",
			Help:    "Duración de cada consulta del refresco del dashboard.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_dashboard_fetch_failures_total",
			Help: "Consultas del dashboard que fallaron o vencieron y se tomaron como vacías.",
		}, []string{"source"}),
		refreshDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_dashboard_refresh_dropped_total",
			Help: "Refrescos descartados porque ya había uno en curso para la misma clave.",
		}),
		refreshFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_dashboard_refresh_failed_total",
			Help: "Refrescos que fallaron y devolvieron el último snapshot.",
		}),
		chartInconsistent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_dashboard_chart_inconsistent_total",
			Help: "Refrescos en los que la serie diaria no cuadró con los ingresos.",
		}),
	}
	registry.MustRegister(
		m.requestsTotal, m.requestDuration,
		m.fetchDuration, m.fetchFailures,
		m.refreshDropped, m.refreshFailed, m.chartInconsistent,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler http.Handler para GET /metrics.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// Registerer expone el registry para métricas adicionales.
func (m *Metrics) Registerer() prometheus.Registerer {
	return m.registry
}

// Middleware registra conteo y duración de cada petición, por patrón de ruta.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

// ── analytics.Recorder ───────────────────────────────────────────────────────

func (m *Metrics) ObserveFetch(source string, d time.Duration, failed bool) {
	m.fetchDuration.WithLabelValues(source).Observe(d.Seconds())
	if failed {
		m.fetchFailures.WithLabelValues(source).Inc()
	}
}

func (m *Metrics) RefreshDropped()    { m.refreshDropped.Inc() }
func (m *Metrics) RefreshFailed()     { m.refreshFailed.Inc() }
func (m *Metrics) ChartInconsistent() { m.chartInconsistent.Inc() }
