package dto

import (
	"time"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/metrics"
)

// DashboardMetricsRequest parámetros de GET /api/dashboard/metrics.
// Para roles sin historial el filtro se fuerza a today en el caso de uso.
// Filter se compara en minúsculas; el handler lo normaliza antes de validar.
type DashboardMetricsRequest struct {
	Filter string `query:"filter" validate:"omitempty,oneof=today specific all"`
	Date   string `query:"date" validate:"omitempty,datetime=2006-01-02"` // YYYY-MM-DD; specific sin fecha devuelve todo en cero
	Year   int    `query:"year" validate:"omitempty,min=2000,max=2100"`   // default: año actual
}

// DashboardMetricsResponse respuesta de GET /api/dashboard/metrics.
// Las métricas van al nivel raíz; los campos propios describen el refresco que las produjo.
type DashboardMetricsResponse struct {
	metrics.Metrics

	RefreshID     string    `json:"refresh_id"`
	RefreshedAt   time.Time `json:"refreshed_at"`
	Stale         bool      `json:"stale"`                    // true si se devolvió el último resultado guardado
	FailedSources []string  `json:"failed_sources,omitempty"` // fuentes que fallaron y se tomaron como vacías
}
