// Package analytics contiene el caso de uso del dashboard del punto de venta:
// consulta las fuentes en paralelo, calcula las métricas y guarda el último resultado.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pos-dashboard-api/internal/application/dto"
	"github.com/jhoicas/pos-dashboard-api/internal/domain"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/metrics"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/period"
	"github.com/jhoicas/pos-dashboard-api/pkg/logger"
)

// DashboardConfig parámetros del refresco.
type DashboardConfig struct {
	FetchTimeoutShort      time.Duration // today / specific
	FetchTimeoutLong       time.Duration // all
	InternalClientKeywords []string
	Location               *time.Location // zona horaria de la tienda; nil = time.Local
	StoreName              string         // encabezado del PDF
	Clock                  func() time.Time
}

// MetricsQuery petición de métricas ya autenticada.
type MetricsQuery struct {
	CompanyID string
	Role      string
	Filter    string
	Date      string // YYYY-MM-DD, solo para specific
	Year      int    // solo para all; 0 = año actual
}

// DashboardUseCase calcula las métricas del dashboard.
//
// Fuentes: ventas, garantías, créditos, abonos, productos y clientes, consultadas en paralelo
// con timeout propio. Una fuente que falla se toma como colección vacía y el resto del
// dashboard se calcula igual.
type DashboardUseCase struct {
	repos    Repositories
	store    SnapshotStore
	rec      Recorder
	renderer ReportRenderer
	cfg      DashboardConfig
	log      *logger.Logger
	inflight *inflightGuard
}

// NewDashboardUseCase construye el caso de uso. rec y renderer pueden ser nil.
func NewDashboardUseCase(
	repos Repositories,
	store SnapshotStore,
	rec Recorder,
	renderer ReportRenderer,
	cfg DashboardConfig,
	log *logger.Logger,
) *DashboardUseCase {
	if rec == nil {
		rec = nopRecorder{}
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{
		repos:    repos,
		store:    store,
		rec:      rec,
		renderer: renderer,
		cfg:      cfg,
		log:      log.Component("dashboard"),
		inflight: newInflightGuard(),
	}
}

// refreshPlan resultado de interpretar la petición: filtro efectivo, rango y clave del snapshot.
type refreshPlan struct {
	companyID string
	filter    period.Filter
	year      int
	specific  *time.Time
	now       time.Time
	rng       period.Range
	timeout   time.Duration
	key       string
}

// GetMetrics devuelve las métricas del periodo pedido.
//
// Si ya hay un refresco en curso para la misma empresa y periodo, la petición no espera:
// recibe el último snapshot marcado como Stale, o domain.ErrRefreshInProgress si no existe.
// Si el refresco falla se devuelve el último snapshot (Stale) en lugar del error.
func (uc *DashboardUseCase) GetMetrics(ctx context.Context, q MetricsQuery) (*dto.DashboardMetricsResponse, error) {
	plan, err := uc.plan(q)
	if err != nil {
		return nil, err
	}

	if !uc.inflight.acquire(plan.key) {
		uc.rec.RefreshDropped()
		uc.log.Debug().Str("key", plan.key).Msg("refresco en curso, se descarta la petición")
		return uc.lastSnapshot(ctx, plan.key, domain.ErrRefreshInProgress)
	}
	defer uc.inflight.release(plan.key)

	resp, err := uc.refresh(ctx, plan)
	if err != nil {
		uc.rec.RefreshFailed()
		uc.log.Error().Err(err).Str("key", plan.key).Msg("refresco fallido, se conserva el último resultado")
		return uc.lastSnapshot(ctx, plan.key, err)
	}

	if err := uc.store.Save(ctx, plan.key, resp); err != nil {
		uc.log.Warn().Err(err).Str("key", plan.key).Msg("no se pudo guardar el snapshot")
	}
	return resp, nil
}

// ExportPDF calcula las métricas y las entrega como reporte PDF.
func (uc *DashboardUseCase) ExportPDF(ctx context.Context, q MetricsQuery) (pdf []byte, filename string, err error) {
	if uc.renderer == nil {
		return nil, "", fmt.Errorf("dashboard.ExportPDF: renderer no configurado")
	}
	snap, err := uc.GetMetrics(ctx, q)
	if err != nil {
		return nil, "", err
	}

	label, suffix := periodLabel(snap.Metrics)
	pdf, err = uc.renderer.RenderDashboard(ctx, ReportData{
		StoreName:   uc.cfg.StoreName,
		GeneratedAt: uc.cfg.Clock().In(uc.cfg.Location),
		PeriodLabel: label,
		Snapshot:    snap,
	})
	if err != nil {
		return nil, "", fmt.Errorf("dashboard.ExportPDF: %w", err)
	}
	return pdf, "dashboard-" + suffix + ".pdf", nil
}

func (uc *DashboardUseCase) plan(q MetricsQuery) (refreshPlan, error) {
	if q.CompanyID == "" {
		return refreshPlan{}, domain.ErrUnauthorized
	}
	now := uc.cfg.Clock().In(uc.cfg.Location)

	requested := period.ParseFilter(q.Filter)
	if !requested.IsKnown() {
		return refreshPlan{}, fmt.Errorf("%w: %q", domain.ErrInvalidFilter, q.Filter)
	}
	filter := period.EffectiveFilter(q.Role, requested)

	year := now.Year()
	if filter == period.FilterAll && q.Year > 0 {
		year = q.Year
	}

	var specific *time.Time
	if filter == period.FilterSpecific && strings.TrimSpace(q.Date) != "" {
		d, err := time.ParseInLocation(period.DateLayout, strings.TrimSpace(q.Date), now.Location())
		if err != nil {
			return refreshPlan{}, fmt.Errorf("%w: date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		specific = &d
	}

	timeout := uc.cfg.FetchTimeoutShort
	if filter == period.FilterAll {
		timeout = uc.cfg.FetchTimeoutLong
	}

	return refreshPlan{
		companyID: q.CompanyID,
		filter:    filter,
		year:      year,
		specific:  specific,
		now:       now,
		rng:       period.Resolve(filter, year, specific, now),
		timeout:   timeout,
		key:       snapshotKey(q.CompanyID, filter, year, specific, now),
	}, nil
}

// refresh consulta las fuentes y agrega. Un panic en cualquier punto se convierte en error
// para que el caller conserve el snapshot anterior.
func (uc *DashboardUseCase) refresh(ctx context.Context, p refreshPlan) (resp *dto.DashboardMetricsResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("dashboard.refresh: panic: %v", r)
		}
	}()

	refreshID := uuid.NewString()
	in := metrics.Input{
		Filter:                 p.filter,
		Year:                   p.year,
		SpecificDate:           p.specific,
		Now:                    p.now,
		InternalClientKeywords: uc.cfg.InternalClientKeywords,
	}
	failed := uc.fetchAll(ctx, p, &in)

	m := metrics.Aggregate(in)
	if !m.ChartConsistent {
		uc.rec.ChartInconsistent()
		uc.log.Warn().
			Str("refresh_id", refreshID).
			Str("key", p.key).
			Str("chart_drift", m.ChartDrift.String()).
			Str("total_revenue", m.TotalRevenue.String()).
			Msg("la serie diaria no cuadra con los ingresos")
	}
	if len(failed) > 0 {
		uc.log.Debug().Str("refresh_id", refreshID).Strs("failed_sources", failed).Msg("refresco parcial")
	}

	return &dto.DashboardMetricsResponse{
		Metrics:       m,
		RefreshID:     refreshID,
		RefreshedAt:   p.now,
		FailedSources: failed,
	}, nil
}

// fetchAll lanza todas las consultas en paralelo y espera a que terminen (o venzan).
// Con un rango inválido (specific sin fecha) solo se consultan productos y clientes:
// el resto queda vacío. Devuelve las fuentes que fallaron, ordenadas.
func (uc *DashboardUseCase) fetchAll(ctx context.Context, p refreshPlan, in *metrics.Input) []string {
	g, gctx := errgroup.WithContext(ctx)
	f := &fanout{g: g, timeout: p.timeout, rec: uc.rec, log: uc.log}
	companyID := p.companyID

	if p.rng.Valid {
		start, end := p.rng.UTC()
		fetchInto(gctx, f, SourceSales, &in.Sales, func(ctx context.Context) ([]entity.Sale, error) {
			return uc.repos.Sales.ListByRange(ctx, companyID, start, end)
		})
		fetchInto(gctx, f, SourceWarranties, &in.Warranties, func(ctx context.Context) ([]entity.Warranty, error) {
			return uc.repos.Warranties.ListByRange(ctx, companyID, start, end)
		})
		fetchInto(gctx, f, SourceAllWarranties, &in.AllWarranties, func(ctx context.Context) ([]entity.Warranty, error) {
			return uc.repos.Warranties.ListAll(ctx, companyID)
		})
		fetchInto(gctx, f, SourceCredits, &in.Credits, func(ctx context.Context) ([]entity.Credit, error) {
			return uc.repos.Credits.ListByCompany(ctx, companyID)
		})
		fetchInto(gctx, f, SourcePaymentRecords, &in.PaymentRecords, func(ctx context.Context) ([]entity.PaymentRecord, error) {
			return uc.repos.PaymentRecords.ListByRange(ctx, companyID, start, end)
		})
	}
	fetchInto(gctx, f, SourceProducts, &in.Products, func(ctx context.Context) ([]entity.Product, error) {
		return uc.repos.Products.ListByCompany(ctx, companyID)
	})
	fetchInto(gctx, f, SourceClients, &in.Clients, func(ctx context.Context) ([]entity.Client, error) {
		return uc.repos.Clients.ListByCompany(ctx, companyID)
	})

	_ = g.Wait() // las tareas nunca devuelven error: los fallos quedan en f.failed
	sort.Strings(f.failed)
	return f.failed
}

// lastSnapshot devuelve una copia del último snapshot marcada como Stale; si no hay, cause.
func (uc *DashboardUseCase) lastSnapshot(ctx context.Context, key string, cause error) (*dto.DashboardMetricsResponse, error) {
	snap, err := uc.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo leer el snapshot")
		}
		return nil, cause
	}
	stale := *snap
	stale.Stale = true
	return &stale, nil
}

// ── Fan-out ──────────────────────────────────────────────────────────────────

type fanout struct {
	g       *errgroup.Group
	timeout time.Duration
	rec     Recorder
	log     *logger.Logger

	mu     sync.Mutex
	failed []string
}

func (f *fanout) fail(source string, err error, elapsed time.Duration) {
	f.rec.ObserveFetch(source, elapsed, true)
	f.log.Debug().Err(err).Str("source", source).Dur("elapsed", elapsed).Msg("fuente no disponible, se usa colección vacía")
	f.mu.Lock()
	f.failed = append(f.failed, source)
	f.mu.Unlock()
}

// fetchInto ejecuta fetch con el timeout de la fuente y, si termina bien, deja el
// resultado en dst. Un error, un timeout o un panic dejan dst vacío.
func fetchInto[T any](ctx context.Context, f *fanout, source string, dst *[]T, fetch func(context.Context) ([]T, error)) {
	f.g.Go(func() error {
		cctx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()
		start := time.Now()

		type result struct {
			items []T
			err   error
		}
		done := make(chan result, 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					done <- result{err: fmt.Errorf("panic: %v", r)}
				}
			}()
			items, err := fetch(cctx)
			done <- result{items: items, err: err}
		}()

		select {
		case r := <-done:
			if r.err != nil {
				f.fail(source, r.err, time.Since(start))
				return nil
			}
			*dst = r.items
			f.rec.ObserveFetch(source, time.Since(start), false)
		case <-cctx.Done():
			f.fail(source, cctx.Err(), time.Since(start))
		}
		return nil
	})
}

// ── Claves y etiquetas ───────────────────────────────────────────────────────

// snapshotKey identifica el periodo efectivo. today incluye la fecha para no servir el
// snapshot de ayer después de medianoche.
func snapshotKey(companyID string, filter period.Filter, year int, specific *time.Time, now time.Time) string {
	var scope string
	switch filter {
	case period.FilterAll:
		scope = fmt.Sprintf("%d", year)
	case period.FilterSpecific:
		scope = "sin-fecha"
		if specific != nil {
			scope = specific.Format(period.DateLayout)
		}
	default:
		scope = now.Format(period.DateLayout)
	}
	return fmt.Sprintf("dashboard:%s:%s:%s", companyID, filter, scope)
}

// periodLabel etiqueta legible del periodo y sufijo para el nombre del archivo.
func periodLabel(m metrics.Metrics) (label, suffix string) {
	if m.PeriodStart == nil {
		return "Sin fecha seleccionada", "sin-fecha"
	}
	start := *m.PeriodStart
	if period.Filter(m.Filter) == period.FilterAll {
		return fmt.Sprintf("Año %d", start.Year()), fmt.Sprintf("%d", start.Year())
	}
	return dayLongLabel(start), start.Format(period.DateLayout)
}

// dayLongLabel devuelve una etiqueta legible del día, ej: "16 de Octubre de 2025".
func dayLongLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}
