package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/pos-dashboard-api/internal/application/dto"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/repository"
)

// Fuentes de datos del dashboard; se usan como etiqueta en logs y métricas.
const (
	SourceSales          = "sales"
	SourceWarranties     = "warranties"
	SourceAllWarranties  = "warranties_all"
	SourceCredits        = "credits"
	SourcePaymentRecords = "payment_records"
	SourceProducts       = "products"
	SourceClients        = "clients"
)

// Repositories puertos de lectura que consulta el refresco del dashboard.
type Repositories struct {
	Sales          repository.SaleRepository
	Warranties     repository.WarrantyRepository
	Credits        repository.CreditRepository
	PaymentRecords repository.PaymentRecordRepository
	Products       repository.ProductRepository
	Clients        repository.ClientRepository
}

// SnapshotStore guarda el último resultado calculado por clave (empresa + periodo).
// Get devuelve domain.ErrSnapshotNotFound si no hay nada guardado para la clave.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (*dto.DashboardMetricsResponse, error)
	Save(ctx context.Context, key string, snap *dto.DashboardMetricsResponse) error
}

// Recorder recibe los eventos del refresco para exponerlos como métricas.
type Recorder interface {
	ObserveFetch(source string, d time.Duration, failed bool)
	RefreshDropped()
	RefreshFailed()
	ChartInconsistent()
}

// ReportRenderer genera el PDF del dashboard.
type ReportRenderer interface {
	RenderDashboard(ctx context.Context, report ReportData) ([]byte, error)
}

// ReportData datos que recibe el renderer del PDF.
type ReportData struct {
	StoreName   string
	GeneratedAt time.Time
	PeriodLabel string
	Snapshot    *dto.DashboardMetricsResponse
}

type nopRecorder struct{}

func (nopRecorder) ObserveFetch(string, time.Duration, bool) {}
func (nopRecorder) RefreshDropped()                          {}
func (nopRecorder) RefreshFailed()                           {}
func (nopRecorder) ChartInconsistent()                       {}
