package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
)

// SaleRepository define el puerto de lectura de ventas para el dashboard.
type SaleRepository interface {
	// ListByRange devuelve las ventas creadas entre startDate y endDate (UTC, extremos incluidos),
	// con sus ítems y, para pagos mixtos, sus partes de pago. Incluye anuladas y borradores.
	ListByRange(ctx context.Context, companyID string, startDate, endDate time.Time) ([]entity.Sale, error)
}
