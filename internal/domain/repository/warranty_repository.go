package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
)

// WarrantyRepository define el puerto de lectura de garantías.
type WarrantyRepository interface {
	// ListByRange garantías creadas en el rango (UTC).
	ListByRange(ctx context.Context, companyID string, startDate, endDate time.Time) ([]entity.Warranty, error)
	// ListAll todas las garantías de la empresa, sin filtro de fecha ("días sin garantías").
	ListAll(ctx context.Context, companyID string) ([]entity.Warranty, error)
}
