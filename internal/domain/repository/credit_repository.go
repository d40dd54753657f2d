package repository

import (
	"context"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
)

// CreditRepository define el puerto de lectura de la cartera.
// Los créditos no se filtran por fecha: la cartera pendiente es siempre la vigente.
type CreditRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]entity.Credit, error)
}
