package repository

import (
	"context"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
)

// ClientRepository define el puerto de lectura de clientes.
type ClientRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]entity.Client, error)
}
