package repository

import (
	"context"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
)

// ProductRepository define el puerto de lectura del catálogo con su stock (DIP).
type ProductRepository interface {
	// ListByCompany devuelve todos los productos, incluidos los descontinuados.
	ListByCompany(ctx context.Context, companyID string) ([]entity.Product, error)
}
