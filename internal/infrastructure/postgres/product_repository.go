package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo lectura del catálogo de productos.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// ListByCompany lista todos los productos de la empresa (también descontinuados).
// El stock se guarda separado por ubicación: tienda y bodega.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string) ([]entity.Product, error) {
	const query = `
		SELECT id, name, COALESCE(reference, ''), price, cost, status,
		       COALESCE(stock_store, 0), COALESCE(stock_warehouse, 0),
		       created_at, updated_at
		FROM products
		WHERE company_id = $1
		ORDER BY name, id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Reference, &p.Price, &p.Cost, &p.Status,
			&p.Stock.Store, &p.Stock.Warehouse,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
