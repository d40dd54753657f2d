package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/repository"
)

var _ repository.WarrantyRepository = (*WarrantyRepo)(nil)

// WarrantyRepo lectura de garantías.
type WarrantyRepo struct {
	q Querier
}

// NewWarrantyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarrantyRepository(q Querier) *WarrantyRepo {
	return &WarrantyRepo{q: q}
}

const warrantyColumns = `
	SELECT id, status, COALESCE(product_delivered_id::text, ''), COALESCE(product_delivered_name, ''),
	       COALESCE(quantity_delivered, 0), created_at, updated_at
	FROM warranties`

// ListByRange garantías creadas en [startDate, endDate].
func (r *WarrantyRepo) ListByRange(ctx context.Context, companyID string, startDate, endDate time.Time) ([]entity.Warranty, error) {
	query := warrantyColumns + `
		WHERE company_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at DESC, id`
	return r.list(ctx, query, companyID, startDate, endDate)
}

// ListAll todas las garantías de la empresa.
func (r *WarrantyRepo) ListAll(ctx context.Context, companyID string) ([]entity.Warranty, error) {
	query := warrantyColumns + `
		WHERE company_id = $1
		ORDER BY created_at DESC, id`
	return r.list(ctx, query, companyID)
}

func (r *WarrantyRepo) list(ctx context.Context, query string, args ...any) ([]entity.Warranty, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list warranties: %w", err)
	}
	defer rows.Close()
	var list []entity.Warranty
	for rows.Next() {
		var w entity.Warranty
		if err := rows.Scan(
			&w.ID, &w.Status, &w.ProductDeliveredID, &w.ProductDeliveredName,
			&w.QuantityDelivered, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan warranty: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}
