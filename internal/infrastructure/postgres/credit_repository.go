package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/repository"
)

var _ repository.CreditRepository = (*CreditRepo)(nil)

// CreditRepo lectura de créditos (cuentas por cobrar).
type CreditRepo struct {
	q Querier
}

// NewCreditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditRepository(q Querier) *CreditRepo {
	return &CreditRepo{q: q}
}

// ListByCompany devuelve todos los créditos de la empresa, sin filtro de fecha.
// total_amount y pending_amount pueden venir NULL en registros antiguos.
func (r *CreditRepo) ListByCompany(ctx context.Context, companyID string) ([]entity.Credit, error) {
	const query = `
		SELECT id, COALESCE(sale_id::text, ''), COALESCE(client_name, ''), status,
		       total_amount, pending_amount, due_date, created_at, updated_at
		FROM credits
		WHERE company_id = $1
		ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list credits: %w", err)
	}
	defer rows.Close()
	var list []entity.Credit
	for rows.Next() {
		var c entity.Credit
		if err := rows.Scan(
			&c.ID, &c.SaleID, &c.ClientName, &c.Status,
			&c.TotalAmount, &c.PendingAmount, &c.DueDate, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan credit: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
