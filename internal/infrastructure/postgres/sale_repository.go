package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo lectura de ventas con sus líneas y pagos mixtos.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// ListByRange devuelve las ventas creadas en [startDate, endDate], de la más reciente a la más antigua.
// Incluye anuladas y borradores; el filtrado por estado lo hace el agregador.
func (r *SaleRepo) ListByRange(ctx context.Context, companyID string, startDate, endDate time.Time) ([]entity.Sale, error) {
	const query = `
		SELECT s.id, COALESCE(s.client_id::text, ''), COALESCE(s.client_name, ''),
		       s.total, s.subtotal, s.tax, s.discount, s.status, s.payment_method,
		       s.invoice_number, s.created_at, c.status
		FROM sales s
		LEFT JOIN credits c ON c.sale_id = s.id
		WHERE s.company_id = $1 AND s.created_at >= $2 AND s.created_at <= $3
		ORDER BY s.created_at DESC, s.id`
	rows, err := r.q.Query(ctx, query, companyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []entity.Sale
	index := make(map[string]int)
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.ClientID, &s.ClientName,
			&s.Total, &s.Subtotal, &s.Tax, &s.Discount, &s.Status, &s.PaymentMethod,
			&s.InvoiceNumber, &s.CreatedAt, &s.CreditStatus,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		index[s.ID] = len(list)
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	if err := r.attachItems(ctx, ids, list, index); err != nil {
		return nil, err
	}
	if err := r.attachPayments(ctx, ids, list, index); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SaleRepo) attachItems(ctx context.Context, ids []string, list []entity.Sale, index map[string]int) error {
	const query = `
		SELECT sale_id, COALESCE(product_id::text, ''), COALESCE(product_name, ''),
		       quantity, unit_price, COALESCE(discount, 0), COALESCE(discount_type, '')
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var saleID string
		var it entity.SaleItem
		if err := rows.Scan(&saleID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Discount, &it.DiscountType); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if i, ok := index[saleID]; ok {
			list[i].Items = append(list[i].Items, it)
		}
	}
	return rows.Err()
}

func (r *SaleRepo) attachPayments(ctx context.Context, ids []string, list []entity.Sale, index map[string]int) error {
	const query = `
		SELECT sale_id, payment_type, amount
		FROM sale_payments
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list sale payments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var saleID string
		var p entity.SalePayment
		if err := rows.Scan(&saleID, &p.PaymentType, &p.Amount); err != nil {
			return fmt.Errorf("scan sale payment: %w", err)
		}
		if i, ok := index[saleID]; ok {
			list[i].Payments = append(list[i].Payments, p)
		}
	}
	return rows.Err()
}
