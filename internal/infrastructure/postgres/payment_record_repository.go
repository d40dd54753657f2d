package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/repository"
)

var _ repository.PaymentRecordRepository = (*PaymentRecordRepo)(nil)

// PaymentRecordRepo lectura de abonos a créditos.
type PaymentRecordRepo struct {
	q Querier
}

// NewPaymentRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRecordRepository(q Querier) *PaymentRecordRepo {
	return &PaymentRecordRepo{q: q}
}

// ListByRange abonos con payment_date en [startDate, endDate]. La empresa se resuelve por el crédito.
func (r *PaymentRecordRepo) ListByRange(ctx context.Context, companyID string, startDate, endDate time.Time) ([]entity.PaymentRecord, error) {
	const query = `
		SELECT p.id, p.credit_id, p.amount, p.payment_method, p.payment_date, p.status
		FROM payment_records p
		JOIN credits c ON c.id = p.credit_id
		WHERE c.company_id = $1 AND p.payment_date >= $2 AND p.payment_date <= $3
		ORDER BY p.payment_date, p.id`
	rows, err := r.q.Query(ctx, query, companyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("list payment records: %w", err)
	}
	defer rows.Close()
	var list []entity.PaymentRecord
	for rows.Next() {
		var p entity.PaymentRecord
		if err := rows.Scan(&p.ID, &p.CreditID, &p.Amount, &p.PaymentMethod, &p.PaymentDate, &p.Status); err != nil {
			return nil, fmt.Errorf("scan payment record: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
