package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
)

// PaymentRecordRepository define el puerto de lectura de abonos a créditos.
type PaymentRecordRepository interface {
	// ListByRange abonos con fecha de pago en el rango (UTC), incluidos los anulados.
	ListByRange(ctx context.Context, companyID string, startDate, endDate time.Time) ([]entity.PaymentRecord, error)
}
