package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un crédito.
const (
	CreditStatusPending   = "pending"
	CreditStatusPartial   = "partial"
	CreditStatusCompleted = "completed"
	CreditStatusCancelled = "cancelled"
)

// Credit representa la cuenta por cobrar generada por una venta a crédito.
// Un crédito de una venta anulada se guarda con TotalAmount = PendingAmount = 0.
type Credit struct {
	ID            string
	SaleID        string
	ClientName    string
	Status        string
	TotalAmount   *decimal.Decimal
	PendingAmount *decimal.Decimal
	DueDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// IsOpen indica si el crédito sigue con saldo por cobrar (pending o partial).
func (c *Credit) IsOpen() bool {
	return c.Status == CreditStatusPending || c.Status == CreditStatusPartial
}

// LastActivity devuelve UpdatedAt si existe; si no, CreatedAt.
func (c *Credit) LastActivity() time.Time {
	if c.UpdatedAt != nil {
		return *c.UpdatedAt
	}
	return c.CreatedAt
}
