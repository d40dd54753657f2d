package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un abono.
const (
	PaymentRecordStatusActive    = "active"
	PaymentRecordStatusCancelled = "cancelled"
)

// PaymentRecord representa un abono a un crédito (efectivo o transferencia).
type PaymentRecord struct {
	ID            string
	CreditID      string
	Amount        decimal.Decimal
	PaymentMethod string // cash | transfer
	PaymentDate   time.Time
	Status        string
}
