package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusCancelled = "cancelled"
	SaleStatusDraft     = "draft"
	SaleStatusPending   = "pending"
)

// Métodos de pago de una venta.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
	PaymentMethodCredit   = "credit"
	PaymentMethodMixed    = "mixed"
	PaymentMethodWarranty = "warranty"
)

// Tipos de descuento por línea.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeAmount     = "amount"
)

// Sale representa la cabecera de una venta del punto de venta.
// Total es autoritativo para los ingresos; no se recalcula desde los ítems.
type Sale struct {
	ID            string
	ClientID      string
	ClientName    string
	Total         decimal.Decimal
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Discount      decimal.Decimal
	Status        string // completed, cancelled, draft, pending
	PaymentMethod string // cash, transfer, credit, mixed, warranty
	Items         []SaleItem
	Payments      []SalePayment // solo cuando PaymentMethod = mixed
	CreatedAt     time.Time
	InvoiceNumber *string
	CreditStatus  *string // refleja el estado del crédito asociado, si existe
}

// IsActive indica si la venta cuenta para ingresos y utilidad (ni anulada ni borrador).
func (s *Sale) IsActive() bool {
	return s.Status != SaleStatusCancelled && s.Status != SaleStatusDraft
}

// SaleItem representa una línea de la venta.
type SaleItem struct {
	ProductID    string
	ProductName  string
	Quantity     int
	UnitPrice    decimal.Decimal
	Discount     decimal.Decimal // porcentaje o valor según DiscountType
	DiscountType string          // percentage | amount
}

// SalePayment representa una parte de un pago mixto.
type SalePayment struct {
	PaymentType string // cash | transfer
	Amount      decimal.Decimal
}
