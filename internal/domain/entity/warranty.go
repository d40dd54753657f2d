package entity

import "time"

// Estados de una garantía.
const (
	WarrantyStatusPending   = "pending"
	WarrantyStatusCompleted = "completed"
)

// Warranty representa un cambio por garantía: se entrega un producto de reemplazo.
type Warranty struct {
	ID                   string
	Status               string
	ProductDeliveredID   string
	ProductDeliveredName string
	QuantityDelivered    int
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}

// LastActivity devuelve UpdatedAt si existe; si no, CreatedAt.
func (w *Warranty) LastActivity() time.Time {
	if w.UpdatedAt != nil {
		return *w.UpdatedAt
	}
	return w.CreatedAt
}
