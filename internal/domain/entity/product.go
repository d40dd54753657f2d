package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un producto.
const (
	ProductStatusActive       = "active"
	ProductStatusInactive     = "inactive"
	ProductStatusDiscontinued = "discontinued"
)

// Product representa un producto del catálogo con stock en tienda y bodega.
type Product struct {
	ID        string
	Name      string
	Reference string // código interno / referencia
	Price     decimal.Decimal // precio de venta
	Cost      decimal.Decimal // costo unitario
	Status    string
	Stock     ProductStock
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductStock unidades disponibles por ubicación.
type ProductStock struct {
	Store     int
	Warehouse int
}

// Total devuelve las unidades en tienda más bodega.
func (s ProductStock) Total() int {
	return s.Store + s.Warehouse
}
