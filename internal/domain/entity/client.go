package entity

import "time"

// Client representa un cliente del punto de venta.
// IsInternal marca los pseudo-clientes que representan a la propia tienda.
type Client struct {
	ID         string
	Name       string
	IsInternal bool
	CreatedAt  time.Time
}
