// Package metrics calcula las métricas financieras del dashboard del punto de venta.
//
// Aggregate es una función pura: recibe las colecciones ya consultadas (ventas, garantías,
// créditos, abonos, productos, clientes) y el filtro efectivo, y devuelve un objeto plano
// listo para las tarjetas y gráficas. No hace I/O, no registra logs y no guarda estado;
// llamarla dos veces con la misma entrada produce exactamente la misma salida.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/period"
)

// Límites de los listados del dashboard.
const (
	topProductsLimit       = 5
	topProfitableLimit     = 5
	recentlySoldLimit      = 3
	recentCreditsLimit     = 4
	lowStockThreshold      = 5
	chartNameMaxRunes      = 15
	trailingChartDays      = 30
	chartDriftToleranceCOP = 1
)

var hundred = decimal.NewFromInt(100)

// Input entrada del agregador.
//
// Sales, Warranties y PaymentRecords ya vienen filtrados por el rango del filtro.
// AllWarranties y Credits no tienen filtro de fecha (se usan para "días sin garantías"
// y para la cartera pendiente).
type Input struct {
	Sales          []entity.Sale
	Warranties     []entity.Warranty
	AllWarranties  []entity.Warranty
	Credits        []entity.Credit
	PaymentRecords []entity.PaymentRecord
	Products       []entity.Product
	Clients        []entity.Client

	Filter       period.Filter
	Year         int
	SpecificDate *time.Time
	Now          time.Time // su Location es la zona horaria local

	// InternalClientKeywords palabras que identifican a la tienda registrada como cliente
	// en datos antiguos sin el flag IsInternal.
	InternalClientKeywords []string
}

// Metrics salida plana del agregador, consumida por las tarjetas, tablas y gráficas.
type Metrics struct {
	Filter      string     `json:"filter"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`

	// ── Ventas e ingresos ────────────────────────────────────────────────────
	TotalSales               int             `json:"total_sales"`   // ventas activas
	SalesRevenue             decimal.Decimal `json:"sales_revenue"` // Σ total de ventas activas, sin importar el método
	CashRevenue              decimal.Decimal `json:"cash_revenue"`
	TransferRevenue          decimal.Decimal `json:"transfer_revenue"`
	TotalRevenue             decimal.Decimal `json:"total_revenue"`  // efectivo + transferencia (dinero recibido)
	CreditRevenue            decimal.Decimal `json:"credit_revenue"` // saldo pendiente de créditos abiertos
	KnownPaymentMethodsTotal decimal.Decimal `json:"known_payment_methods_total"`
	CancelledSales           int             `json:"cancelled_sales"`
	LostValue                decimal.Decimal `json:"lost_value"`

	// ── Utilidad ─────────────────────────────────────────────────────────────
	GrossProfit        decimal.Decimal  `json:"gross_profit"`
	TopProfitableSales []ProfitableSale `json:"top_profitable_sales"`

	// ── Productos ────────────────────────────────────────────────────────────
	TopProducts  []ProductSales `json:"top_products"`
	RecentlySold []RecentSale   `json:"recently_sold"`

	// ── Garantías ────────────────────────────────────────────────────────────
	CompletedWarranties   int             `json:"completed_warranties"`
	PendingWarranties     int             `json:"pending_warranties"`
	WarrantyRate          string          `json:"warranty_rate"` // porcentaje con un decimal
	TotalWarrantyValue    decimal.Decimal `json:"total_warranty_value"`
	DaysSinceLastWarranty int             `json:"days_since_last_warranty"` // -1 si nunca hubo

	// ── Cartera (dinero afuera) ──────────────────────────────────────────────
	PendingCredits       int             `json:"pending_credits"`
	TotalDebt            decimal.Decimal `json:"total_debt"`
	RecentPendingCredits []CreditSummary `json:"recent_pending_credits"`
	OverdueCredits       []CreditSummary `json:"overdue_credits"`
	OverdueDebt          decimal.Decimal `json:"overdue_debt"`

	// ── Inventario ───────────────────────────────────────────────────────────
	TotalProducts        int             `json:"total_products"` // excluye descontinuados
	TotalStockUnits      int             `json:"total_stock_units"`
	LowStockProducts     int             `json:"low_stock_products"`
	TotalStockInvestment decimal.Decimal `json:"total_stock_investment"`
	PotentialInvestment  decimal.Decimal `json:"potential_investment"`
	EstimatedSalesValue  decimal.Decimal `json:"estimated_sales_value"`

	TotalClients int `json:"total_clients"`

	// ── Gráficas ─────────────────────────────────────────────────────────────
	SalesByDay        map[string]DayBucket `json:"sales_by_day"` // clave YYYY-MM-DD
	SalesChart        []DayPoint           `json:"sales_chart"`
	ChartConsistent   bool                 `json:"chart_consistent"`
	ChartDrift        decimal.Decimal      `json:"chart_drift"` // Σ SalesByDay - TotalRevenue
	PaymentMethodData []ChartSlice         `json:"payment_method_data"`
	TopProductsChart  []ChartBar           `json:"top_products_chart"`
}

// ProfitableSale venta con su utilidad calculada.
type ProfitableSale struct {
	SaleID        string          `json:"sale_id"`
	ClientName    string          `json:"client_name"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Profit        decimal.Decimal `json:"profit"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductSales acumulado de un producto en las ventas activas.
type ProductSales struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"` // precio unitario × cantidad
}

// RecentSale última venta de un producto.
type RecentSale struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	SaleID      string    `json:"sale_id"`
	SoldAt      time.Time `json:"sold_at"`
}

// CreditSummary crédito abierto para los listados de cartera.
type CreditSummary struct {
	CreditID     string          `json:"credit_id"`
	SaleID       string          `json:"sale_id"`
	ClientName   string          `json:"client_name"`
	Status       string          `json:"status"`
	Balance      decimal.Decimal `json:"balance"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	LastActivity time.Time       `json:"last_activity"`
}

// DayBucket dinero recibido y número de ventas de un día.
type DayBucket struct {
	Label  string          `json:"label"` // ej: "jue, 16 oct"
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// DayPoint punto de la gráfica de ventas por día.
type DayPoint struct {
	Date   string          `json:"date"` // YYYY-MM-DD
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// ChartSlice porción de la torta de métodos de pago.
type ChartSlice struct {
	Key   string          `json:"key"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// ChartBar barra de la gráfica de productos más vendidos.
type ChartBar struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}
