package metrics

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/period"
)

// Aggregate calcula todas las métricas del dashboard a partir de la entrada.
//
// Si el filtro no resuelve un rango válido (specific sin fecha, filtro desconocido) las
// colecciones de ventas, garantías, créditos y abonos se tratan como vacías: el dashboard
// queda en cero en lugar de mostrar datos de otro periodo.
func Aggregate(in Input) Metrics {
	loc := in.Now.Location()
	rng := period.Resolve(in.Filter, in.Year, in.SpecificDate, in.Now)
	if !rng.Valid {
		in.Sales = nil
		in.Warranties = nil
		in.AllWarranties = nil
		in.Credits = nil
		in.PaymentRecords = nil
	}

	m := Metrics{Filter: string(in.Filter)}
	if rng.Valid {
		start, end := rng.Start, rng.End
		m.PeriodStart, m.PeriodEnd = &start, &end
	}

	productByID := make(map[string]*entity.Product, len(in.Products))
	for i := range in.Products {
		productByID[in.Products[i].ID] = &in.Products[i]
	}

	// ── 1. Ventas activas / anuladas ─────────────────────────────────────────
	active := make([]*entity.Sale, 0, len(in.Sales))
	for i := range in.Sales {
		s := &in.Sales[i]
		if s.Status == entity.SaleStatusCancelled {
			m.CancelledSales++
			m.LostValue = m.LostValue.Add(s.Total)
		}
		if s.IsActive() {
			active = append(active, s)
		}
	}
	m.TotalSales = len(active)

	// ── 2. Abonos válidos ────────────────────────────────────────────────────
	validPayments := make([]*entity.PaymentRecord, 0, len(in.PaymentRecords))
	for i := range in.PaymentRecords {
		if in.PaymentRecords[i].Status != entity.PaymentRecordStatusCancelled {
			validPayments = append(validPayments, &in.PaymentRecords[i])
		}
	}

	// ── 3. Ingresos por método ───────────────────────────────────────────────
	for _, s := range active {
		cash, transfer := saleReceipts(s)
		m.CashRevenue = m.CashRevenue.Add(cash)
		m.TransferRevenue = m.TransferRevenue.Add(transfer)
		m.SalesRevenue = m.SalesRevenue.Add(s.Total)
	}
	for _, p := range validPayments {
		cash, transfer := paymentReceipts(p)
		m.CashRevenue = m.CashRevenue.Add(cash)
		m.TransferRevenue = m.TransferRevenue.Add(transfer)
	}
	m.TotalRevenue = m.CashRevenue.Add(m.TransferRevenue)
	for i := range in.Credits {
		if in.Credits[i].IsOpen() {
			m.CreditRevenue = m.CreditRevenue.Add(orZero(in.Credits[i].PendingAmount))
		}
	}
	m.KnownPaymentMethodsTotal = m.TotalRevenue.Add(m.CreditRevenue)

	// ── 4–5. Utilidad y productos ────────────────────────────────────────────
	m.GrossProfit, m.TopProfitableSales = grossProfit(active, in.Credits, productByID)
	m.TopProducts, m.RecentlySold = productRankings(active)

	// ── 6–8. Garantías, cartera, inventario ──────────────────────────────────
	applyWarranties(&m, in, len(active), productByID)
	applyCredits(&m, in.Credits, in.Now)
	applyStock(&m, in.Products)
	m.TotalClients = countClients(in.Clients, in.InternalClientKeywords)

	// ── 9. Serie diaria ──────────────────────────────────────────────────────
	m.SalesByDay = salesByDay(active, validPayments, loc)
	m.SalesChart = visibleSeries(m.SalesByDay, in.Filter, rng, in.Now)
	m.ChartDrift = sumBuckets(m.SalesByDay).Sub(m.TotalRevenue)
	m.ChartConsistent = m.ChartDrift.Abs().LessThanOrEqual(decimal.NewFromInt(chartDriftToleranceCOP))

	// ── 10. Series para gráficas ─────────────────────────────────────────────
	m.PaymentMethodData = paymentMethodSlices(m.CashRevenue, m.TransferRevenue, m.CreditRevenue)
	m.TopProductsChart = topProductsBars(m.TopProducts)

	return m
}

// saleReceipts devuelve lo que la venta aportó en efectivo y en transferencia.
// Las ventas a crédito o por garantía no mueven dinero en el momento de la venta.
func saleReceipts(s *entity.Sale) (cash, transfer decimal.Decimal) {
	switch s.PaymentMethod {
	case entity.PaymentMethodCash:
		return s.Total, decimal.Zero
	case entity.PaymentMethodTransfer:
		return decimal.Zero, s.Total
	case entity.PaymentMethodMixed:
		for _, p := range s.Payments {
			switch p.PaymentType {
			case entity.PaymentMethodCash:
				cash = cash.Add(p.Amount)
			case entity.PaymentMethodTransfer:
				transfer = transfer.Add(p.Amount)
			}
		}
		return cash, transfer
	default:
		return decimal.Zero, decimal.Zero
	}
}

func paymentReceipts(p *entity.PaymentRecord) (cash, transfer decimal.Decimal) {
	switch p.PaymentMethod {
	case entity.PaymentMethodCash:
		return p.Amount, decimal.Zero
	case entity.PaymentMethodTransfer:
		return decimal.Zero, p.Amount
	default:
		return decimal.Zero, decimal.Zero
	}
}

// countClients cuenta los clientes reales, excluyendo a la tienda registrada como cliente.
func countClients(clients []entity.Client, keywords []string) int {
	n := 0
	for _, c := range clients {
		if !isInternalClient(c, keywords) {
			n++
		}
	}
	return n
}

func isInternalClient(c entity.Client, keywords []string) bool {
	if c.IsInternal {
		return true
	}
	name := strings.ToLower(c.Name)
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" && strings.Contains(name, k) {
			return true
		}
	}
	return false
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func isExplicitZero(d *decimal.Decimal) bool {
	return d != nil && d.IsZero()
}
