package metrics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/period"
)

// applyWarranties conteos de garantías del periodo, tasa sobre ventas activas y valor entregado.
// La tasa divide garantías completadas entre ventas activas (no entre ventas con garantía).
func applyWarranties(m *Metrics, in Input, activeSales int, productByID map[string]*entity.Product) {
	for _, w := range in.Warranties {
		switch w.Status {
		case entity.WarrantyStatusCompleted:
			m.CompletedWarranties++
			if p, ok := productByID[w.ProductDeliveredID]; ok {
				m.TotalWarrantyValue = m.TotalWarrantyValue.Add(p.Price)
			}
		case entity.WarrantyStatusPending:
			m.PendingWarranties++
		}
	}

	rate := decimal.Zero
	if activeSales > 0 {
		rate = decimal.NewFromInt(int64(m.CompletedWarranties)).
			Div(decimal.NewFromInt(int64(activeSales))).
			Mul(hundred)
	}
	m.WarrantyRate = rate.StringFixed(1)

	// Días sin garantías: sobre todas las garantías, sin filtro de fecha.
	m.DaysSinceLastWarranty = -1
	var last time.Time
	for _, w := range in.AllWarranties {
		if w.Status != entity.WarrantyStatusCompleted {
			continue
		}
		if t := w.LastActivity(); t.After(last) {
			last = t
		}
	}
	if !last.IsZero() {
		m.DaysSinceLastWarranty = daysBetween(last, in.Now, in.Now.Location())
	}
}

// applyCredits cartera pendiente ("dinero afuera"), recientes y vencidos.
// Los créditos con total y saldo en cero corresponden a ventas anuladas y no cuentan.
func applyCredits(m *Metrics, credits []entity.Credit, now time.Time) {
	todayStart := period.StartOfDay(now, now.Location())

	pending := make([]CreditSummary, 0)
	overdue := make([]CreditSummary, 0)
	for _, c := range credits {
		if !c.IsOpen() || (isExplicitZero(c.TotalAmount) && isExplicitZero(c.PendingAmount)) {
			continue
		}
		balance := creditBalance(c)
		summary := CreditSummary{
			CreditID:     c.ID,
			SaleID:       c.SaleID,
			ClientName:   c.ClientName,
			Status:       c.Status,
			Balance:      balance,
			DueDate:      c.DueDate,
			LastActivity: c.LastActivity(),
		}
		pending = append(pending, summary)
		m.TotalDebt = m.TotalDebt.Add(balance)

		if c.DueDate != nil && c.DueDate.Before(todayStart) {
			overdue = append(overdue, summary)
			m.OverdueDebt = m.OverdueDebt.Add(balance)
		}
	}
	m.PendingCredits = len(pending)

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].LastActivity.After(pending[j].LastActivity)
	})
	if len(pending) > recentCreditsLimit {
		pending = pending[:recentCreditsLimit]
	}
	m.RecentPendingCredits = pending

	// Vencidos: el más antiguo primero.
	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].DueDate.Before(*overdue[j].DueDate)
	})
	m.OverdueCredits = overdue
}

// creditBalance saldo pendiente; si no está registrado se usa el total del crédito.
func creditBalance(c entity.Credit) decimal.Decimal {
	if c.PendingAmount != nil {
		return *c.PendingAmount
	}
	return orZero(c.TotalAmount)
}

// applyStock indicadores de inventario sobre los productos no descontinuados.
func applyStock(m *Metrics, products []entity.Product) {
	for _, p := range products {
		if p.Status == entity.ProductStatusDiscontinued {
			continue
		}
		m.TotalProducts++
		units := p.Stock.Total()
		m.TotalStockUnits += units
		if units > 0 && units <= lowStockThreshold {
			m.LowStockProducts++
		}
		qty := decimal.NewFromInt(int64(units))
		m.TotalStockInvestment = m.TotalStockInvestment.Add(p.Cost.Mul(qty))
		m.PotentialInvestment = m.PotentialInvestment.Add(p.Cost)
		m.EstimatedSalesValue = m.EstimatedSalesValue.Add(p.Price.Mul(qty))
	}
}

// daysBetween días calendario entre from y to en la zona loc.
func daysBetween(from, to time.Time, loc *time.Location) int {
	a := from.In(loc)
	b := to.In(loc)
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
