package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
)

// grossProfit suma la utilidad de las ventas activas y arma el top de ventas más rentables.
//
// Una venta a crédito solo reconoce utilidad cuando su crédito está completamente pagado.
func grossProfit(
	active []*entity.Sale,
	credits []entity.Credit,
	productByID map[string]*entity.Product,
) (decimal.Decimal, []ProfitableSale) {
	paidCredit := make(map[string]bool, len(credits))
	for _, c := range credits {
		if c.Status == entity.CreditStatusCompleted {
			paidCredit[c.SaleID] = true
		}
	}

	total := decimal.Zero
	ranked := make([]ProfitableSale, 0, len(active))
	for _, s := range active {
		if s.PaymentMethod == entity.PaymentMethodCredit && !paidCredit[s.ID] {
			continue
		}
		profit := saleProfit(s, productByID)
		total = total.Add(profit)
		if profit.IsPositive() {
			ps := ProfitableSale{
				SaleID:     s.ID,
				ClientName: s.ClientName,
				Total:      s.Total,
				Profit:     profit,
				CreatedAt:  s.CreatedAt,
			}
			if s.InvoiceNumber != nil {
				ps.InvoiceNumber = *s.InvoiceNumber
			}
			ranked = append(ranked, ps)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if !ranked[i].Profit.Equal(ranked[j].Profit) {
			return ranked[i].Profit.GreaterThan(ranked[j].Profit)
		}
		return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
	})
	if len(ranked) > topProfitableLimit {
		ranked = ranked[:topProfitableLimit]
	}
	return total, ranked
}

// saleProfit utilidad de una venta: Σ (precio real unitario - costo) × cantidad.
// Un producto que ya no existe en el catálogo se toma con costo 0.
func saleProfit(s *entity.Sale, productByID map[string]*entity.Product) decimal.Decimal {
	profit := decimal.Zero
	for _, item := range s.Items {
		if item.Quantity == 0 {
			continue
		}
		qty := decimal.NewFromInt(int64(item.Quantity))
		cost := decimal.Zero
		if p, ok := productByID[item.ProductID]; ok {
			cost = p.Cost
		}
		// (línea/qty - costo) × qty, expresado sin dividir para no perder precisión.
		profit = profit.Add(discountedLineTotal(item).Sub(cost.Mul(qty)))
	}
	return profit
}

// discountedLineTotal total de la línea después del descuento, nunca negativo.
func discountedLineTotal(item entity.SaleItem) decimal.Decimal {
	gross := decimal.NewFromInt(int64(item.Quantity)).Mul(item.UnitPrice)
	discount := item.Discount
	if item.DiscountType == entity.DiscountTypePercentage {
		discount = gross.Mul(item.Discount).Div(hundred)
	}
	line := gross.Sub(discount)
	if line.IsNegative() {
		return decimal.Zero
	}
	return line
}

// productRankings agrupa los ítems de las ventas activas por producto.
// Devuelve el top por cantidad vendida y los productos vendidos más recientemente.
func productRankings(active []*entity.Sale) ([]ProductSales, []RecentSale) {
	order := make([]string, 0)
	byID := make(map[string]*ProductSales)
	latest := make(map[string]RecentSale)

	for _, s := range active {
		for _, item := range s.Items {
			agg, ok := byID[item.ProductID]
			if !ok {
				agg = &ProductSales{ProductID: item.ProductID, ProductName: item.ProductName}
				byID[item.ProductID] = agg
				order = append(order, item.ProductID)
			}
			agg.Quantity += item.Quantity
			agg.Revenue = agg.Revenue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))

			if prev, seen := latest[item.ProductID]; !seen || s.CreatedAt.After(prev.SoldAt) {
				latest[item.ProductID] = RecentSale{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
					Quantity:    item.Quantity,
					SaleID:      s.ID,
					SoldAt:      s.CreatedAt,
				}
			}
		}
	}

	top := make([]ProductSales, 0, len(order))
	recent := make([]RecentSale, 0, len(order))
	for _, id := range order {
		top = append(top, *byID[id])
		recent = append(recent, latest[id])
	}

	sort.SliceStable(top, func(i, j int) bool { return top[i].Quantity > top[j].Quantity })
	if len(top) > topProductsLimit {
		top = top[:topProductsLimit]
	}

	sort.SliceStable(recent, func(i, j int) bool { return recent[i].SoldAt.After(recent[j].SoldAt) })
	if len(recent) > recentlySoldLimit {
		recent = recent[:recentlySoldLimit]
	}
	return top, recent
}
