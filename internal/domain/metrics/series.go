package metrics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/period"
)

var (
	weekdaysES = [...]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}
	monthsES   = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}
)

// salesByDay agrupa por día local el dinero recibido, con la misma regla de la
// descomposición de ingresos. Así Σ amount coincide con TotalRevenue.
// Count suma uno por venta; los abonos aportan dinero pero no ventas.
func salesByDay(active []*entity.Sale, payments []*entity.PaymentRecord, loc *time.Location) map[string]DayBucket {
	days := make(map[string]DayBucket)
	add := func(t time.Time, amount decimal.Decimal, sales int) {
		local := t.In(loc)
		key := local.Format(period.DateLayout)
		b, ok := days[key]
		if !ok {
			b = DayBucket{Label: DayLabel(local)}
		}
		b.Amount = b.Amount.Add(amount)
		b.Count += sales
		days[key] = b
	}

	for _, s := range active {
		cash, transfer := saleReceipts(s)
		add(s.CreatedAt, cash.Add(transfer), 1)
	}
	for _, p := range payments {
		cash, transfer := paymentReceipts(p)
		add(p.PaymentDate, cash.Add(transfer), 0)
	}
	return days
}

// visibleSeries días que muestra la gráfica: uno solo para today/specific, los últimos
// 30 días hasta hoy para all. Los días sin dinero recibido no se muestran.
func visibleSeries(days map[string]DayBucket, filter period.Filter, rng period.Range, now time.Time) []DayPoint {
	points := make([]DayPoint, 0)
	if !rng.Valid {
		return points
	}

	loc := now.Location()
	var first, last time.Time
	switch filter {
	case period.FilterAll:
		last = period.StartOfDay(now, loc)
		first = last.AddDate(0, 0, -(trailingChartDays - 1))
	default:
		first = period.StartOfDay(rng.Start, loc)
		last = first
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(period.DateLayout)
		b, ok := days[key]
		if !ok || b.Amount.IsZero() {
			continue
		}
		points = append(points, DayPoint{Date: key, Label: b.Label, Amount: b.Amount, Count: b.Count})
	}
	return points
}

func sumBuckets(days map[string]DayBucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range days {
		total = total.Add(b.Amount)
	}
	return total
}

// DayLabel etiqueta corta en español de Colombia, ej: "jue, 16 oct".
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%s, %d %s", weekdaysES[t.Weekday()], t.Day(), monthsES[t.Month()-1])
}

// paymentMethodSlices torta de métodos de pago; los métodos en cero se omiten.
func paymentMethodSlices(cash, transfer, credit decimal.Decimal) []ChartSlice {
	all := []ChartSlice{
		{Key: entity.PaymentMethodCash, Name: "Efectivo", Value: cash},
		{Key: entity.PaymentMethodTransfer, Name: "Transferencia", Value: transfer},
		{Key: entity.PaymentMethodCredit, Name: "Crédito", Value: credit},
	}
	out := make([]ChartSlice, 0, len(all))
	for _, s := range all {
		if !s.Value.IsZero() {
			out = append(out, s)
		}
	}
	return out
}

// topProductsBars barras del top de productos con el nombre recortado a 15 caracteres.
func topProductsBars(top []ProductSales) []ChartBar {
	bars := make([]ChartBar, 0, len(top))
	for _, p := range top {
		bars = append(bars, ChartBar{
			Name:     truncateRunes(p.ProductName, chartNameMaxRunes),
			Quantity: p.Quantity,
			Revenue:  p.Revenue,
		})
	}
	return bars
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
