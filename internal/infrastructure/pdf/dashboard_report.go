// Package pdf genera el reporte PDF del dashboard del punto de venta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + título     │  Periodo + fecha de corte     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: ventas / ingresos / utilidad / garantías / cartera    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Productos más vendidos                               │
//	│  TABLA: Ventas más rentables                                 │
//	│  TABLA: Créditos vencidos                                    │
//	│  TABLA: Ventas por día                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: id del refresco + aviso de datos desactualizados    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/pos-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/metrics"
	"github.com/jhoicas/pos-dashboard-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorHeader  = &props.Color{Red: 225, Green: 234, Blue: 242}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ analytics.ReportRenderer = (*DashboardReportRenderer)(nil)

// DashboardReportRenderer implementa analytics.ReportRenderer usando Maroto v2.
type DashboardReportRenderer struct{}

// NewDashboardReportRenderer construye el renderer.
func NewDashboardReportRenderer() *DashboardReportRenderer { return &DashboardReportRenderer{} }

// RenderDashboard genera el PDF y devuelve sus bytes.
func (g *DashboardReportRenderer) RenderDashboard(ctx context.Context, report analytics.ReportData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if report.Snapshot == nil {
		return nil, fmt.Errorf("pdf: reporte sin métricas")
	}
	snap := report.Snapshot

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Dashboard de ventas", true).
		WithAuthor(report.StoreName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, r := range kpiRows(&snap.Metrics) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("PRODUCTOS MÁS VENDIDOS"))
	m.AddRows(tableHeaderRow([]column{{"Producto", 7, align.Left}, {"Unidades", 2, align.Center}, {"Ingresos", 3, align.Right}}))
	m.AddRows(topProductRows(snap.TopProducts)...)

	m.AddRows(sectionTitle("VENTAS MÁS RENTABLES"))
	m.AddRows(tableHeaderRow([]column{{"Cliente", 5, align.Left}, {"Fecha", 2, align.Center}, {"Total", 2, align.Right}, {"Utilidad", 3, align.Right}}))
	m.AddRows(profitableRows(snap.TopProfitableSales)...)

	m.AddRows(sectionTitle("CRÉDITOS VENCIDOS"))
	m.AddRows(tableHeaderRow([]column{{"Cliente", 5, align.Left}, {"Vence", 2, align.Center}, {"Estado", 2, align.Center}, {"Saldo", 3, align.Right}}))
	m.AddRows(overdueRows(snap.OverdueCredits)...)

	m.AddRows(sectionTitle("VENTAS POR DÍA"))
	m.AddRows(tableHeaderRow([]column{{"Día", 6, align.Left}, {"Ventas", 2, align.Center}, {"Recibido", 4, align.Right}}))
	m.AddRows(seriesRows(snap.SalesChart)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(report)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda + título (izq) y periodo + fecha de corte (der).
func headerRow(report analytics.ReportData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(report.StoreName, "Punto de venta"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Dashboard de ventas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERIODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(report.PeriodLabel, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

type kpi struct {
	label string
	value string
	alert bool
}

// kpiRows: tarjetas del dashboard en filas de tres.
func kpiRows(mt *metrics.Metrics) []core.Row {
	cards := []kpi{
		{"Ventas", strconv.Itoa(mt.TotalSales), false},
		{"Ingresos recibidos", money.COP(mt.TotalRevenue), false},
		{"Utilidad bruta", money.COP(mt.GrossProfit), mt.GrossProfit.IsNegative()},
		{"Efectivo", money.COP(mt.CashRevenue), false},
		{"Transferencia", money.COP(mt.TransferRevenue), false},
		{"Crédito pendiente", money.COP(mt.CreditRevenue), false},
		{"Ventas anuladas", fmt.Sprintf("%d (%s)", mt.CancelledSales, money.COP(mt.LostValue)), mt.CancelledSales > 0},
		{"Tasa de garantías", money.Percent(mt.WarrantyRate), false},
		{"Días sin garantías", daysLabel(mt.DaysSinceLastWarranty), false},
		{"Cartera total", fmt.Sprintf("%s (%d)", money.COP(mt.TotalDebt), mt.PendingCredits), false},
		{"Cartera vencida", money.COP(mt.OverdueDebt), mt.OverdueDebt.IsPositive()},
		{"Stock bajo", strconv.Itoa(mt.LowStockProducts), mt.LowStockProducts > 0},
		{"Productos", strconv.Itoa(mt.TotalProducts), false},
		{"Inversión en stock", money.COP(mt.TotalStockInvestment), false},
		{"Valor estimado de venta", money.COP(mt.EstimatedSalesValue), false},
	}

	rows := make([]core.Row, 0, len(cards)/3+1)
	for i := 0; i < len(cards); i += 3 {
		r := row.New(13)
		for _, c := range cards[i:min(i+3, len(cards))] {
			valueColor := colorPrimary
			if c.alert {
				valueColor = colorDanger
			}
			r.Add(col.New(4).Add(
				text.New(c.label, props.Text{Size: 7.5, Color: colorGray, Top: 1}),
				text.New(c.value, props.Text{Style: fontstyle.Bold, Size: 11, Color: valueColor, Top: 5}),
			))
		}
		rows = append(rows, r)
	}
	return rows
}

func sectionTitle(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3}),
	))
}

type column struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow: cabecera de tabla con fondo claro.
func tableHeaderRow(cols []column) core.Row {
	r := row.New(7).WithStyle(&props.Cell{BackgroundColor: colorHeader})
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return r
}

func cell(size int, value string, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

func topProductRows(items []metrics.ProductSales) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow("Sin ventas en el periodo")}
	}
	rows := make([]core.Row, 0, len(items))
	for _, p := range items {
		rows = append(rows, row.New(6).Add(
			cell(7, p.ProductName, align.Left),
			cell(2, strconv.Itoa(p.Quantity), align.Center),
			cell(3, money.COP(p.Revenue), align.Right),
		))
	}
	return rows
}

func profitableRows(items []metrics.ProfitableSale) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow("Sin ventas en el periodo")}
	}
	rows := make([]core.Row, 0, len(items))
	for _, s := range items {
		rows = append(rows, row.New(6).Add(
			cell(5, nonEmpty(s.ClientName, "Cliente ocasional"), align.Left),
			cell(2, s.CreatedAt.Format("02/01/2006"), align.Center),
			cell(2, money.COP(s.Total), align.Right),
			cell(3, money.COP(s.Profit), align.Right),
		))
	}
	return rows
}

func overdueRows(items []metrics.CreditSummary) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow("No hay créditos vencidos")}
	}
	rows := make([]core.Row, 0, len(items))
	for _, c := range items {
		due := "-"
		if c.DueDate != nil {
			due = c.DueDate.Format("02/01/2006")
		}
		rows = append(rows, row.New(6).Add(
			cell(5, c.ClientName, align.Left),
			cell(2, due, align.Center),
			cell(2, c.Status, align.Center),
			cell(3, money.COP(c.Balance), align.Right),
		))
	}
	return rows
}

func seriesRows(points []metrics.DayPoint) []core.Row {
	if len(points) == 0 {
		return []core.Row{emptyRow("Sin movimientos en el periodo")}
	}
	rows := make([]core.Row, 0, len(points))
	for _, p := range points {
		rows = append(rows, row.New(6).Add(
			cell(6, p.Label+" ("+p.Date+")", align.Left),
			cell(2, strconv.Itoa(p.Count), align.Center),
			cell(4, money.COP(p.Amount), align.Right),
		))
	}
	return rows
}

// footerRows: trazabilidad del refresco y aviso si los datos no son frescos.
func footerRows(report analytics.ReportData) []core.Row {
	snap := report.Snapshot
	rows := []core.Row{
		row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Refresco %s del %s", snap.RefreshID, snap.RefreshedAt.Format("02/01/2006 15:04:05")),
				props.Text{Size: 6.5, Color: colorGray, Top: 1}),
		)),
	}
	if snap.Stale {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Datos del último refresco exitoso: el cálculo actual no se pudo completar.",
				props.Text{Size: 7, Style: fontstyle.Bold, Color: colorDanger, Top: 1}),
		)))
	}
	if len(snap.FailedSources) > 0 {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Fuentes sin respuesta (tomadas como vacías): %v", snap.FailedSources),
				props.Text{Size: 7, Color: colorDanger, Top: 1}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func daysLabel(days int) string {
	switch {
	case days < 0:
		return "Sin registros"
	case days == 1:
		return "1 día"
	default:
		return strconv.Itoa(days) + " días"
	}
}
