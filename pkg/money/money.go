// Package money formatea valores en pesos colombianos para reportes.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// COP formatea sin decimales y con separador de miles. Ej: 1500000 → "$1.500.000".
func COP(v decimal.Decimal) string {
	n := v.Round(0).IntPart()
	if n < 0 {
		return "-$" + printer.Sprintf("%d", -n)
	}
	return "$" + printer.Sprintf("%d", n)
}

// Percent formatea un porcentaje ya calculado ("12.5" → "12,5%").
func Percent(raw string) string {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return raw + "%"
	}
	f, _ := d.Round(1).Float64()
	return printer.Sprintf("%.1f", f) + "%"
}
