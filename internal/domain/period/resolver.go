// Package period resuelve el filtro de fechas del dashboard a un rango concreto.
package period

import (
	"strings"
	"time"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
)

// Filter selección de periodo del dashboard.
type Filter string

// Filtros soportados.
const (
	FilterToday    Filter = "today"
	FilterSpecific Filter = "specific"
	FilterAll      Filter = "all" // año seleccionado completo, no "todo el histórico"
)

// DateLayout formato de fecha usado en la API (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Range intervalo cerrado [Start, End] en la zona horaria local.
// Valid es false cuando el filtro no pudo resolverse; Start y End quedan en cero.
type Range struct {
	Start time.Time
	End   time.Time
	Valid bool
}

// ParseFilter normaliza el filtro recibido por la API. Cadenas vacías equivalen a today.
func ParseFilter(s string) Filter {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterToday
	}
	return Filter(s)
}

// IsKnown indica si el filtro es uno de los soportados.
func (f Filter) IsKnown() bool {
	return f == FilterToday || f == FilterSpecific || f == FilterAll
}

// EffectiveFilter devuelve el filtro que realmente se aplica según el rol.
// Los roles sin historial quedan forzados a today, sin importar la selección.
func EffectiveFilter(role string, requested Filter) Filter {
	if !entity.CanSeeHistory(role) {
		return FilterToday
	}
	return requested
}

// Resolve convierte (filtro, año, fecha específica) en un rango de fechas.
// now solo se usa para today; su Location define la zona horaria local.
//
//   - today:    00:00:00.000 – 23:59:59.999 de hoy.
//   - specific: el día de specificDate; sin fecha el rango es inválido.
//   - all:      1 de enero – 31 de diciembre del año indicado.
func Resolve(filter Filter, year int, specificDate *time.Time, now time.Time) Range {
	loc := now.Location()
	switch filter {
	case FilterToday:
		return dayRange(now, loc)
	case FilterSpecific:
		if specificDate == nil || specificDate.IsZero() {
			return Range{}
		}
		return dayRange(*specificDate, loc)
	case FilterAll:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		end := time.Date(year, time.December, 31, 23, 59, 59, int(999*time.Millisecond), loc)
		return Range{Start: start, End: end, Valid: true}
	default:
		return Range{}
	}
}

// StartOfDay devuelve la medianoche local del día de t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Contains indica si t cae dentro del rango (extremos incluidos).
func (r Range) Contains(t time.Time) bool {
	if !r.Valid {
		return false
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// UTC devuelve el rango normalizado a UTC, como lo esperan las consultas a la base de datos.
func (r Range) UTC() (startDate, endDate time.Time) {
	return r.Start.UTC(), r.End.UTC()
}

func dayRange(day time.Time, loc *time.Location) Range {
	// La fecha calendario se toma tal como viene (una fecha parseada en UTC no debe correrse de día).
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
	return Range{Start: start, End: end, Valid: true}
}
