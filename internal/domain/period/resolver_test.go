package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/period"
)

// Bogotá es UTC-5 todo el año; una zona fija evita depender del tzdata del host.
var bogota = time.FixedZone("COT", -5*60*60)

func TestResolve_Today_DiaLocalCompleto(t *testing.T) {
	now := time.Date(2025, time.October, 16, 14, 30, 0, 0, bogota)

	rng := period.Resolve(period.FilterToday, 2025, nil, now)

	require.True(t, rng.Valid)
	assert.Equal(t, time.Date(2025, time.October, 16, 0, 0, 0, 0, bogota), rng.Start)
	assert.Equal(t, time.Date(2025, time.October, 16, 23, 59, 59, 999_000_000, bogota), rng.End)
}

func TestResolve_Specific_SinFecha_Invalido(t *testing.T) {
	now := time.Date(2025, time.October, 16, 14, 30, 0, 0, bogota)

	rng := period.Resolve(period.FilterSpecific, 2025, nil, now)

	assert.False(t, rng.Valid, "specific sin fecha no debe resolver un rango")
	assert.True(t, rng.Start.IsZero())
	assert.True(t, rng.End.IsZero())
}

func TestResolve_Specific_FechaUTCNoCambiaDeDia(t *testing.T) {
	now := time.Date(2025, time.October, 16, 14, 30, 0, 0, bogota)
	// Una fecha parseada de "2025-03-01" queda en UTC; el día calendario se conserva.
	day, err := time.Parse(period.DateLayout, "2025-03-01")
	require.NoError(t, err)

	rng := period.Resolve(period.FilterSpecific, 2025, &day, now)

	require.True(t, rng.Valid)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, bogota), rng.Start)
	assert.Equal(t, time.Date(2025, time.March, 1, 23, 59, 59, 999_000_000, bogota), rng.End)
}

func TestResolve_All_EsElAnioSeleccionado(t *testing.T) {
	now := time.Date(2025, time.October, 16, 14, 30, 0, 0, bogota)

	rng := period.Resolve(period.FilterAll, 2023, nil, now)

	require.True(t, rng.Valid)
	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, bogota), rng.Start)
	assert.Equal(t, time.Date(2023, time.December, 31, 23, 59, 59, 999_000_000, bogota), rng.End)
}

func TestResolve_FiltroDesconocido_Invalido(t *testing.T) {
	now := time.Date(2025, time.October, 16, 14, 30, 0, 0, bogota)

	rng := period.Resolve(period.Filter("week"), 2025, nil, now)

	assert.False(t, rng.Valid)
}

func TestRange_ContainsYUTC(t *testing.T) {
	now := time.Date(2025, time.October, 16, 14, 30, 0, 0, bogota)
	rng := period.Resolve(period.FilterToday, 2025, nil, now)

	assert.True(t, rng.Contains(rng.Start), "el inicio está incluido")
	assert.True(t, rng.Contains(rng.End), "el fin está incluido")
	assert.False(t, rng.Contains(rng.End.Add(time.Millisecond)))
	assert.False(t, period.Range{}.Contains(now), "un rango inválido no contiene nada")

	start, end := rng.UTC()
	assert.Equal(t, time.Date(2025, time.October, 16, 5, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.UTC, end.Location())
}

func TestParseFilter(t *testing.T) {
	cases := map[string]period.Filter{
		"":          period.FilterToday,
		"  ":        period.FilterToday,
		"TODAY":     period.FilterToday,
		"specific":  period.FilterSpecific,
		" All ":     period.FilterAll,
		"yesterday": period.Filter("yesterday"),
	}
	for in, want := range cases {
		got := period.ParseFilter(in)
		assert.Equal(t, want, got, "entrada %q", in)
	}
	assert.False(t, period.ParseFilter("yesterday").IsKnown())
	assert.True(t, period.ParseFilter("all").IsKnown())
}

func TestEffectiveFilter_SoloAdminVeHistorial(t *testing.T) {
	assert.Equal(t, period.FilterAll, period.EffectiveFilter(entity.RoleAdmin, period.FilterAll))
	assert.Equal(t, period.FilterSpecific, period.EffectiveFilter(entity.RoleAdmin, period.FilterSpecific))
	assert.Equal(t, period.FilterToday, period.EffectiveFilter(entity.RoleVendedor, period.FilterAll),
		"vendedor queda forzado a today")
	assert.Equal(t, period.FilterToday, period.EffectiveFilter(entity.RoleBodeguero, period.FilterSpecific))
	assert.Equal(t, period.FilterToday, period.EffectiveFilter("", period.FilterAll))
}

func TestStartOfDay(t *testing.T) {
	// 02:00 UTC del 17 es todavía el 16 en Bogotá.
	t0 := time.Date(2025, time.October, 17, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.October, 16, 0, 0, 0, 0, bogota), period.StartOfDay(t0, bogota))
}
