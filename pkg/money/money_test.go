package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-dashboard-api/pkg/money"
)

func TestCOP(t *testing.T) {
	assert.Equal(t, "$1.500.000", money.COP(decimal.NewFromInt(1500000)))
	assert.Equal(t, "$25.000", money.COP(decimal.RequireFromString("24999.6")))
	assert.Equal(t, "$0", money.COP(decimal.Zero))
	assert.Equal(t, "-$130.000", money.COP(decimal.NewFromInt(-130000)))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "50,0%", money.Percent("50.0"))
	assert.Equal(t, "x%", money.Percent("x"), "un valor no numérico se devuelve tal cual")
}
