package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcastro/almacen-api/internal/domain/stock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Classify debe ser total y determinista: cada combinación (stock, min, max)
// produce exactamente un Status, y stock cero siempre gana sobre cualquier
// umbral configurado.
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify(t *testing.T) {
	cases := []struct {
		name             string
		stockQty, mn, mx int
		want             stock.Status
	}{
		{"cero es EMPTY aunque min sea positivo", 0, 10, 20, stock.StatusEmpty},
		{"cero es EMPTY aunque min sea cero", 0, 0, 20, stock.StatusEmpty},
		{"debajo del mínimo es LOW", 5, 10, 20, stock.StatusLow},
		{"dentro de umbrales es NORMAL", 15, 10, 20, stock.StatusNormal},
		{"sobre el máximo es HIGH", 25, 10, 20, stock.StatusHigh},
		{"exactamente el mínimo es NORMAL", 10, 10, 20, stock.StatusNormal},
		{"exactamente el máximo es NORMAL", 20, 10, 20, stock.StatusNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := stock.Classify(tc.stockQty, tc.mn, tc.mx)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassify_Determinista(t *testing.T) {
	a := stock.Classify(7, 10, 50)
	b := stock.Classify(7, 10, 50)
	assert.Equal(t, a, b, "el mismo input siempre debe producir el mismo estado")
}

func TestIsLowOrEmpty(t *testing.T) {
	assert.True(t, stock.IsLowOrEmpty(stock.StatusEmpty), "EMPTY cuenta como stock bajo en el resumen agrupado")
	assert.True(t, stock.IsLowOrEmpty(stock.StatusLow))
	assert.False(t, stock.IsLowOrEmpty(stock.StatusNormal))
	assert.False(t, stock.IsLowOrEmpty(stock.StatusHigh))
}
