package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bymretail/inventario-api/internal/domain/inventory"
)

func TestParseScanToken(t *testing.T) {
	cases := []struct {
		name     string
		token    string
		wantCode string
		wantQty  int
	}{
		{"codigo simple", "7806505055391", "7806505055391", 1},
		{"multiplicador", "5*7806505055391", "7806505055391", 5},
		{"espacios alrededor", "  3 * ABC123 ", "ABC123", 3},
		{"multiplicador cero se conserva", "0*ABC", "ABC", 0},
		{"multiplicador negativo se conserva", "-2*ABC", "ABC", -2},
		// Un prefijo que no parsea no destruye el escaneo: el token entero se
		// toma como código literal.
		{"prefijo no numerico", "x*ABC", "x*ABC", 1},
		{"asterisco sin prefijo", "*ABC", "*ABC", 1},
		{"vacio", "", "", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, qty := inventory.ParseScanToken(tc.token)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantQty, qty)
		})
	}
}
