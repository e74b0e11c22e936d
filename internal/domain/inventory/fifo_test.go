package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bymretail/inventario-api/internal/domain/entity"
	"github.com/bymretail/inventario-api/internal/domain/inventory"
)

func lot(expiry string, qty int) *entity.Lot {
	return &entity.Lot{Name: "Producto", Quantity: qty, ExpiryDate: expiry}
}

func TestTotalStock(t *testing.T) {
	assert.Equal(t, 0, inventory.TotalStock(nil))
	assert.Equal(t, 18, inventory.TotalStock([]*entity.Lot{lot("2024-01-01", 10), lot("", 8)}))
}

func TestOrderFIFO_FechadosPrimeroAscendente(t *testing.T) {
	lots := []*entity.Lot{
		lot("", 5),
		lot("2024-03-01", 3),
		lot("2024-01-01", 2),
	}

	ordered := inventory.OrderFIFO(lots)

	require.Len(t, ordered, 3)
	assert.Equal(t, "2024-01-01", ordered[0].ExpiryDate)
	assert.Equal(t, "2024-03-01", ordered[1].ExpiryDate)
	assert.Equal(t, "", ordered[2].ExpiryDate, "los lotes sin fecha se consumen al final")
}

func TestOrderFIFO_NoMutaLaEntrada(t *testing.T) {
	lots := []*entity.Lot{lot("2024-03-01", 3), lot("2024-01-01", 2)}

	_ = inventory.OrderFIFO(lots)

	assert.Equal(t, "2024-03-01", lots[0].ExpiryDate, "la entrada no debe reordenarse")
}

// Lotes con la misma fecha (o ambos sin fecha) conservan el orden de
// inserción: el ordenamiento es estable.
func TestOrderFIFO_EstableEntreClavesIguales(t *testing.T) {
	a := lot("2024-01-01", 1)
	b := lot("2024-01-01", 2)
	u1 := lot("", 3)
	u2 := lot("", 4)

	ordered := inventory.OrderFIFO([]*entity.Lot{a, b, u1, u2})

	assert.Same(t, a, ordered[0])
	assert.Same(t, b, ordered[1])
	assert.Same(t, u1, ordered[2])
	assert.Same(t, u2, ordered[3])
}

func TestOrderFIFO_FechaNoInterpretableVaAlFinal(t *testing.T) {
	lots := []*entity.Lot{lot("basura", 1), lot("2024-06-01", 1)}

	ordered := inventory.OrderFIFO(lots)

	assert.Equal(t, "2024-06-01", ordered[0].ExpiryDate)
	assert.Equal(t, "basura", ordered[1].ExpiryDate)
}
