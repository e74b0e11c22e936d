package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/bymretail/inventario-api/internal/application/inventory"
	"github.com/bymretail/inventario-api/internal/domain"
	"github.com/bymretail/inventario-api/internal/domain/entity"
)

func TestDispense_ConsumeEnOrdenFIFO(t *testing.T) {
	store := newMemStore()
	// Insertados fuera de orden: el consumo debe seguir el vencimiento, no la
	// posición.
	store.seedLot("A1", "Leche entera 1L", "Colún", 5, "2025-03-01")
	store.seedLot("A1", "Leche entera 1L", "Colún", 4, "2025-01-10")
	store.seedLot("A1", "Leche entera 1L", "Colún", 6, "")
	uc := appinv.NewDispenseStockUseCase(store, store, store)

	slices, err := uc.Dispense(context.Background(), "A1", 7)

	require.NoError(t, err)
	require.Len(t, slices, 2)
	assert.Equal(t, "2025-01-10", slices[0].ExpiryDate)
	assert.Equal(t, 4, slices[0].Taken)
	assert.Equal(t, "2025-03-01", slices[1].ExpiryDate)
	assert.Equal(t, 3, slices[1].Taken)

	// El lote agotado desaparece; el resto conserva el orden de inserción.
	require.Len(t, store.inventory["A1"], 2)
	assert.Equal(t, "2025-03-01", store.inventory["A1"][0].ExpiryDate)
	assert.Equal(t, 2, store.inventory["A1"][0].Quantity)
	assert.Equal(t, "", store.inventory["A1"][1].ExpiryDate)
	assert.Equal(t, 8, store.totalStock("A1"))
}

func TestDispense_LasPorcionesSumanLaCantidad(t *testing.T) {
	store := newMemStore()
	store.seedLot("A1", "Leche entera 1L", "Colún", 3, "2025-01-10")
	store.seedLot("A1", "Leche entera 1L", "Colún", 3, "2025-02-10")
	store.seedLot("A1", "Leche entera 1L", "Colún", 3, "2025-03-10")
	uc := appinv.NewDispenseStockUseCase(store, store, store)

	slices, err := uc.Dispense(context.Background(), "A1", 8)

	require.NoError(t, err)
	sum := 0
	for _, s := range slices {
		sum += s.Taken
	}
	assert.Equal(t, 8, sum)
	assert.Equal(t, 1, store.totalStock("A1"))
}

func TestDispense_AgotarElProductoLoEliminaDelInventario(t *testing.T) {
	store := newMemStore()
	store.seedLot("A1", "Leche entera 1L", "Colún", 4, "2025-01-10")
	uc := appinv.NewDispenseStockUseCase(store, store, store)

	_, err := uc.Dispense(context.Background(), "A1", 4)

	require.NoError(t, err)
	_, exists := store.inventory["A1"]
	assert.False(t, exists, "sin lotes no debe quedar una entrada fantasma")

	// El movimiento conserva el nombre del maestro capturado antes de agotar.
	require.Len(t, store.movements, 1)
	assert.Equal(t, "Leche entera 1L", store.movements[0].Name)
	assert.Equal(t, entity.MovementTypeOut, store.movements[0].Type)
}

func TestDispense_ExcedenteSeRechazaSinMutar(t *testing.T) {
	store := newMemStore()
	store.seedLot("A1", "Leche entera 1L", "Colún", 4, "2025-01-10")
	uc := appinv.NewDispenseStockUseCase(store, store, store)

	_, err := uc.Dispense(context.Background(), "A1", 5)

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 4, store.totalStock("A1"), "el rechazo no consume parcialmente")
	assert.Empty(t, store.movements)
}

func TestDispense_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	uc := appinv.NewDispenseStockUseCase(store, store, store)

	_, err := uc.Dispense(context.Background(), "NOEXISTE", 1)

	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDispense_CantidadCeroEsNoOp(t *testing.T) {
	store := newMemStore()
	store.seedLot("A1", "Leche entera 1L", "Colún", 4, "2025-01-10")
	uc := appinv.NewDispenseStockUseCase(store, store, store)

	slices, err := uc.Dispense(context.Background(), "A1", 0)

	require.NoError(t, err)
	assert.Nil(t, slices)
	assert.Equal(t, 4, store.totalStock("A1"))
	assert.Empty(t, store.movements)
}

func TestDispense_CantidadNegativa(t *testing.T) {
	store := newMemStore()
	uc := appinv.NewDispenseStockUseCase(store, store, store)

	_, err := uc.Dispense(context.Background(), "A1", -1)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Dos lotes del mismo producto pueden costar distinto; cada línea del libro
// debe llevar los precios del lote del que salió la porción, no los del
// primer lote.
func TestDispense_CadaPorcionLlevaLosPreciosDeSuLote(t *testing.T) {
	store := newMemStore()
	store.seedLotPriced("X1", "Café grano 1kg", "Juan Valdez", 3, "2024-01-01", 100, 160)
	store.seedLotPriced("X1", "Café grano 1kg", "Juan Valdez", 5, "2024-03-01", 200, 290)
	uc := appinv.NewDispenseStockUseCase(store, store, store)

	slices, err := uc.Dispense(context.Background(), "X1", 4)

	require.NoError(t, err)
	require.Len(t, slices, 2)
	assert.True(t, slices[0].CostPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, slices[1].CostPrice.Equal(decimal.NewFromInt(200)))

	require.Len(t, store.movements, 2)
	first, second := store.movements[0], store.movements[1]
	assert.Equal(t, "2024-01-01", first.ExpiryDate)
	assert.True(t, first.CostPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, first.SalePrice.Equal(decimal.NewFromInt(160)))
	assert.Equal(t, "2024-03-01", second.ExpiryDate)
	assert.True(t, second.CostPrice.Equal(decimal.NewFromInt(200)), "la segunda línea lleva el costo de su propio lote")
	assert.True(t, second.SalePrice.Equal(decimal.NewFromInt(290)))
}

func TestDispense_UnaLineaDeLibroPorPorcion(t *testing.T) {
	store := newMemStore()
	store.seedLot("A1", "Leche entera 1L", "Colún", 2, "2025-01-10")
	store.seedLot("A1", "Leche entera 1L", "Colún", 5, "2025-02-10")
	uc := appinv.NewDispenseStockUseCase(store, store, store)

	_, err := uc.Dispense(context.Background(), "A1", 4)

	require.NoError(t, err)
	require.Len(t, store.movements, 2)
	assert.Equal(t, "2025-01-10", store.movements[0].ExpiryDate)
	assert.Equal(t, 2, store.movements[0].Quantity)
	assert.Equal(t, "2025-02-10", store.movements[1].ExpiryDate)
	assert.Equal(t, 2, store.movements[1].Quantity)
}
