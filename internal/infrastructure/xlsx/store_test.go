package xlsx_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bymretail/inventario-api/internal/domain/entity"
	"github.com/bymretail/inventario-api/internal/infrastructure/xlsx"
)

func TestStore_InventarioIdaYVuelta(t *testing.T) {
	store := xlsx.NewStore(t.TempDir())
	ctx := context.Background()

	inv := map[string][]*entity.Lot{
		"A1": {
			{Name: "Leche entera 1L", Brand: "Colún", Quantity: 10, ExpiryDate: "2025-01-10", CostPrice: decimal.NewFromInt(800), SalePrice: decimal.NewFromInt(1200)},
			{Name: "Leche entera 1L", Brand: "Colún", Quantity: 5, ExpiryDate: "2025-03-01", CostPrice: decimal.NewFromInt(800), SalePrice: decimal.NewFromInt(1200)},
		},
		"B2": {
			{Name: "Azúcar 1kg", Brand: "Iansa", Quantity: 3, ExpiryDate: "", CostPrice: decimal.RequireFromString("990.50"), SalePrice: decimal.NewFromInt(1490)},
		},
	}
	require.NoError(t, store.SaveInventory(ctx, inv))

	loaded, err := store.LoadInventory(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	require.Len(t, loaded["A1"], 2)
	assert.Equal(t, "2025-01-10", loaded["A1"][0].ExpiryDate, "el orden de filas preserva el orden de lotes")
	assert.Equal(t, "2025-03-01", loaded["A1"][1].ExpiryDate)
	assert.Equal(t, 10, loaded["A1"][0].Quantity)
	assert.Equal(t, "Colún", loaded["A1"][0].Brand)
	assert.True(t, loaded["B2"][0].CostPrice.Equal(decimal.RequireFromString("990.50")), "los precios decimales no pierden precisión")
	assert.Equal(t, "", loaded["B2"][0].ExpiryDate)
}

func TestStore_LibroInexistenteEsVacio(t *testing.T) {
	store := xlsx.NewStore(t.TempDir())
	ctx := context.Background()

	inv, err := store.LoadInventory(ctx)
	require.NoError(t, err)
	assert.Empty(t, inv)

	min, err := store.LoadMinimumStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, min)

	movs, err := store.LoadMovements(ctx)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestStore_StockMinimoIdaYVuelta(t *testing.T) {
	store := xlsx.NewStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.SaveMinimumStock(ctx, map[string]int{"A1": 6, "B2": 10}))

	loaded, err := store.LoadMinimumStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A1": 6, "B2": 10}, loaded)
}

func TestStore_MovimientosSoloSeAgregan(t *testing.T) {
	store := xlsx.NewStore(t.TempDir())
	ctx := context.Background()

	first := &entity.Movement{
		Timestamp:  time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC),
		Type:       entity.MovementTypeIn,
		Code:       "A1",
		Name:       "Leche entera 1L",
		Quantity:   10,
		ExpiryDate: "2025-01-10",
		CostPrice:  decimal.NewFromInt(800),
		SalePrice:  decimal.NewFromInt(1200),
	}
	second := &entity.Movement{
		Timestamp: time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC),
		Type:      entity.MovementTypeOut,
		Code:      "A1",
		Name:      "Leche entera 1L",
		Quantity:  3,
		CostPrice: decimal.NewFromInt(800),
		SalePrice: decimal.NewFromInt(1200),
	}
	require.NoError(t, store.AppendMovement(ctx, first))
	require.NoError(t, store.AppendMovement(ctx, second))

	movs, err := store.LoadMovements(ctx)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeIn, movs[0].Type)
	assert.Equal(t, first.Timestamp, movs[0].Timestamp)
	assert.Equal(t, entity.MovementTypeOut, movs[1].Type)
	assert.Equal(t, 3, movs[1].Quantity)
}

func TestStore_GuardarReemplazaElLibro(t *testing.T) {
	store := xlsx.NewStore(t.TempDir())
	ctx := context.Background()

	inv := map[string][]*entity.Lot{
		"A1": {{Name: "Leche", Brand: "Colún", Quantity: 10, CostPrice: decimal.Zero, SalePrice: decimal.Zero}},
	}
	require.NoError(t, store.SaveInventory(ctx, inv))

	// Un guardado con menos productos no deja filas huérfanas.
	require.NoError(t, store.SaveInventory(ctx, map[string][]*entity.Lot{}))

	loaded, err := store.LoadInventory(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
