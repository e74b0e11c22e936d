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

func entryInput(code, expiry string, qty int) appinv.ReceiveInput {
	return appinv.ReceiveInput{
		Code:       code,
		Name:       "Leche entera 1L",
		Brand:      "Colún",
		Quantity:   qty,
		ExpiryDate: expiry,
		CostPrice:  decimal.NewFromInt(800),
		SalePrice:  decimal.NewFromInt(1200),
	}
}

func TestReceive_ProductoNuevo(t *testing.T) {
	store := newMemStore()
	uc := appinv.NewReceiveStockUseCase(store, store, store, appinv.PolicyKeep)

	in := entryInput("A1", "10/01/2025", 12)
	in.MinimumStock = intPtr(6)
	result, err := uc.Receive(context.Background(), in)

	require.NoError(t, err)
	assert.True(t, result.NewProduct)
	assert.False(t, result.Merged)
	assert.Equal(t, "2025-01-10", result.Lot.ExpiryDate, "la fecha se normaliza al guardarse")
	assert.Equal(t, 12, store.totalStock("A1"))
	assert.Equal(t, 6, store.minimum["A1"])

	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.MovementTypeIn, mov.Type)
	assert.Equal(t, "A1", mov.Code)
	assert.Equal(t, 12, mov.Quantity)
	assert.NotEmpty(t, mov.ID)
}

func TestReceive_FusionaConLoteDeIgualVencimiento(t *testing.T) {
	store := newMemStore()
	store.seedLot("A1", "Leche entera 1L", "Colún", 10, "2025-01-10")
	uc := appinv.NewReceiveStockUseCase(store, store, store, appinv.PolicyKeep)

	result, err := uc.Receive(context.Background(), entryInput("A1", "2025-01-10", 5))

	require.NoError(t, err)
	assert.True(t, result.Merged)
	assert.Equal(t, 15, result.Lot.Quantity)
	require.Len(t, store.inventory["A1"], 1, "no debe crearse un lote nuevo")
	assert.Equal(t, 15, store.totalStock("A1"))
}

func TestReceive_VencimientoDistintoCreaLote(t *testing.T) {
	store := newMemStore()
	store.seedLot("A1", "Leche entera 1L", "Colún", 10, "2025-01-10")
	uc := appinv.NewReceiveStockUseCase(store, store, store, appinv.PolicyKeep)

	result, err := uc.Receive(context.Background(), entryInput("A1", "2025-03-01", 5))

	require.NoError(t, err)
	assert.False(t, result.Merged)
	require.Len(t, store.inventory["A1"], 2)
	// El lote nuevo va al final: el orden de inserción se preserva.
	assert.Equal(t, "2025-01-10", store.inventory["A1"][0].ExpiryDate)
	assert.Equal(t, "2025-03-01", store.inventory["A1"][1].ExpiryDate)
}

func TestReceive_SinVencimientoEsClavePropia(t *testing.T) {
	store := newMemStore()
	store.seedLot("A1", "Leche entera 1L", "Colún", 10, "2025-01-10")
	uc := appinv.NewReceiveStockUseCase(store, store, store, appinv.PolicyKeep)

	result, err := uc.Receive(context.Background(), entryInput("A1", "", 5))
	require.NoError(t, err)
	assert.False(t, result.Merged)

	// Una segunda entrada sin vencimiento sí fusiona con ese lote.
	result, err = uc.Receive(context.Background(), entryInput("A1", "   ", 3))
	require.NoError(t, err)
	assert.True(t, result.Merged)
	assert.Equal(t, 8, result.Lot.Quantity)
}

func TestReceive_ValidacionesRechazanSinMutar(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*appinv.ReceiveInput)
	}{
		{"codigo vacio", func(in *appinv.ReceiveInput) { in.Code = "  " }},
		{"cantidad negativa", func(in *appinv.ReceiveInput) { in.Quantity = -1 }},
		{"precio costo negativo", func(in *appinv.ReceiveInput) { in.CostPrice = decimal.NewFromInt(-1) }},
		{"precio venta negativo", func(in *appinv.ReceiveInput) { in.SalePrice = decimal.NewFromInt(-1) }},
		{"minimo negativo", func(in *appinv.ReceiveInput) { in.MinimumStock = intPtr(-1) }},
		{"fecha no interpretable", func(in *appinv.ReceiveInput) { in.ExpiryDate = "mañana" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			store.seedLot("A1", "Leche entera 1L", "Colún", 10, "2025-01-10")
			uc := appinv.NewReceiveStockUseCase(store, store, store, appinv.PolicyKeep)

			in := entryInput("A1", "2025-01-10", 5)
			tc.mutate(&in)
			_, err := uc.Receive(context.Background(), in)

			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, 10, store.totalStock("A1"), "el rechazo no debe mutar inventario")
			assert.Empty(t, store.movements, "el rechazo no debe tocar el libro")
		})
	}
}

func TestReceive_ProductoNuevoExigeNombreYMarca(t *testing.T) {
	store := newMemStore()
	uc := appinv.NewReceiveStockUseCase(store, store, store, appinv.PolicyKeep)

	in := entryInput("NUEVO", "", 5)
	in.Name = ""
	_, err := uc.Receive(context.Background(), in)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.inventory)
}

func TestReceive_CantidadCeroSeAceptaYRegistra(t *testing.T) {
	store := newMemStore()
	store.seedLot("A1", "Leche entera 1L", "Colún", 10, "2025-01-10")
	uc := appinv.NewReceiveStockUseCase(store, store, store, appinv.PolicyKeep)

	result, err := uc.Receive(context.Background(), entryInput("A1", "2025-01-10", 0))

	require.NoError(t, err)
	assert.True(t, result.Merged)
	assert.Equal(t, 10, store.totalStock("A1"))
	require.Len(t, store.movements, 1, "la entrada de cantidad cero igual queda en el libro")
	assert.Equal(t, 0, store.movements[0].Quantity)
}

// El primer lote es autoritativo para el nombre; si la entrada fusiona sobre
// un lote posterior con una copia desactualizada, la línea del libro igual
// lleva el nombre del maestro.
func TestReceive_LibroUsaElNombreDelMaestro(t *testing.T) {
	store := newMemStore()
	store.seedLot("A1", "Leche entera 1L", "Colún", 10, "2025-01-10")
	store.seedLot("A1", "Leche 1L (viejo)", "Colún", 5, "2025-03-01")
	uc := appinv.NewReceiveStockUseCase(store, store, store, appinv.PolicyKeep)

	result, err := uc.Receive(context.Background(), entryInput("A1", "2025-03-01", 2))

	require.NoError(t, err)
	assert.True(t, result.Merged)
	assert.Equal(t, "Leche 1L (viejo)", result.Lot.Name, "la fusión cae en el segundo lote")
	require.Len(t, store.movements, 1)
	assert.Equal(t, "Leche entera 1L", store.movements[0].Name)
}

func TestReceive_PolicyKeepConservaElMaestro(t *testing.T) {
	store := newMemStore()
	store.seedLot("A1", "Leche entera 1L", "Colún", 10, "2025-01-10")
	uc := appinv.NewReceiveStockUseCase(store, store, store, appinv.PolicyKeep)

	in := entryInput("A1", "2025-03-01", 5)
	in.Name = "Leche descremada"
	in.Brand = "Soprole"
	_, err := uc.Receive(context.Background(), in)

	require.NoError(t, err)
	first := store.inventory["A1"][0]
	assert.Equal(t, "Leche entera 1L", first.Name, "keep: el primer lote sigue siendo autoritativo")
	assert.Equal(t, "Colún", first.Brand)
}

func TestReceive_PolicyOverwriteActualizaElMaestro(t *testing.T) {
	store := newMemStore()
	store.seedLot("A1", "Leche entera 1L", "Colún", 10, "2025-01-10")
	uc := appinv.NewReceiveStockUseCase(store, store, store, appinv.PolicyOverwrite)

	in := entryInput("A1", "2025-03-01", 5)
	in.Name = "Leche descremada"
	in.Brand = "Soprole"
	in.SalePrice = decimal.NewFromInt(1350)
	_, err := uc.Receive(context.Background(), in)

	require.NoError(t, err)
	first := store.inventory["A1"][0]
	assert.Equal(t, "Leche descremada", first.Name)
	assert.Equal(t, "Soprole", first.Brand)
	assert.True(t, first.SalePrice.Equal(decimal.NewFromInt(1350)))
}

func TestReceive_UmbralSoloSeTocaAlCrearLote(t *testing.T) {
	store := newMemStore()
	store.seedLot("A1", "Leche entera 1L", "Colún", 10, "2025-01-10")
	store.minimum["A1"] = 4
	uc := appinv.NewReceiveStockUseCase(store, store, store, appinv.PolicyKeep)

	// Fusión: el umbral enviado se ignora.
	in := entryInput("A1", "2025-01-10", 5)
	in.MinimumStock = intPtr(99)
	_, err := uc.Receive(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 4, store.minimum["A1"])

	// Lote nuevo: el umbral enviado se aplica.
	in = entryInput("A1", "2025-06-01", 5)
	in.MinimumStock = intPtr(8)
	_, err = uc.Receive(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 8, store.minimum["A1"])
}

func TestReceive_BackendCaidoNoMuta(t *testing.T) {
	store := newMemStore()
	store.seedLot("A1", "Leche entera 1L", "Colún", 10, "2025-01-10")
	store.failLoadInventory = true
	uc := appinv.NewReceiveStockUseCase(store, store, store, appinv.PolicyKeep)

	_, err := uc.Receive(context.Background(), entryInput("A1", "2025-01-10", 5))

	require.ErrorIs(t, err, domain.ErrIncompleteLoad)
	assert.Equal(t, 10, store.totalStock("A1"))
}
