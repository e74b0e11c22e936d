package inventory_test

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/bymretail/inventario-api/internal/domain/entity"
)

// memStore implementa los tres puertos de persistencia en memoria. Los flags
// fail* permiten simular un backend caído por operación.
type memStore struct {
	inventory map[string][]*entity.Lot
	minimum   map[string]int
	movements []*entity.Movement

	failLoadInventory bool
	failSaveInventory bool
	failAppend        bool

	saveInventoryCalls int
}

var errBackendCaido = errors.New("backend caído")

func newMemStore() *memStore {
	return &memStore{
		inventory: map[string][]*entity.Lot{},
		minimum:   map[string]int{},
	}
}

func (m *memStore) LoadInventory(_ context.Context) (map[string][]*entity.Lot, error) {
	if m.failLoadInventory {
		return nil, errBackendCaido
	}
	// Copia profunda: el snapshot del caso de uso no debe compartir lotes con
	// el estado persistido, igual que un backend real.
	out := map[string][]*entity.Lot{}
	for code, lots := range m.inventory {
		copied := make([]*entity.Lot, len(lots))
		for i, l := range lots {
			lot := *l
			copied[i] = &lot
		}
		out[code] = copied
	}
	return out, nil
}

func (m *memStore) SaveInventory(_ context.Context, inv map[string][]*entity.Lot) error {
	if m.failSaveInventory {
		return errBackendCaido
	}
	m.saveInventoryCalls++
	saved := map[string][]*entity.Lot{}
	for code, lots := range inv {
		copied := make([]*entity.Lot, len(lots))
		for i, l := range lots {
			lot := *l
			copied[i] = &lot
		}
		saved[code] = copied
	}
	m.inventory = saved
	return nil
}

func (m *memStore) LoadMinimumStock(_ context.Context) (map[string]int, error) {
	out := map[string]int{}
	for k, v := range m.minimum {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) SaveMinimumStock(_ context.Context, min map[string]int) error {
	saved := map[string]int{}
	for k, v := range min {
		saved[k] = v
	}
	m.minimum = saved
	return nil
}

func (m *memStore) LoadMovements(_ context.Context) ([]*entity.Movement, error) {
	out := make([]*entity.Movement, len(m.movements))
	copy(out, m.movements)
	return out, nil
}

func (m *memStore) AppendMovement(_ context.Context, mov *entity.Movement) error {
	if m.failAppend {
		return errBackendCaido
	}
	copied := *mov
	m.movements = append(m.movements, &copied)
	return nil
}

// seedLot agrega un lote directamente al estado persistido.
func (m *memStore) seedLot(code, name, brand string, qty int, expiry string) {
	m.seedLotPriced(code, name, brand, qty, expiry, 100, 150)
}

// seedLotPriced como seedLot pero con precios propios del lote.
func (m *memStore) seedLotPriced(code, name, brand string, qty int, expiry string, cost, sale int64) {
	m.inventory[code] = append(m.inventory[code], &entity.Lot{
		Name:       name,
		Brand:      brand,
		Quantity:   qty,
		ExpiryDate: expiry,
		CostPrice:  decimal.NewFromInt(cost),
		SalePrice:  decimal.NewFromInt(sale),
	})
}

func (m *memStore) totalStock(code string) int {
	total := 0
	for _, l := range m.inventory[code] {
		total += l.Quantity
	}
	return total
}

func intPtr(n int) *int { return &n }
