package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bymretail/inventario-api/internal/domain"
	"github.com/bymretail/inventario-api/internal/domain/entity"
	domaininv "github.com/bymretail/inventario-api/internal/domain/inventory"
	"github.com/bymretail/inventario-api/internal/domain/repository"
)

// DispensedSlice una porción tomada de un lote durante una salida FIFO. Los
// precios son los del lote consumido, no los del maestro: dos lotes del mismo
// producto pueden haberse recibido a costos distintos y el libro conserva el
// costo real de lo que salió.
type DispensedSlice struct {
	ExpiryDate string
	Taken      int
	CostPrice  decimal.Decimal
	SalePrice  decimal.Decimal
}

// DispenseStockUseCase ejecuta salidas de stock consumiendo lotes en orden
// FIFO (primero en vencer, primero en salir). Cada porción consumida de un
// lote produce su propia línea en el libro de movimientos. Los lotes que
// llegan a cero se eliminan; un producto sin lotes desaparece del inventario.
type DispenseStockUseCase struct {
	invRepo repository.InventoryRepository
	minRepo repository.MinimumStockRepository
	movRepo repository.MovementRepository
	now     func() time.Time
}

// NewDispenseStockUseCase construye el caso de uso.
func NewDispenseStockUseCase(
	invRepo repository.InventoryRepository,
	minRepo repository.MinimumStockRepository,
	movRepo repository.MovementRepository,
) *DispenseStockUseCase {
	return &DispenseStockUseCase{
		invRepo: invRepo,
		minRepo: minRepo,
		movRepo: movRepo,
		now:     time.Now,
	}
}

// Dispense retira quantity unidades del producto. Valida contra el stock
// disponible antes de mutar: una solicitud que excede el total se rechaza sin
// tocar inventario ni libro. Con quantity 0 no se toca ningún lote y no se
// produce ninguna línea.
func (uc *DispenseStockUseCase) Dispense(ctx context.Context, code string, quantity int) ([]DispensedSlice, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
	}
	if quantity == 0 {
		return nil, nil
	}
	snap, err := loadSnapshot(ctx, uc.invRepo, uc.minRepo)
	if err != nil {
		return nil, err
	}
	// El maestro se captura antes de mutar: si la salida agota el producto,
	// su entrada de inventario (y con ella el maestro) deja de existir.
	master, _ := snap.Master(code)
	slices, err := dispenseInSnapshot(snap, code, quantity)
	if err != nil {
		return nil, err
	}
	if err := uc.invRepo.SaveInventory(ctx, snap.Inventory); err != nil {
		return nil, fmt.Errorf("guardar inventario: %w", err)
	}
	if err := uc.appendMovements(ctx, master, slices); err != nil {
		return nil, err
	}
	return slices, nil
}

// dispenseInSnapshot aplica la salida sobre el snapshot sin persistir.
// Separado para que el commit del carrito pueda retirar varios códigos y
// guardar el inventario una sola vez.
func dispenseInSnapshot(snap *Snapshot, code string, quantity int) ([]DispensedSlice, error) {
	lots, ok := snap.Inventory[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, code)
	}
	if total := domaininv.TotalStock(lots); quantity > total {
		return nil, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, total, quantity)
	}

	remaining := quantity
	var slices []DispensedSlice
	for _, lot := range domaininv.OrderFIFO(lots) {
		if remaining == 0 {
			break
		}
		take := lot.Quantity
		if take > remaining {
			take = remaining
		}
		lot.Quantity -= take
		remaining -= take
		slices = append(slices, DispensedSlice{
			ExpiryDate: lot.ExpiryDate,
			Taken:      take,
			CostPrice:  lot.CostPrice,
			SalePrice:  lot.SalePrice,
		})
	}

	// Poda de lotes agotados preservando el orden de inserción.
	kept := make([]*entity.Lot, 0, len(lots))
	for _, lot := range lots {
		if lot.Quantity > 0 {
			kept = append(kept, lot)
		}
	}
	if len(kept) == 0 {
		// El inventario nunca retiene entradas fantasma con stock cero.
		delete(snap.Inventory, code)
	} else {
		snap.Inventory[code] = kept
	}
	return slices, nil
}

// appendMovements agrega una línea de salida por porción consumida: el nombre
// viene del registro maestro capturado antes de la mutación, los precios del
// lote del que salió cada porción.
func (uc *DispenseStockUseCase) appendMovements(ctx context.Context, master entity.ProductMaster, slices []DispensedSlice) error {
	now := uc.now()
	for _, s := range slices {
		mov := &entity.Movement{
			ID:         uuid.New().String(),
			Timestamp:  now,
			Type:       entity.MovementTypeOut,
			Code:       master.Code,
			Name:       master.Name,
			Quantity:   s.Taken,
			ExpiryDate: s.ExpiryDate,
			CostPrice:  s.CostPrice,
			SalePrice:  s.SalePrice,
		}
		if err := uc.movRepo.AppendMovement(ctx, mov); err != nil {
			return fmt.Errorf("registrar movimiento de salida: %w", err)
		}
	}
	return nil
}
