package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bymretail/inventario-api/internal/application/dto"
	"github.com/bymretail/inventario-api/internal/domain"
	"github.com/bymretail/inventario-api/internal/domain/entity"
	domaininv "github.com/bymretail/inventario-api/internal/domain/inventory"
	"github.com/bymretail/inventario-api/internal/domain/repository"
)

// CartLine una línea preparada del carrito.
type CartLine struct {
	Code     string
	Name     string
	Quantity int
}

// CartUseCase es la etapa de preparación de salidas: los escaneos acumulan
// cantidades pendientes por código y el commit las retira todas de una vez.
// Un escaneo se rechaza sin cambiar estado si el código no existe o si lo
// pendiente más lo escaneado excede el stock disponible. El commit limpia el
// carrito solo si todas las salidas se aplicaron; nunca se expone un estado
// de commit parcial.
type CartUseCase struct {
	invRepo  repository.InventoryRepository
	minRepo  repository.MinimumStockRepository
	dispense *DispenseStockUseCase

	mu    sync.Mutex
	lines map[string]int
}

// NewCartUseCase construye el carrito de salidas.
func NewCartUseCase(
	invRepo repository.InventoryRepository,
	minRepo repository.MinimumStockRepository,
	dispense *DispenseStockUseCase,
) *CartUseCase {
	return &CartUseCase{
		invRepo:  invRepo,
		minRepo:  minRepo,
		dispense: dispense,
		lines:    map[string]int{},
	}
}

// Scan procesa un token de escáner ("codigo" o "N*codigo") y acumula la
// cantidad pendiente. Devuelve el código y la cantidad total pendiente.
func (uc *CartUseCase) Scan(ctx context.Context, token string) (string, int, error) {
	code, qty := domaininv.ParseScanToken(token)
	if code == "" {
		return "", 0, fmt.Errorf("%w: token de escaneo vacío", domain.ErrInvalidInput)
	}
	if qty <= 0 {
		return "", 0, fmt.Errorf("%w: multiplicador debe ser positivo", domain.ErrInvalidInput)
	}

	snap, err := loadSnapshot(ctx, uc.invRepo, uc.minRepo)
	if err != nil {
		return "", 0, err
	}
	if _, ok := snap.Inventory[code]; !ok {
		return "", 0, fmt.Errorf("%w: %s", domain.ErrProductNotFound, code)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	available := snap.TotalStock(code)
	if uc.lines[code]+qty > available {
		return "", 0, fmt.Errorf("%w: disponible %d, en carrito %d", domain.ErrInsufficientStock, available, uc.lines[code])
	}
	uc.lines[code] += qty
	return code, uc.lines[code], nil
}

// Lines devuelve las líneas actuales con nombre de producto y el total de
// unidades preparadas.
func (uc *CartUseCase) Lines(ctx context.Context) ([]CartLine, int, error) {
	snap, err := loadSnapshot(ctx, uc.invRepo, uc.minRepo)
	if err != nil {
		return nil, 0, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	codes := make([]string, 0, len(uc.lines))
	for code := range uc.lines {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]CartLine, 0, len(codes))
	total := 0
	for _, code := range codes {
		name := ""
		if master, ok := snap.Master(code); ok {
			name = master.Name
		}
		out = append(out, CartLine{Code: code, Name: name, Quantity: uc.lines[code]})
		total += uc.lines[code]
	}
	return out, total, nil
}

// Clear abandona el carrito sin aplicar ninguna salida.
func (uc *CartUseCase) Clear() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.lines = map[string]int{}
}

// Commit retira del inventario todas las cantidades preparadas, una salida
// FIFO por código, guarda el inventario una sola vez y agrega las líneas del
// libro. Devuelve las porciones consumidas para que el operador vea de qué
// lote salió cada unidad. El carrito se limpia únicamente si todo se aplicó.
func (uc *CartUseCase) Commit(ctx context.Context) ([]dto.DispensedSliceDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if len(uc.lines) == 0 {
		return nil, nil
	}

	snap, err := loadSnapshot(ctx, uc.invRepo, uc.minRepo)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(uc.lines))
	for code := range uc.lines {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	// Primero todas las mutaciones en memoria: si cualquier código falla
	// (stock cambió bajo nuestros pies), nada se persiste.
	type pending struct {
		master entity.ProductMaster
		slices []DispensedSlice
	}
	applied := make([]pending, 0, len(codes))
	var dispensed []dto.DispensedSliceDTO
	for _, code := range codes {
		master, _ := snap.Master(code)
		slices, err := dispenseInSnapshot(snap, code, uc.lines[code])
		if err != nil {
			return nil, fmt.Errorf("salida de %s: %w", code, err)
		}
		applied = append(applied, pending{master: master, slices: slices})
		for _, s := range slices {
			dispensed = append(dispensed, dto.DispensedSliceDTO{
				Code:       code,
				ExpiryDate: s.ExpiryDate,
				Taken:      s.Taken,
			})
		}
	}

	if err := uc.invRepo.SaveInventory(ctx, snap.Inventory); err != nil {
		return nil, fmt.Errorf("guardar inventario: %w", err)
	}
	var appendErrs []string
	for _, p := range applied {
		if err := uc.dispense.appendMovements(ctx, p.master, p.slices); err != nil {
			appendErrs = append(appendErrs, err.Error())
		}
	}
	if len(appendErrs) > 0 {
		// El inventario ya se guardó: la divergencia con el libro se reporta,
		// no se oculta.
		return nil, fmt.Errorf("inventario guardado pero el libro quedó incompleto: %s", strings.Join(appendErrs, "; "))
	}

	uc.lines = map[string]int{}
	return dispensed, nil
}
