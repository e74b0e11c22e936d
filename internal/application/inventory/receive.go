package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bymretail/inventario-api/internal/domain"
	"github.com/bymretail/inventario-api/internal/domain/entity"
	domaininv "github.com/bymretail/inventario-api/internal/domain/inventory"
	"github.com/bymretail/inventario-api/internal/domain/repository"
)

// ConflictPolicy define qué hacer cuando una entrada sobre un producto
// existente trae nombre/marca/precios distintos a los del registro maestro.
type ConflictPolicy string

const (
	// PolicyKeep conserva el maestro existente e ignora los campos de la
	// entrada (comportamiento histórico).
	PolicyKeep ConflictPolicy = "keep"
	// PolicyOverwrite actualiza el primer lote con los campos de la entrada.
	PolicyOverwrite ConflictPolicy = "overwrite"
)

// ReceiveInput parámetros de una entrada de stock.
type ReceiveInput struct {
	Code         string
	Name         string
	Brand        string
	Quantity     int
	ExpiryDate   string // se normaliza; vacío = sin vencimiento
	CostPrice    decimal.Decimal
	SalePrice    decimal.Decimal
	MinimumStock *int // nil = no tocar el umbral
}

// ReceiveResult lote afectado por la entrada.
type ReceiveResult struct {
	Lot        *entity.Lot
	Merged     bool // true si se sumó a un lote existente
	NewProduct bool
}

// ReceiveStockUseCase registra entradas de stock: fusiona en el lote de la
// misma fecha de vencimiento o crea uno nuevo, actualiza el umbral mínimo
// cuando corresponde y agrega la línea al libro de movimientos. Valida todo
// antes de mutar: o los tres efectos aterrizan, o ninguno.
type ReceiveStockUseCase struct {
	invRepo repository.InventoryRepository
	minRepo repository.MinimumStockRepository
	movRepo repository.MovementRepository
	policy  ConflictPolicy
	now     func() time.Time
}

// NewReceiveStockUseCase construye el caso de uso.
func NewReceiveStockUseCase(
	invRepo repository.InventoryRepository,
	minRepo repository.MinimumStockRepository,
	movRepo repository.MovementRepository,
	policy ConflictPolicy,
) *ReceiveStockUseCase {
	if policy == "" {
		policy = PolicyKeep
	}
	return &ReceiveStockUseCase{
		invRepo: invRepo,
		minRepo: minRepo,
		movRepo: movRepo,
		policy:  policy,
		now:     time.Now,
	}
}

// Receive ejecuta la entrada y devuelve el lote afectado (nuevo o fusionado).
func (uc *ReceiveStockUseCase) Receive(ctx context.Context, in ReceiveInput) (*ReceiveResult, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: código vacío", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
	}
	if in.CostPrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	if in.MinimumStock != nil && *in.MinimumStock < 0 {
		return nil, fmt.Errorf("%w: stock mínimo negativo", domain.ErrInvalidInput)
	}
	expiry, parsed := domaininv.NormalizeDateOK(in.ExpiryDate)
	if !parsed {
		// La fecha venía con contenido pero no es interpretable: en una ruta
		// de validación el degradado a "" debe rechazarse, no ocultarse.
		return nil, fmt.Errorf("%w: fecha de vencimiento no interpretable: %q", domain.ErrInvalidInput, in.ExpiryDate)
	}

	snap, err := loadSnapshot(ctx, uc.invRepo, uc.minRepo)
	if err != nil {
		return nil, err
	}

	lots, exists := snap.Inventory[code]
	if !exists && (strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Brand) == "") {
		return nil, fmt.Errorf("%w: nombre y marca son obligatorios para un producto nuevo", domain.ErrInvalidInput)
	}

	result := &ReceiveResult{NewProduct: !exists}
	switch {
	case !exists:
		lot := &entity.Lot{
			Name:       in.Name,
			Brand:      in.Brand,
			Quantity:   in.Quantity,
			ExpiryDate: expiry,
			CostPrice:  in.CostPrice,
			SalePrice:  in.SalePrice,
		}
		snap.Inventory[code] = []*entity.Lot{lot}
		if in.MinimumStock != nil {
			snap.MinimumStock[code] = *in.MinimumStock
		}
		result.Lot = lot

	default:
		// Fusión por igualdad exacta de la clave de vencimiento normalizada
		// (la cadena vacía es una clave distinta, "sin vencimiento").
		var existing *entity.Lot
		for _, l := range lots {
			if l.ExpiryDate == expiry {
				existing = l
				break
			}
		}
		if existing != nil {
			existing.Quantity += in.Quantity
			result.Lot = existing
			result.Merged = true
		} else {
			lot := &entity.Lot{
				Name:       in.Name,
				Brand:      in.Brand,
				Quantity:   in.Quantity,
				ExpiryDate: expiry,
				CostPrice:  in.CostPrice,
				SalePrice:  in.SalePrice,
			}
			snap.Inventory[code] = append(lots, lot)
			// El umbral solo se sobreescribe cuando la entrada crea un lote.
			if in.MinimumStock != nil {
				snap.MinimumStock[code] = *in.MinimumStock
			}
			result.Lot = lot
		}
		if uc.policy == PolicyOverwrite {
			uc.overwriteMaster(snap.Inventory[code][0], in)
		}
	}

	if err := uc.invRepo.SaveInventory(ctx, snap.Inventory); err != nil {
		return nil, fmt.Errorf("guardar inventario: %w", err)
	}
	if err := uc.minRepo.SaveMinimumStock(ctx, snap.MinimumStock); err != nil {
		return nil, fmt.Errorf("guardar stock mínimo: %w", err)
	}
	// El nombre del libro es el del maestro: una fusión sobre un lote no-primero
	// podría llevar una copia desactualizada.
	master, _ := snap.Master(code)
	mov := &entity.Movement{
		ID:         uuid.New().String(),
		Timestamp:  uc.now(),
		Type:       entity.MovementTypeIn,
		Code:       code,
		Name:       master.Name,
		Quantity:   in.Quantity,
		ExpiryDate: expiry,
		CostPrice:  in.CostPrice,
		SalePrice:  in.SalePrice,
	}
	if err := uc.movRepo.AppendMovement(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	return result, nil
}

// overwriteMaster aplica PolicyOverwrite sobre el primer lote cuando la
// entrada trae campos de presentación no vacíos.
func (uc *ReceiveStockUseCase) overwriteMaster(first *entity.Lot, in ReceiveInput) {
	if name := strings.TrimSpace(in.Name); name != "" {
		first.Name = name
	}
	if brand := strings.TrimSpace(in.Brand); brand != "" {
		first.Brand = brand
	}
	if in.CostPrice.IsPositive() {
		first.CostPrice = in.CostPrice
	}
	if in.SalePrice.IsPositive() {
		first.SalePrice = in.SalePrice
	}
}
