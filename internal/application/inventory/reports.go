package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bymretail/inventario-api/internal/application/dto"
	"github.com/bymretail/inventario-api/internal/domain"
	"github.com/bymretail/inventario-api/internal/domain/entity"
	domaininv "github.com/bymretail/inventario-api/internal/domain/inventory"
	"github.com/bymretail/inventario-api/internal/domain/repository"
)

// ReportUseCase produce los reportes derivados del modelo: listado de
// inventario, maestros de producto, niveles de stock con semáforo, alertas de
// vencimiento y el historial de movimientos filtrado. Todos son de solo
// lectura; los umbrales de alerta llegan por parámetro y no se persisten.
type ReportUseCase struct {
	invRepo repository.InventoryRepository
	minRepo repository.MinimumStockRepository
	movRepo repository.MovementRepository
	now     func() time.Time
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(
	invRepo repository.InventoryRepository,
	minRepo repository.MinimumStockRepository,
	movRepo repository.MovementRepository,
) *ReportUseCase {
	return &ReportUseCase{
		invRepo: invRepo,
		minRepo: minRepo,
		movRepo: movRepo,
		now:     time.Now,
	}
}

// SetNow reemplaza el reloj del caso de uso. Pensado para tests que necesitan
// un "hoy" determinista en los reportes de vencimiento.
func (uc *ReportUseCase) SetNow(now func() time.Time) {
	uc.now = now
}

// ListInventory devuelve una fila por lote, con filtro opcional insensible a
// mayúsculas y acentos sobre código, nombre y marca.
func (uc *ReportUseCase) ListInventory(ctx context.Context, query string) ([]dto.InventoryRowDTO, error) {
	snap, err := loadSnapshot(ctx, uc.invRepo, uc.minRepo)
	if err != nil {
		return nil, err
	}
	needle := foldSearch(strings.TrimSpace(query))

	rows := []dto.InventoryRowDTO{}
	for _, code := range snap.sortedCodes() {
		master, _ := snap.Master(code)
		if needle != "" &&
			!strings.Contains(foldSearch(code), needle) &&
			!strings.Contains(foldSearch(master.Name), needle) &&
			!strings.Contains(foldSearch(master.Brand), needle) {
			continue
		}
		for _, lot := range snap.Inventory[code] {
			rows = append(rows, dto.InventoryRowDTO{
				Code:       code,
				Name:       lot.Name,
				Brand:      lot.Brand,
				Quantity:   lot.Quantity,
				ExpiryDate: lot.ExpiryDate,
				CostPrice:  lot.CostPrice,
				SalePrice:  lot.SalePrice,
			})
		}
	}
	return rows, nil
}

// ListProducts devuelve los registros maestros ordenados por nombre.
func (uc *ReportUseCase) ListProducts(ctx context.Context) ([]dto.ProductDTO, error) {
	snap, err := loadSnapshot(ctx, uc.invRepo, uc.minRepo)
	if err != nil {
		return nil, err
	}
	products := []dto.ProductDTO{}
	for _, code := range snap.sortedCodes() {
		master, ok := snap.Master(code)
		if !ok {
			continue
		}
		products = append(products, dto.ProductDTO{
			Code:       code,
			Name:       master.Name,
			Brand:      master.Brand,
			CostPrice:  master.CostPrice,
			SalePrice:  master.SalePrice,
			TotalStock: snap.TotalStock(code),
		})
	}
	sort.SliceStable(products, func(i, j int) bool {
		return foldSearch(products[i].Name) < foldSearch(products[j].Name)
	})
	return products, nil
}

// TotalStock devuelve el stock total de un código; 0 si no existe.
func (uc *ReportUseCase) TotalStock(ctx context.Context, code string) (int, error) {
	snap, err := loadSnapshot(ctx, uc.invRepo, uc.minRepo)
	if err != nil {
		return 0, err
	}
	return snap.TotalStock(strings.TrimSpace(code)), nil
}

// StockLevels devuelve una fila por código con umbral configurado, unido por
// izquierda con los totales del inventario: un umbral sin stock reporta total
// 0 (crítico) y nombre vacío.
func (uc *ReportUseCase) StockLevels(ctx context.Context) ([]dto.StockLevelDTO, error) {
	snap, err := loadSnapshot(ctx, uc.invRepo, uc.minRepo)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(snap.MinimumStock))
	for code := range snap.MinimumStock {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	levels := make([]dto.StockLevelDTO, 0, len(codes))
	for _, code := range codes {
		total := snap.TotalStock(code)
		name := ""
		if master, ok := snap.Master(code); ok {
			name = master.Name
		}
		levels = append(levels, dto.StockLevelDTO{
			Code:         code,
			Name:         name,
			MinimumStock: snap.MinimumStock[code],
			TotalStock:   total,
			Status:       domaininv.Semaphore(total, snap.MinimumStock[code]),
		})
	}
	return levels, nil
}

// ExpiryAlerts clasifica cada lote fechado contra los umbrales de días dados
// y devuelve las filas reportables (los lotes "none" y sin fecha se omiten),
// ordenadas por días restantes ascendente.
func (uc *ReportUseCase) ExpiryAlerts(ctx context.Context, criticalDays, warningDays, preventiveDays int) ([]dto.ExpiryAlertDTO, error) {
	if criticalDays < 0 || warningDays < 0 || preventiveDays < 0 {
		return nil, fmt.Errorf("%w: umbrales de días negativos", domain.ErrInvalidInput)
	}
	snap, err := loadSnapshot(ctx, uc.invRepo, uc.minRepo)
	if err != nil {
		return nil, err
	}
	today := uc.now()

	alerts := []dto.ExpiryAlertDTO{}
	for _, code := range snap.sortedCodes() {
		for _, lot := range snap.Inventory[code] {
			tier, days, ok := domaininv.ExpiryTier(lot.ExpiryDate, today, criticalDays, warningDays, preventiveDays)
			if !ok || tier == entity.ExpiryTierNone {
				continue
			}
			alerts = append(alerts, dto.ExpiryAlertDTO{
				Code:          code,
				Name:          lot.Name,
				LotQuantity:   lot.Quantity,
				ExpiryDate:    lot.ExpiryDate,
				DaysRemaining: days,
				Tier:          tier,
			})
		}
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].DaysRemaining < alerts[j].DaysRemaining
	})
	return alerts, nil
}

// MovementFilter filtros del reporte de movimientos. From/ToExclusive acotan
// el rango temporal; Types y Code vacíos no filtran.
type MovementFilter struct {
	From        time.Time
	ToExclusive time.Time
	Types       []string // in, out
	Code        string
}

// Movements devuelve las líneas del libro que cumplen el filtro, en el orden
// del libro (nunca se reordena).
func (uc *ReportUseCase) Movements(ctx context.Context, filter MovementFilter) ([]dto.MovementDTO, error) {
	movs, err := uc.movRepo.LoadMovements(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: movimientos: %v", domain.ErrIncompleteLoad, err)
	}
	types := map[string]bool{}
	for _, t := range filter.Types {
		types[strings.ToLower(strings.TrimSpace(t))] = true
	}
	code := strings.TrimSpace(filter.Code)

	out := []dto.MovementDTO{}
	for _, m := range movs {
		if !filter.From.IsZero() && m.Timestamp.Before(filter.From) {
			continue
		}
		if !filter.ToExclusive.IsZero() && !m.Timestamp.Before(filter.ToExclusive) {
			continue
		}
		if len(types) > 0 && !types[m.Type] {
			continue
		}
		if code != "" && m.Code != code {
			continue
		}
		out = append(out, dto.MovementDTO{
			ID:         m.ID,
			Timestamp:  m.Timestamp,
			Type:       m.Type,
			Code:       m.Code,
			Name:       m.Name,
			Quantity:   m.Quantity,
			ExpiryDate: m.ExpiryDate,
			CostPrice:  m.CostPrice,
			SalePrice:  m.SalePrice,
		})
	}
	return out, nil
}
