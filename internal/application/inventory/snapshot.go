// Package inventory implementa los casos de uso del motor de inventario:
// entradas con fusión de lotes, salidas FIFO con carrito de escaneo, y los
// reportes derivados. Cada operación carga un Snapshot fresco desde los
// repositorios, lo muta y lo persiste explícitamente; no hay estado de
// colecciones compartido entre peticiones.
package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/bymretail/inventario-api/internal/domain"
	"github.com/bymretail/inventario-api/internal/domain/entity"
	domaininv "github.com/bymretail/inventario-api/internal/domain/inventory"
	"github.com/bymretail/inventario-api/internal/domain/repository"
)

// Snapshot es el estado en memoria de un ciclo de interacción: inventario y
// umbrales mínimos cargados al inicio de la operación. Las mutaciones son
// provisionales hasta que se guardan; un Snapshot nunca sobrevive a su ciclo.
type Snapshot struct {
	Inventory    map[string][]*entity.Lot
	MinimumStock map[string]int
}

// loadSnapshot carga ambas colecciones. Si cualquiera falla, la operación se
// rehúsa a continuar con un modelo incompleto.
func loadSnapshot(ctx context.Context, invRepo repository.InventoryRepository, minRepo repository.MinimumStockRepository) (*Snapshot, error) {
	inv, err := invRepo.LoadInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: inventario: %v", domain.ErrIncompleteLoad, err)
	}
	min, err := minRepo.LoadMinimumStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: stock mínimo: %v", domain.ErrIncompleteLoad, err)
	}
	if inv == nil {
		inv = map[string][]*entity.Lot{}
	}
	if min == nil {
		min = map[string]int{}
	}
	return &Snapshot{Inventory: inv, MinimumStock: min}, nil
}

// TotalStock devuelve el stock total de un código; 0 si no existe.
func (s *Snapshot) TotalStock(code string) int {
	return domaininv.TotalStock(s.Inventory[code])
}

// Minimum devuelve el umbral configurado; 0 si no hay umbral.
func (s *Snapshot) Minimum(code string) int {
	return s.MinimumStock[code]
}

// Master devuelve el registro maestro del producto, derivado del primer lote
// de su lista. El primer lote es autoritativo para nombre, marca y precios.
func (s *Snapshot) Master(code string) (entity.ProductMaster, bool) {
	lots := s.Inventory[code]
	if len(lots) == 0 {
		return entity.ProductMaster{}, false
	}
	first := lots[0]
	return entity.ProductMaster{
		Code:      code,
		Name:      first.Name,
		Brand:     first.Brand,
		CostPrice: first.CostPrice,
		SalePrice: first.SalePrice,
	}, true
}

// sortedCodes devuelve los códigos del inventario en orden estable.
func (s *Snapshot) sortedCodes() []string {
	codes := make([]string, 0, len(s.Inventory))
	for code := range s.Inventory {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// foldTransformer elimina marcas diacríticas para búsquedas insensibles a
// acentos ("azúcar" y "azucar" deben coincidir).
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldSearch prepara un texto para comparación de búsqueda.
func foldSearch(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}
