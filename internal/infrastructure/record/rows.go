// Package record traduce entre las entidades del dominio y las filas planas
// de las hojas de cálculo (xlsx y Google Sheets comparten el mismo layout,
// heredado de los libros originales). La normalización de celdas sueltas
// ocurre aquí, una sola vez, en el borde del adaptador: una celda malformada
// degrada a su valor por defecto y nunca invalida el registro completo.
package record

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bymretail/inventario-api/internal/domain/entity"
	domaininv "github.com/bymretail/inventario-api/internal/domain/inventory"
)

// Encabezados de cada libro/pestaña.
var (
	InventoryHeaders    = []string{"codigo", "nombre", "marca", "cantidad", "fecha_vencimiento", "precio_costo", "precio_venta"}
	MinimumStockHeaders = []string{"codigo", "stock_min"}
	MovementHeaders     = []string{"timestamp", "tipo", "codigo", "nombre", "cantidad", "fecha_vencimiento", "precio_costo", "precio_venta"}
)

// Nombres de los libros xlsx / pestañas de la hoja de Google.
const (
	InventorySheet    = "inventario"
	MinimumStockSheet = "stock_minimo"
	MovementSheet     = "movimientos"
)

// TimestampLayout formato de los timestamps del libro de movimientos.
const TimestampLayout = "2006-01-02T15:04:05"

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// LotFromRow interpreta una fila de inventario. ok es false solo si el código
// está en blanco (fila vacía o separadora); cualquier otra celda malformada
// degrada a su valor por defecto.
func LotFromRow(row []string) (code string, lot *entity.Lot, ok bool) {
	code = cell(row, 0)
	if code == "" {
		return "", nil, false
	}
	return code, &entity.Lot{
		Name:       cell(row, 1),
		Brand:      cell(row, 2),
		Quantity:   domaininv.ToInt(cell(row, 3), 0),
		ExpiryDate: domaininv.NormalizeDate(cell(row, 4)),
		CostPrice:  domaininv.ToDecimal(cell(row, 5), decimal.Zero),
		SalePrice:  domaininv.ToDecimal(cell(row, 6), decimal.Zero),
	}, true
}

// LotToRow serializa un lote a fila.
func LotToRow(code string, l *entity.Lot) []interface{} {
	return []interface{}{code, l.Name, l.Brand, l.Quantity, l.ExpiryDate, l.CostPrice.String(), l.SalePrice.String()}
}

// MinimumFromRow interpreta una fila de stock mínimo.
func MinimumFromRow(row []string) (code string, min int, ok bool) {
	code = cell(row, 0)
	if code == "" {
		return "", 0, false
	}
	return code, domaininv.ToInt(cell(row, 1), 0), true
}

// MinimumToRow serializa un umbral a fila.
func MinimumToRow(code string, min int) []interface{} {
	return []interface{}{code, min}
}

// MovementFromRow interpreta una fila del libro de movimientos.
func MovementFromRow(row []string) (*entity.Movement, bool) {
	ts := cell(row, 0)
	if ts == "" {
		return nil, false
	}
	return &entity.Movement{
		Timestamp:  ParseTimestamp(ts),
		Type:       cell(row, 1),
		Code:       cell(row, 2),
		Name:       cell(row, 3),
		Quantity:   domaininv.ToInt(cell(row, 4), 0),
		ExpiryDate: domaininv.NormalizeDate(cell(row, 5)),
		CostPrice:  domaininv.ToDecimal(cell(row, 6), decimal.Zero),
		SalePrice:  domaininv.ToDecimal(cell(row, 7), decimal.Zero),
	}, true
}

// MovementToRow serializa una línea del libro a fila.
func MovementToRow(m *entity.Movement) []interface{} {
	return []interface{}{
		m.Timestamp.Format(TimestampLayout),
		m.Type,
		m.Code,
		m.Name,
		m.Quantity,
		m.ExpiryDate,
		m.CostPrice.String(),
		m.SalePrice.String(),
	}
}

// ParseTimestamp acepta los formatos históricos de timestamp; un valor no
// interpretable degrada al cero de time.Time.
func ParseTimestamp(s string) time.Time {
	for _, layout := range []string{TimestampLayout, time.RFC3339, "2006-01-02 15:04:05", domaininv.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
