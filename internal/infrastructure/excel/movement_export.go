// Package excel exporta el reporte de movimientos como libro xlsx
// descargable, para quienes siguen trabajando los cierres en Excel.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/bymretail/inventario-api/internal/application/dto"
	"github.com/bymretail/inventario-api/internal/infrastructure/record"
)

// MovementExporter serializa movimientos a xlsx.
type MovementExporter struct{}

// NewMovementExporter construye el exportador.
func NewMovementExporter() *MovementExporter { return &MovementExporter{} }

// WriteTo escribe el libro con una fila por movimiento en w.
func (e *MovementExporter) WriteTo(w io.Writer, movs []dto.MovementDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for i, h := range record.MovementHeaders {
		cellRef, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("excel: %w", err)
		}
		if err := f.SetCellValue(sheet, cellRef, h); err != nil {
			return fmt.Errorf("excel: encabezado %s: %w", h, err)
		}
	}

	for rowIdx, m := range movs {
		values := []interface{}{
			m.Timestamp.Format(record.TimestampLayout),
			m.Type,
			m.Code,
			m.Name,
			m.Quantity,
			m.ExpiryDate,
			m.CostPrice.String(),
			m.SalePrice.String(),
		}
		for colIdx, v := range values {
			cellRef, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("excel: %w", err)
			}
			if err := f.SetCellValue(sheet, cellRef, v); err != nil {
				return fmt.Errorf("excel: escribir celda %s: %w", cellRef, err)
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(record.MovementHeaders))
	_ = f.SetColWidth(sheet, "A", lastCol, 18)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("excel: escribir libro: %w", err)
	}
	return nil
}
