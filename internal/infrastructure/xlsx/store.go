// Package xlsx persiste las tres colecciones en libros de Excel locales
// (inventario.xlsx, stock_minimo.xlsx, movimientos.xlsx), el modo de
// operación sin conexión de la aplicación. Las cargas toleran libros
// inexistentes; los guardados reemplazan el libro completo.
package xlsx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/bymretail/inventario-api/internal/domain/entity"
	"github.com/bymretail/inventario-api/internal/infrastructure/record"
)

// Nombres de archivo de cada libro.
const (
	inventoryFile    = record.InventorySheet + ".xlsx"
	minimumStockFile = record.MinimumStockSheet + ".xlsx"
	movementFile     = record.MovementSheet + ".xlsx"
)

// sheetName pestaña de datos dentro de cada libro.
const sheetName = "datos"

// Store implementa los tres repositorios sobre libros xlsx en un directorio.
type Store struct {
	dir string
}

// NewStore construye el almacén. El directorio debe existir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// LoadInventory carga el libro de inventario; un archivo inexistente produce
// un mapa vacío. El orden de inserción de lotes por código es el orden de
// las filas.
func (s *Store) LoadInventory(_ context.Context) (map[string][]*entity.Lot, error) {
	rows, err := s.readRows(inventoryFile)
	if err != nil {
		return nil, err
	}
	inv := map[string][]*entity.Lot{}
	for _, row := range rows {
		code, lot, ok := record.LotFromRow(row)
		if !ok {
			continue
		}
		inv[code] = append(inv[code], lot)
	}
	return inv, nil
}

// SaveInventory reescribe el libro de inventario completo, una fila por lote.
func (s *Store) SaveInventory(_ context.Context, inv map[string][]*entity.Lot) error {
	rows := make([][]interface{}, 0, len(inv))
	for _, code := range sortedKeys(inv) {
		for _, lot := range inv[code] {
			rows = append(rows, record.LotToRow(code, lot))
		}
	}
	return s.writeWorkbook(inventoryFile, record.InventoryHeaders, rows)
}

// LoadMinimumStock carga los umbrales mínimos.
func (s *Store) LoadMinimumStock(_ context.Context) (map[string]int, error) {
	rows, err := s.readRows(minimumStockFile)
	if err != nil {
		return nil, err
	}
	min := map[string]int{}
	for _, row := range rows {
		code, m, ok := record.MinimumFromRow(row)
		if !ok {
			continue
		}
		min[code] = m
	}
	return min, nil
}

// SaveMinimumStock reescribe el libro de stock mínimo completo.
func (s *Store) SaveMinimumStock(_ context.Context, min map[string]int) error {
	rows := make([][]interface{}, 0, len(min))
	for _, code := range sortedIntKeys(min) {
		rows = append(rows, record.MinimumToRow(code, min[code]))
	}
	return s.writeWorkbook(minimumStockFile, record.MinimumStockHeaders, rows)
}

// LoadMovements carga el libro de movimientos en el orden del libro.
func (s *Store) LoadMovements(_ context.Context) ([]*entity.Movement, error) {
	rows, err := s.readRows(movementFile)
	if err != nil {
		return nil, err
	}
	movs := make([]*entity.Movement, 0, len(rows))
	for _, row := range rows {
		if m, ok := record.MovementFromRow(row); ok {
			movs = append(movs, m)
		}
	}
	return movs, nil
}

// AppendMovement agrega una fila al final del libro de movimientos, creándolo
// con encabezados si no existe. La escritura es atómica por llamada (el libro
// se guarda completo o no se guarda).
func (s *Store) AppendMovement(_ context.Context, mov *entity.Movement) error {
	path := filepath.Join(s.dir, movementFile)
	f, sheet, err := openOrCreate(path, record.MovementHeaders)
	if err != nil {
		return err
	}
	defer f.Close()

	existing, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("xlsx: leer %s: %w", movementFile, err)
	}
	if err := writeRow(f, sheet, len(existing)+1, record.MovementToRow(mov)); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: guardar %s: %w", movementFile, err)
	}
	return nil
}

// readRows devuelve las filas de datos (sin encabezado) del libro indicado, o
// nil si el libro no existe.
func (s *Store) readRows(file string) ([][]string, error) {
	path := filepath.Join(s.dir, file)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir %s: %w", file, err)
	}
	defer f.Close()

	sheet := sheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0) // libros legados sin pestaña "datos"
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer %s: %w", file, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

// writeWorkbook crea un libro nuevo con encabezados y filas y lo guarda sobre
// el archivo destino.
func (s *Store) writeWorkbook(file string, headers []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := writeRow(f, sheetName, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeRow(f, sheetName, i+2, row); err != nil {
			return err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetColWidth(sheetName, "A", lastCol, 16)

	if err := f.SaveAs(filepath.Join(s.dir, file)); err != nil {
		return fmt.Errorf("xlsx: guardar %s: %w", file, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	for i, v := range values {
		cellRef, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		if err := f.SetCellValue(sheet, cellRef, v); err != nil {
			return fmt.Errorf("xlsx: escribir celda %s: %w", cellRef, err)
		}
	}
	return nil
}

// openOrCreate abre el libro o lo crea con la fila de encabezados.
func openOrCreate(path string, headers []string) (*excelize.File, string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f := excelize.NewFile()
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return nil, "", fmt.Errorf("xlsx: %w", err)
		}
		header := make([]interface{}, len(headers))
		for i, h := range headers {
			header[i] = h
		}
		if err := writeRow(f, sheetName, 1, header); err != nil {
			return nil, "", err
		}
		return f, sheetName, nil
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: abrir %s: %w", filepath.Base(path), err)
	}
	sheet := sheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}
	return f, sheet, nil
}
