// Package gsheet persiste las tres colecciones en una hoja de cálculo de
// Google (pestañas inventario, stock_minimo y movimientos), el modo en la
// nube de la aplicación. La hoja se abre por ID con credenciales de cuenta
// de servicio; las pestañas faltantes se crean al primer guardado.
package gsheet

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/bymretail/inventario-api/internal/domain/entity"
	"github.com/bymretail/inventario-api/internal/infrastructure/record"
)

// Store implementa los tres repositorios sobre la API de Sheets v4.
type Store struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewStore abre el servicio de Sheets. credentialsFile puede ser vacío para
// usar Application Default Credentials.
func NewStore(ctx context.Context, spreadsheetID, credentialsFile string) (*Store, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gsheet: crear servicio: %w", err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// LoadInventory carga la pestaña de inventario; una pestaña inexistente
// produce un mapa vacío.
func (s *Store) LoadInventory(ctx context.Context) (map[string][]*entity.Lot, error) {
	rows, err := s.readRows(ctx, record.InventorySheet)
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

// SaveInventory reemplaza la pestaña de inventario completa.
func (s *Store) SaveInventory(ctx context.Context, inv map[string][]*entity.Lot) error {
	codes := make([]string, 0, len(inv))
	for code := range inv {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rows := [][]interface{}{}
	for _, code := range codes {
		for _, lot := range inv[code] {
			rows = append(rows, record.LotToRow(code, lot))
		}
	}
	return s.replaceSheet(ctx, record.InventorySheet, record.InventoryHeaders, rows)
}

// LoadMinimumStock carga la pestaña de umbrales mínimos.
func (s *Store) LoadMinimumStock(ctx context.Context) (map[string]int, error) {
	rows, err := s.readRows(ctx, record.MinimumStockSheet)
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

// SaveMinimumStock reemplaza la pestaña de stock mínimo completa.
func (s *Store) SaveMinimumStock(ctx context.Context, min map[string]int) error {
	codes := make([]string, 0, len(min))
	for code := range min {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rows := make([][]interface{}, 0, len(codes))
	for _, code := range codes {
		rows = append(rows, record.MinimumToRow(code, min[code]))
	}
	return s.replaceSheet(ctx, record.MinimumStockSheet, record.MinimumStockHeaders, rows)
}

// LoadMovements carga la pestaña de movimientos en el orden de la hoja.
func (s *Store) LoadMovements(ctx context.Context) ([]*entity.Movement, error) {
	rows, err := s.readRows(ctx, record.MovementSheet)
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

// AppendMovement agrega una fila al final de la pestaña de movimientos con
// una sola llamada de Append (atómica por llamada en la API de Sheets).
func (s *Store) AppendMovement(ctx context.Context, mov *entity.Movement) error {
	if err := s.ensureSheet(ctx, record.MovementSheet, record.MovementHeaders); err != nil {
		return err
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{record.MovementToRow(mov)}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, record.MovementSheet+"!A1", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gsheet: append en %s: %w", record.MovementSheet, err)
	}
	return nil
}

// readRows devuelve las filas de datos (sin encabezado) de una pestaña, o nil
// si la pestaña no existe.
func (s *Store) readRows(ctx context.Context, sheet string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheet+"!A1:H").Context(ctx).Do()
	if err != nil {
		if isMissingSheet(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("gsheet: leer %s: %w", sheet, err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// replaceSheet limpia la pestaña y escribe encabezados más filas.
func (s *Store) replaceSheet(ctx context.Context, sheet string, headers []string, rows [][]interface{}) error {
	if err := s.ensureSheet(ctx, sheet, headers); err != nil {
		return err
	}
	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, sheet+"!A1:H", &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gsheet: limpiar %s: %w", sheet, err)
	}
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	vr := &sheets.ValueRange{Values: append([][]interface{}{header}, rows...)}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, sheet+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gsheet: escribir %s: %w", sheet, err)
	}
	return nil
}

// ensureSheet crea la pestaña con su fila de encabezados si no existe.
func (s *Store) ensureSheet(ctx context.Context, sheet string, headers []string) error {
	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gsheet: metadatos de la hoja: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == sheet {
			return nil
		}
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: sheet},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gsheet: crear pestaña %s: %w", sheet, err)
	}
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{header}}
	if _, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, sheet+"!A1", vr).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("gsheet: encabezados de %s: %w", sheet, err)
	}
	return nil
}

// isMissingSheet detecta el error de rango sobre una pestaña inexistente.
func isMissingSheet(err error) bool {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code == 400 && strings.Contains(gErr.Message, "Unable to parse range")
	}
	return false
}
