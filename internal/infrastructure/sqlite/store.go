// Package sqlite persiste las tres colecciones en una base SQLite embebida,
// útil cuando los libros de Excel se quedan cortos (historiales largos de
// movimientos) pero sin pasar a un servidor de base de datos.
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/bymretail/inventario-api/internal/domain/entity"
	domaininv "github.com/bymretail/inventario-api/internal/domain/inventory"
	"github.com/bymretail/inventario-api/internal/infrastructure/record"
)

const schema = `
CREATE TABLE IF NOT EXISTS inventario (
	codigo            TEXT NOT NULL,
	nombre            TEXT NOT NULL DEFAULT '',
	marca             TEXT NOT NULL DEFAULT '',
	cantidad          INTEGER NOT NULL DEFAULT 0,
	fecha_vencimiento TEXT NOT NULL DEFAULT '',
	precio_costo      TEXT NOT NULL DEFAULT '0',
	precio_venta      TEXT NOT NULL DEFAULT '0'
);
CREATE TABLE IF NOT EXISTS stock_minimo (
	codigo    TEXT PRIMARY KEY,
	stock_min INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS movimientos (
	id                TEXT PRIMARY KEY,
	timestamp         TEXT NOT NULL,
	tipo              TEXT NOT NULL,
	codigo            TEXT NOT NULL,
	nombre            TEXT NOT NULL DEFAULT '',
	cantidad          INTEGER NOT NULL DEFAULT 0,
	fecha_vencimiento TEXT NOT NULL DEFAULT '',
	precio_costo      TEXT NOT NULL DEFAULT '0',
	precio_venta      TEXT NOT NULL DEFAULT '0'
);
`

// Store implementa los tres repositorios sobre SQLite.
type Store struct {
	db *sqlx.DB
}

// NewStore abre (o crea) la base y asegura el esquema.
func NewStore(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: crear esquema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close cierra la conexión.
func (s *Store) Close() error { return s.db.Close() }

type lotRow struct {
	Codigo           string `db:"codigo"`
	Nombre           string `db:"nombre"`
	Marca            string `db:"marca"`
	Cantidad         int    `db:"cantidad"`
	FechaVencimiento string `db:"fecha_vencimiento"`
	PrecioCosto      string `db:"precio_costo"`
	PrecioVenta      string `db:"precio_venta"`
}

type movementRow struct {
	ID               string `db:"id"`
	Timestamp        string `db:"timestamp"`
	Tipo             string `db:"tipo"`
	Codigo           string `db:"codigo"`
	Nombre           string `db:"nombre"`
	Cantidad         int    `db:"cantidad"`
	FechaVencimiento string `db:"fecha_vencimiento"`
	PrecioCosto      string `db:"precio_costo"`
	PrecioVenta      string `db:"precio_venta"`
}

// LoadInventory carga el inventario completo. El rowid de SQLite preserva el
// orden de inserción de los lotes de cada código.
func (s *Store) LoadInventory(ctx context.Context) (map[string][]*entity.Lot, error) {
	var rows []lotRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT codigo, nombre, marca, cantidad, fecha_vencimiento, precio_costo, precio_venta FROM inventario ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("sqlite: cargar inventario: %w", err)
	}
	inv := map[string][]*entity.Lot{}
	for _, r := range rows {
		inv[r.Codigo] = append(inv[r.Codigo], &entity.Lot{
			Name:       r.Nombre,
			Brand:      r.Marca,
			Quantity:   r.Cantidad,
			ExpiryDate: domaininv.NormalizeDate(r.FechaVencimiento),
			CostPrice:  domaininv.ToDecimal(r.PrecioCosto, decimal.Zero),
			SalePrice:  domaininv.ToDecimal(r.PrecioVenta, decimal.Zero),
		})
	}
	return inv, nil
}

// SaveInventory reemplaza la tabla completa dentro de una transacción.
func (s *Store) SaveInventory(ctx context.Context, inv map[string][]*entity.Lot) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: iniciar tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM inventario`); err != nil {
		return fmt.Errorf("sqlite: vaciar inventario: %w", err)
	}
	const insert = `INSERT INTO inventario (codigo, nombre, marca, cantidad, fecha_vencimiento, precio_costo, precio_venta) VALUES (?, ?, ?, ?, ?, ?, ?)`
	for code, lots := range inv {
		for _, l := range lots {
			if _, err := tx.ExecContext(ctx, insert, code, l.Name, l.Brand, l.Quantity, l.ExpiryDate, l.CostPrice.String(), l.SalePrice.String()); err != nil {
				return fmt.Errorf("sqlite: insertar lote de %s: %w", code, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit inventario: %w", err)
	}
	return nil
}

// LoadMinimumStock carga los umbrales mínimos.
func (s *Store) LoadMinimumStock(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Codigo   string `db:"codigo"`
		StockMin int    `db:"stock_min"`
	}
	if err := s.db.SelectContext(ctx, &rows, `SELECT codigo, stock_min FROM stock_minimo`); err != nil {
		return nil, fmt.Errorf("sqlite: cargar stock mínimo: %w", err)
	}
	min := make(map[string]int, len(rows))
	for _, r := range rows {
		min[r.Codigo] = r.StockMin
	}
	return min, nil
}

// SaveMinimumStock reemplaza la tabla completa dentro de una transacción.
func (s *Store) SaveMinimumStock(ctx context.Context, min map[string]int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: iniciar tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stock_minimo`); err != nil {
		return fmt.Errorf("sqlite: vaciar stock mínimo: %w", err)
	}
	for code, m := range min {
		if _, err := tx.ExecContext(ctx, `INSERT INTO stock_minimo (codigo, stock_min) VALUES (?, ?)`, code, m); err != nil {
			return fmt.Errorf("sqlite: insertar umbral de %s: %w", code, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit stock mínimo: %w", err)
	}
	return nil
}

// LoadMovements carga el libro en orden de inserción.
func (s *Store) LoadMovements(ctx context.Context) ([]*entity.Movement, error) {
	var rows []movementRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, timestamp, tipo, codigo, nombre, cantidad, fecha_vencimiento, precio_costo, precio_venta FROM movimientos ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("sqlite: cargar movimientos: %w", err)
	}
	movs := make([]*entity.Movement, 0, len(rows))
	for _, r := range rows {
		movs = append(movs, &entity.Movement{
			ID:         r.ID,
			Timestamp:  record.ParseTimestamp(r.Timestamp),
			Type:       r.Tipo,
			Code:       r.Codigo,
			Name:       r.Nombre,
			Quantity:   r.Cantidad,
			ExpiryDate: domaininv.NormalizeDate(r.FechaVencimiento),
			CostPrice:  domaininv.ToDecimal(r.PrecioCosto, decimal.Zero),
			SalePrice:  domaininv.ToDecimal(r.PrecioVenta, decimal.Zero),
		})
	}
	return movs, nil
}

// AppendMovement inserta una línea; atómico por sentencia.
func (s *Store) AppendMovement(ctx context.Context, mov *entity.Movement) error {
	const insert = `INSERT INTO movimientos (id, timestamp, tipo, codigo, nombre, cantidad, fecha_vencimiento, precio_costo, precio_venta) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, insert,
		mov.ID,
		mov.Timestamp.Format(record.TimestampLayout),
		mov.Type,
		mov.Code,
		mov.Name,
		mov.Quantity,
		mov.ExpiryDate,
		mov.CostPrice.String(),
		mov.SalePrice.String(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insertar movimiento: %w", err)
	}
	return nil
}
