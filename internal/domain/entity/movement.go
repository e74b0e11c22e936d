package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// Movement es una línea inmutable del libro de movimientos. Una entrada genera
// una línea con la cantidad completa; una salida genera una línea por cada
// lote consumido (la cantidad es la porción FIFO tomada de ese lote, no
// necesariamente el total solicitado).
type Movement struct {
	ID         string
	Timestamp  time.Time
	Type       string // in | out
	Code       string
	Name       string
	Quantity   int
	ExpiryDate string
	CostPrice  decimal.Decimal
	SalePrice  decimal.Decimal
}
