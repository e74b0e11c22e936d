package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementDTO una línea del reporte de movimientos.
type MovementDTO struct {
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Type       string          `json:"type"` // in | out
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	ExpiryDate string          `json:"expiry_date"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	SalePrice  decimal.Decimal `json:"sale_price"`
}

// StockLevelDTO una fila del reporte de niveles de stock.
type StockLevelDTO struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	MinimumStock int    `json:"minimum_stock"`
	TotalStock   int    `json:"total_stock"`
	Status       string `json:"status"` // critical | warning | optimal
}

// ExpiryAlertDTO una fila del reporte de alertas de vencimiento.
type ExpiryAlertDTO struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	LotQuantity   int    `json:"lot_quantity"`
	ExpiryDate    string `json:"expiry_date"`
	DaysRemaining int    `json:"days_remaining"`
	Tier          string `json:"tier"` // expired | critical | warning | preventive
}
