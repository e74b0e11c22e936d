package dto

import "github.com/shopspring/decimal"

// RegisterEntryRequest body para POST /api/inventory/entries.
// ExpiryDate acepta cualquier formato de fecha razonable y se normaliza;
// vacío significa producto sin vencimiento. MinimumStock es opcional.
type RegisterEntryRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	Quantity     int             `json:"quantity"`
	ExpiryDate   string          `json:"expiry_date,omitempty"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	MinimumStock *int            `json:"minimum_stock,omitempty"`
}

// EntryResponse resultado de una entrada registrada.
type EntryResponse struct {
	Code       string `json:"code"`
	ExpiryDate string `json:"expiry_date"`
	Quantity   int    `json:"quantity"` // cantidad resultante del lote afectado
	Merged     bool   `json:"merged"`   // true si se sumó a un lote existente
	NewProduct bool   `json:"new_product"`
}

// InventoryRowDTO una fila del listado de inventario (un lote).
type InventoryRowDTO struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Brand      string          `json:"brand"`
	Quantity   int             `json:"quantity"`
	ExpiryDate string          `json:"expiry_date"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	SalePrice  decimal.Decimal `json:"sale_price"`
}

// ProductDTO vista maestra de un producto (derivada del primer lote).
type ProductDTO struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Brand      string          `json:"brand"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	TotalStock int             `json:"total_stock"`
}

// ScanRequest body para POST /api/inventory/cart/scan.
type ScanRequest struct {
	Token string `json:"token"` // "codigo" o "N*codigo"
}

// CartLineDTO una línea preparada del carrito de salidas.
type CartLineDTO struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CartResponse estado actual del carrito de salidas.
type CartResponse struct {
	Lines      []CartLineDTO `json:"lines"`
	TotalUnits int           `json:"total_units"`
}

// DispensedSliceDTO una porción FIFO consumida de un lote durante una salida.
type DispensedSliceDTO struct {
	Code       string `json:"code"`
	ExpiryDate string `json:"expiry_date"`
	Taken      int    `json:"taken"`
}
