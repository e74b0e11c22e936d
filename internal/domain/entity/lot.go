package entity

import "github.com/shopspring/decimal"

// Lot representa un lote de un producto: unidades recibidas en una misma fecha
// de vencimiento. Un producto tiene a lo sumo un lote por fecha de vencimiento
// distinta (la cadena vacía cuenta como "sin vencimiento").
//
// Nombre, marca y precios son autoritativos solo en el primer lote del
// producto (ver ProductMaster); los lotes posteriores pueden llevar copias
// desactualizadas.
type Lot struct {
	Name       string
	Brand      string
	Quantity   int
	ExpiryDate string // YYYY-MM-DD canónico, o "" si no se rastrea vencimiento
	CostPrice  decimal.Decimal
	SalePrice  decimal.Decimal
}

// ProductMaster es la vista autoritativa de los campos de presentación de un
// producto, derivada del primer lote de su lista.
type ProductMaster struct {
	Code      string
	Name      string
	Brand     string
	CostPrice decimal.Decimal
	SalePrice decimal.Decimal
}
