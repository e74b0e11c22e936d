package entity

// Estados del semáforo de niveles de stock.
const (
	StockStatusCritical = "critical"
	StockStatusWarning  = "warning"
	StockStatusOptimal  = "optimal"
)

// Niveles de alerta de vencimiento.
const (
	ExpiryTierExpired    = "expired"
	ExpiryTierCritical   = "critical"
	ExpiryTierWarning    = "warning"
	ExpiryTierPreventive = "preventive"
	ExpiryTierNone       = "none" // fuera de todos los rangos, no se reporta
)

// StockLevel es una fila del reporte de niveles de stock: umbral configurado
// contra el total calculado, con el estado del semáforo.
type StockLevel struct {
	Code         string
	Name         string
	MinimumStock int
	TotalStock   int
	Status       string
}

// ExpiryAlert es una fila del reporte de alertas de vencimiento para un lote.
type ExpiryAlert struct {
	Code          string
	Name          string
	LotQuantity   int
	ExpiryDate    string
	DaysRemaining int
	Tier          string
}
