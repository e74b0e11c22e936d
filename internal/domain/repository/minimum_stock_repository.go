package repository

import "context"

// MinimumStockRepository persiste los umbrales de stock mínimo por código.
// Puede contener códigos ausentes del inventario (umbral configurado antes de
// la primera recepción) y viceversa. Guardado con semántica de reemplazo total.
type MinimumStockRepository interface {
	LoadMinimumStock(ctx context.Context) (map[string]int, error)
	SaveMinimumStock(ctx context.Context, min map[string]int) error
}
