package repository

import (
	"context"

	"github.com/bymretail/inventario-api/internal/domain/entity"
)

// InventoryRepository persiste el inventario completo: código de producto →
// lista ordenada de lotes (orden de inserción). La carga tolera un almacén de
// respaldo inexistente (mapa vacío); el guardado reemplaza la colección entera.
type InventoryRepository interface {
	LoadInventory(ctx context.Context) (map[string][]*entity.Lot, error)
	SaveInventory(ctx context.Context, inv map[string][]*entity.Lot) error
}
