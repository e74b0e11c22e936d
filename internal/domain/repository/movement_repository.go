package repository

import (
	"context"

	"github.com/bymretail/inventario-api/internal/domain/entity"
)

// MovementRepository persiste el libro de movimientos, solo-agregado. Append
// escribe una fila y debe ser atómico por llamada; el núcleo nunca reescribe
// ni elimina líneas existentes.
type MovementRepository interface {
	LoadMovements(ctx context.Context) ([]*entity.Movement, error)
	AppendMovement(ctx context.Context, mov *entity.Movement) error
}
