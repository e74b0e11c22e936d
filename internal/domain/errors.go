package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnauthorized      = errors.New("no autorizado")
	// ErrIncompleteLoad indica que la carga desde el almacén de respaldo falló;
	// el estado en memoria no debe tratarse como autoritativo.
	ErrIncompleteLoad = errors.New("carga incompleta del almacén de datos")
)
