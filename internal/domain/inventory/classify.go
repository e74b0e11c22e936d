package inventory

import (
	"time"

	"github.com/bymretail/inventario-api/internal/domain/entity"
)

// Semaphore clasifica el nivel de stock de un producto contra su umbral
// mínimo: crítico si total <= mínimo, advertencia si total <= 1.5*mínimo,
// óptimo en otro caso. Con mínimo 0 cualquier total positivo es óptimo y la
// advertencia es inalcanzable; ese comportamiento de borde se preserva.
func Semaphore(total, minimum int) string {
	switch {
	case total <= minimum:
		return entity.StockStatusCritical
	case 2*total <= 3*minimum: // total <= 1.5*minimum sin aritmética flotante
		return entity.StockStatusWarning
	default:
		return entity.StockStatusOptimal
	}
}

// ExpiryTier clasifica una fecha de vencimiento por días restantes contra los
// umbrales dados. Vencido solo con días restantes estrictamente negativos; un
// lote que vence hoy es crítico. ok es false si la fecha está vacía o no es
// interpretable (el lote no participa del reporte).
func ExpiryTier(expiryDate string, today time.Time, criticalDays, warningDays, preventiveDays int) (tier string, daysRemaining int, ok bool) {
	exp, parsed := parseExpiry(expiryDate)
	if !parsed {
		return entity.ExpiryTierNone, 0, false
	}
	base := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	daysRemaining = int(exp.Sub(base).Hours() / 24)
	switch {
	case daysRemaining < 0:
		tier = entity.ExpiryTierExpired
	case daysRemaining <= criticalDays:
		tier = entity.ExpiryTierCritical
	case daysRemaining <= warningDays:
		tier = entity.ExpiryTierWarning
	case daysRemaining <= preventiveDays:
		tier = entity.ExpiryTierPreventive
	default:
		tier = entity.ExpiryTierNone
	}
	return tier, daysRemaining, true
}
