package inventory

import (
	"sort"
	"time"

	"github.com/bymretail/inventario-api/internal/domain/entity"
)

// TotalStock suma las cantidades de todos los lotes de un producto.
func TotalStock(lots []*entity.Lot) int {
	total := 0
	for _, l := range lots {
		total += l.Quantity
	}
	return total
}

// OrderFIFO devuelve una copia de los lotes ordenada por fecha de vencimiento
// ascendente. Los lotes sin fecha (o con fecha no interpretable) van al final:
// se consumen solo cuando los lotes fechados se agotan. El orden es estable
// entre claves iguales.
func OrderFIFO(lots []*entity.Lot) []*entity.Lot {
	ordered := make([]*entity.Lot, len(lots))
	copy(ordered, lots)
	sort.SliceStable(ordered, func(i, j int) bool {
		ti, oki := parseExpiry(ordered[i].ExpiryDate)
		tj, okj := parseExpiry(ordered[j].ExpiryDate)
		if oki != okj {
			return oki // los fechados primero
		}
		if !oki {
			return false
		}
		return ti.Before(tj)
	})
	return ordered
}

func parseExpiry(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
