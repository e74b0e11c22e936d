package xlsx

import (
	"sort"

	"github.com/bymretail/inventario-api/internal/domain/entity"
)

// Las filas se escriben con los códigos ordenados para que los libros sean
// estables entre guardados (diffs legibles al sincronizarlos).

func sortedKeys(m map[string][]*entity.Lot) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedIntKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
