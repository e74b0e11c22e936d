package inventory

import (
	"strconv"
	"strings"
)

// ParseScanToken interpreta un token de escáner de salidas. El formato
// opcional "N*codigo" indica multiplicador (ej. "5*7806505055391"); sin
// asterisco el multiplicador es 1. Si el multiplicador no parsea, el token
// completo se trata como código literal con cantidad 1.
func ParseScanToken(token string) (code string, quantity int) {
	raw := strings.TrimSpace(token)
	if before, after, found := strings.Cut(raw, "*"); found {
		if n, err := strconv.Atoi(strings.TrimSpace(before)); err == nil {
			return strings.TrimSpace(after), n
		}
	}
	return raw, 1
}
