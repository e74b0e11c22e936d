// Package inventory contiene los servicios puros del motor de inventario:
// normalización de valores externos, ordenamiento FIFO de lotes, clasificación
// de niveles de stock y vencimientos, y el parseo de tokens de escáner.
package inventory

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout es el formato canónico de fechas del inventario.
const DateLayout = "2006-01-02"

// Formatos aceptados al normalizar una fecha externa (celdas de hojas de
// cálculo, formularios). Se intenta en orden.
var dateLayouts = []string{
	DateLayout,
	"2006-1-2",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
}

// NormalizeDate degrada cualquier entrada a una fecha canónica YYYY-MM-DD o a
// la cadena vacía. Nunca falla: un valor no interpretable produce "".
func NormalizeDate(raw string) string {
	s, _ := NormalizeDateOK(raw)
	return s
}

// NormalizeDateOK es la variante observable de NormalizeDate: ok es false
// cuando la entrada no vacía no pudo interpretarse como fecha y se degradó a
// "". Una entrada vacía es un "sin vencimiento" legítimo (ok true).
func NormalizeDateOK(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", true
	}
	// Descartar hora y zona horaria: "2025-01-10 14:30" o "2025-01-10T14:30:00Z".
	if i := strings.IndexAny(s, " T"); i >= 0 {
		s = s[:i]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), true
		}
	}
	return "", false
}

// FormatDate convierte un time.Time a la representación canónica.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ToInt convierte un valor externo a entero con valor por defecto. Intenta
// primero parseo entero y luego decimal (truncando); nunca falla.
func ToInt(raw string, def int) int {
	n, _ := ToIntOK(raw, def)
	return n
}

// ToIntOK convierte a entero e indica si el valor fue parseado o degradado al
// valor por defecto. Cadena vacía degrada (ok false para rutas de validación).
func ToIntOK(raw string, def int) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return def, false
}

// ToDecimal convierte un valor externo a decimal con valor por defecto.
func ToDecimal(raw string, def decimal.Decimal) decimal.Decimal {
	d, _ := ToDecimalOK(raw, def)
	return d
}

// ToDecimalOK convierte a decimal e indica si el valor fue parseado.
func ToDecimalOK(raw string, def decimal.Decimal) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def, false
	}
	// Las hojas de cálculo regionales usan coma decimal.
	s = strings.ReplaceAll(s, ",", ".")
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}
	return def, false
}
