// Package pdf genera el reporte imprimible de niveles de stock con Maroto v2:
// una tabla A4 con umbral, total calculado y estado del semáforo por producto,
// pensada para colgar en la bodega.
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/bymretail/inventario-api/internal/application/dto"
	"github.com/bymretail/inventario-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorWarning  = &props.Color{Red: 190, Green: 140, Blue: 0}
	colorOptimal  = &props.Color{Red: 20, Green: 120, Blue: 50}
)

// StockReportGenerator genera el PDF del reporte de niveles de stock.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// Generate produce el PDF y devuelve sus bytes.
func (g *StockReportGenerator) Generate(title string, generatedAt time.Time, levels []dto.StockLevelDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Niveles de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, lvl := range levels {
		m.AddRows(levelRow(lvl))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(summaryRow(levels))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow(title string, generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Niveles de stock contra umbrales mínimos", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de niveles.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 3, align.Left),
		h("Producto", 4, align.Left),
		h("Mínimo", 1, align.Right),
		h("Stock", 2, align.Right),
		h("Estado", 2, align.Center),
	)
}

// levelRow: una fila por producto con el estado coloreado.
func levelRow(lvl dto.StockLevelDTO) core.Row {
	return row.New(7).Add(
		col.New(3).Add(text.New(lvl.Code, props.Text{Size: 8, Top: 1})),
		col.New(4).Add(text.New(lvl.Name, props.Text{Size: 8, Top: 1})),
		col.New(1).Add(text.New(fmt.Sprint(lvl.MinimumStock), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(fmt.Sprint(lvl.TotalStock), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(statusLabel(lvl.Status), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1,
			Color: statusColor(lvl.Status),
		})),
	)
}

// summaryRow: conteo por estado al pie del reporte.
func summaryRow(levels []dto.StockLevelDTO) core.Row {
	counts := map[string]int{}
	for _, lvl := range levels {
		counts[lvl.Status]++
	}
	summary := fmt.Sprintf("Críticos: %d   |   En advertencia: %d   |   Óptimos: %d   |   Total: %d",
		counts[entity.StockStatusCritical],
		counts[entity.StockStatusWarning],
		counts[entity.StockStatusOptimal],
		len(levels),
	)
	return row.New(8).Add(
		col.New(12).Add(text.New(summary, props.Text{Size: 8, Top: 2, Color: colorGray})),
	)
}

func statusLabel(status string) string {
	switch status {
	case entity.StockStatusCritical:
		return "CRÍTICO"
	case entity.StockStatusWarning:
		return "ADVERTENCIA"
	case entity.StockStatusOptimal:
		return "ÓPTIMO"
	}
	return status
}

func statusColor(status string) *props.Color {
	switch status {
	case entity.StockStatusCritical:
		return colorCritical
	case entity.StockStatusWarning:
		return colorWarning
	default:
		return colorOptimal
	}
}
