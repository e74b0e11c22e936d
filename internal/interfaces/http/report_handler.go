package http

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bymretail/inventario-api/internal/application/dto"
	"github.com/bymretail/inventario-api/internal/application/inventory"
	domaininv "github.com/bymretail/inventario-api/internal/domain/inventory"
	"github.com/bymretail/inventario-api/internal/infrastructure/excel"
	"github.com/bymretail/inventario-api/internal/infrastructure/pdf"
)

// AlertDefaults umbrales de días usados cuando la petición no los indica.
type AlertDefaults struct {
	CriticalDays   int
	WarningDays    int
	PreventiveDays int
}

// ReportHandler maneja los reportes de movimientos, niveles de stock y
// alertas de vencimiento, con exportes a xlsx y PDF.
type ReportHandler struct {
	reports  *inventory.ReportUseCase
	pdfGen   *pdf.StockReportGenerator
	exporter *excel.MovementExporter
	defaults AlertDefaults
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(reports *inventory.ReportUseCase, defaults AlertDefaults) *ReportHandler {
	return &ReportHandler{
		reports:  reports,
		pdfGen:   pdf.NewStockReportGenerator(),
		exporter: excel.NewMovementExporter(),
		defaults: defaults,
	}
}

// Movements godoc
// @Summary      Historial de movimientos del libro
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial YYYY-MM-DD (inclusiva)"
// @Param        to    query  string  false  "Fecha final YYYY-MM-DD (inclusiva)"
// @Param        type  query  string  false  "in, out o ambos separados por coma"
// @Param        code  query  string  false  "Filtrar por código de producto"
// @Success      200   {array}  dto.MovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	filter, err := h.movementFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	movs, err := h.reports.Movements(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movs), "movements": movs})
}

// ExportMovements godoc
// @Summary      Exportar el historial de movimientos a xlsx
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  false  "Fecha inicial YYYY-MM-DD (inclusiva)"
// @Param        to    query  string  false  "Fecha final YYYY-MM-DD (inclusiva)"
// @Success      200   {file}  binary
// @Router       /api/reports/movements/xlsx [get]
func (h *ReportHandler) ExportMovements(c *fiber.Ctx) error {
	filter, err := h.movementFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	movs, err := h.reports.Movements(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := h.exporter.WriteTo(&buf, movs); err != nil {
		return respondError(c, err)
	}
	name := fmt.Sprintf("movimientos_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}

// StockLevels godoc
// @Summary      Niveles de stock con semáforo por código configurado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockLevelDTO
// @Router       /api/reports/stock-levels [get]
func (h *ReportHandler) StockLevels(c *fiber.Ctx) error {
	levels, err := h.reports.StockLevels(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(levels), "levels": levels})
}

// StockLevelsPDF godoc
// @Summary      Exportar los niveles de stock a PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/stock-levels/pdf [get]
func (h *ReportHandler) StockLevelsPDF(c *fiber.Ctx) error {
	levels, err := h.reports.StockLevels(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.pdfGen.Generate("Reporte de niveles de stock", time.Now(), levels)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="niveles_stock.pdf"`)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(doc)
}

// ExpiryAlerts godoc
// @Summary      Alertas de vencimiento por lote
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        critical_days    query  int  false  "Umbral crítico en días"
// @Param        warning_days     query  int  false  "Umbral de advertencia en días"
// @Param        preventive_days  query  int  false  "Umbral preventivo en días"
// @Success      200  {array}  dto.ExpiryAlertDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/expiry-alerts [get]
func (h *ReportHandler) ExpiryAlerts(c *fiber.Ctx) error {
	critical, err := queryInt(c, "critical_days", h.defaults.CriticalDays)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	warning, err := queryInt(c, "warning_days", h.defaults.WarningDays)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	preventive, err := queryInt(c, "preventive_days", h.defaults.PreventiveDays)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	alerts, err := h.reports.ExpiryAlerts(c.Context(), critical, warning, preventive)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(alerts), "alerts": alerts})
}

func (h *ReportHandler) movementFilter(c *fiber.Ctx) (inventory.MovementFilter, error) {
	var filter inventory.MovementFilter
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(domaininv.DateLayout, from)
		if err != nil {
			return filter, fmt.Errorf("parámetro from inválido: %s", from)
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(domaininv.DateLayout, to)
		if err != nil {
			return filter, fmt.Errorf("parámetro to inválido: %s", to)
		}
		// El rango es inclusivo para el usuario, exclusivo internamente.
		filter.ToExclusive = t.AddDate(0, 0, 1)
	}
	if types := c.Query("type"); types != "" {
		filter.Types = strings.Split(types, ",")
	}
	filter.Code = c.Query("code")
	return filter, nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parámetro %s inválido: %s", key, raw)
	}
	return n, nil
}
