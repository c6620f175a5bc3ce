package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labstock/internal/application/dto"
	"github.com/jhoicas/labstock/internal/application/inventory"
)

const (
	defaultExpiringDays = 30
	maxExpiringDays     = 3650
)

// AlertsHandler alertas de stock y reporte PDF.
type AlertsHandler struct {
	alerts  *inventory.AlertsUseCase
	reports *inventory.ReportUseCase
}

// NewAlertsHandler construye el handler.
func NewAlertsHandler(alerts *inventory.AlertsUseCase, reports *inventory.ReportUseCase) *AlertsHandler {
	return &AlertsHandler{alerts: alerts, reports: reports}
}

// LowStock godoc
// @Summary      Stocks en o bajo el umbral
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  int  false  "Filtrar por bodega"
// @Success      200  {object}  dto.AlertListResponse
// @Router       /api/alerts/low-stock [get]
func (h *AlertsHandler) LowStock(c *fiber.Ctx) error {
	wh, ok := optionalQueryID(c, "warehouse_id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.alerts.LowStock(c.UserContext(), wh)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Expiring godoc
// @Summary      Stocks vencidos o por vencer
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días (0-3650)"  default(30)
// @Success      200  {object}  dto.AlertListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/alerts/expiring [get]
func (h *AlertsHandler) Expiring(c *fiber.Ctx) error {
	days := c.QueryInt("days", defaultExpiringDays)
	if days < 0 || days > maxExpiringDays {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: fmt.Sprintf("days debe estar entre 0 y %d", maxExpiringDays),
		})
	}
	out, err := h.alerts.Expiring(c.UserContext(), time.Duration(days)*24*time.Hour)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Critical godoc
// @Summary      Productos críticos sin unidades en almacenes principales
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CriticalShortageResponse
// @Router       /api/alerts/critical [get]
func (h *AlertsHandler) Critical(c *fiber.Ctx) error {
	out, err := h.alerts.CriticalShortages(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StockReport godoc
// @Summary      Reporte PDF de stock
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        warehouse_id  query  int  false  "Solo una bodega"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.pdf [get]
func (h *AlertsHandler) StockReport(c *fiber.Ctx) error {
	wh, ok := optionalQueryID(c, "warehouse_id")
	if !ok {
		return invalidID(c)
	}
	pdf, err := h.reports.StockReport(c.UserContext(), wh)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="stock-report.pdf"`)
	return c.Send(pdf)
}

// optionalQueryID nil si el parámetro no viene; false si viene mal formado.
func optionalQueryID(c *fiber.Ctx, name string) (*int64, bool) {
	if c.Query(name) == "" {
		return nil, true
	}
	id := int64(c.QueryInt(name, 0))
	if id <= 0 {
		return nil, false
	}
	return &id, true
}
