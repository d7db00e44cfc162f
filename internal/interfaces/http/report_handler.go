package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-inventario/internal/application/analytics"
	"github.com/jhoicas/gestor-inventario/internal/application/dto"
	"github.com/jhoicas/gestor-inventario/internal/domain"
)

// ReportHandler reportes del inventario y sus exportaciones.
type ReportHandler struct {
	uc   *analytics.ReportUseCase
	resp *Responder
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase, resp *Responder) *ReportHandler {
	return &ReportHandler{uc: uc, resp: resp}
}

// Summary godoc
// @Summary      Resumen del inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.InventorySummaryDTO}
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, out, "Resumen obtenido exitosamente")
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.LowStockItemDTO}
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, out, "Reporte de stock bajo obtenido exitosamente")
}

// ValueByCategory godoc
// @Summary      Valor del inventario por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.CategoryValueDTO}
// @Router       /api/reports/value-by-category [get]
func (h *ReportHandler) ValueByCategory(c *fiber.Ctx) error {
	out, err := h.uc.ValueByCategory(c.UserContext())
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, out, "Reporte por categoría obtenido exitosamente")
}

// ExportLowStock godoc
// @Summary      Exportar stock bajo (CSV o PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Produce      application/pdf
// @Param        format    query  string  false  "csv | pdf"  default(csv)
// @Param        encoding  query  string  false  "utf-8 | latin1"  default(utf-8)
// @Success      200  {file}    file
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/reports/low-stock/export [get]
func (h *ReportHandler) ExportLowStock(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.QueryParser(&in); err != nil {
		return h.resp.Fail(c, domain.ErrInvalidInput)
	}
	file, err := h.uc.ExportLowStock(c.UserContext(), in)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return sendFile(c, file)
}

// ExportValueByCategory godoc
// @Summary      Exportar valor por categoría (CSV)
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        encoding  query  string  false  "utf-8 | latin1"  default(utf-8)
// @Success      200  {file}    file
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/reports/value-by-category/export [get]
func (h *ReportHandler) ExportValueByCategory(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.QueryParser(&in); err != nil {
		return h.resp.Fail(c, domain.ErrInvalidInput)
	}
	file, err := h.uc.ExportValueByCategory(c.UserContext(), in)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return sendFile(c, file)
}
