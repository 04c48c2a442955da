package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-stock-api/internal/application/dto"
	"github.com/jhoicas/tienda-stock-api/internal/application/usecase"
	"github.com/jhoicas/tienda-stock-api/internal/domain/repository"
	"github.com/jhoicas/tienda-stock-api/internal/infrastructure/export"
)

// ExportHandler sirve las descargas CSV/ZIP/PDF del panel (protegido).
type ExportHandler struct {
	report *usecase.ReportUseCase
	delim  export.Delimiter
}

// NewExportHandler construye el handler con el delimitador configurado.
func NewExportHandler(report *usecase.ReportUseCase, delim export.Delimiter) *ExportHandler {
	return &ExportHandler{report: report, delim: delim}
}

// MovementsCSV godoc
// @Summary      Exportar historial de movimientos a CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Param        product_id  query  int     false  "Filtrar por producto"
// @Param        tipo        query  string  false  "venta | devolucion | reposicion"
// @Success      200  {string}  string
// @Router       /api/export/movements.csv [get]
func (h *ExportHandler) MovementsCSV(c *fiber.Ctx) error {
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	movements, err := h.report.MovementsForExport(filter)
	if err != nil {
		return internalError(c, err)
	}
	data, err := export.MovementsCSV(movements, h.delim)
	if err != nil {
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movements.csv"`)
	return c.Send(data)
}

// ProductsCSV godoc
// @Summary      Exportar productos a CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/export/products.csv [get]
func (h *ExportHandler) ProductsCSV(c *fiber.Ctx) error {
	products, err := h.report.ProductsForExport()
	if err != nil {
		return internalError(c, err)
	}
	data, err := export.ProductsCSV(products, h.delim)
	if err != nil {
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Send(data)
}

// InventoryZip godoc
// @Summary      Exportar movimientos y productos en un único ZIP
// @Tags         export
// @Security     Bearer
// @Produce      application/zip
// @Success      200  {string}  string
// @Router       /api/export/inventory.zip [get]
func (h *ExportHandler) InventoryZip(c *fiber.Ctx) error {
	movements, err := h.report.MovementsForExport(repository.MovementFilter{})
	if err != nil {
		return internalError(c, err)
	}
	products, err := h.report.ProductsForExport()
	if err != nil {
		return internalError(c, err)
	}
	movCSV, err := export.MovementsCSV(movements, h.delim)
	if err != nil {
		return internalError(c, err)
	}
	prodCSV, err := export.ProductsCSV(products, h.delim)
	if err != nil {
		return internalError(c, err)
	}
	data, err := export.InventoryZip(movCSV, prodCSV)
	if err != nil {
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.zip"`)
	return c.Send(data)
}

// LowStockPDF godoc
// @Summary      Reporte PDF de productos bajo el umbral de reorden
// @Tags         export
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {string}  string
// @Router       /api/export/low-stock.pdf [get]
func (h *ExportHandler) LowStockPDF(c *fiber.Ctx) error {
	data, err := h.report.LowStockPDF(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="low-stock.pdf"`)
	return c.Send(data)
}
