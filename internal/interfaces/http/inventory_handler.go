package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-stock-api/internal/application/dto"
	"github.com/jhoicas/tienda-stock-api/internal/application/inventory"
	"github.com/jhoicas/tienda-stock-api/internal/application/usecase"
	"github.com/jhoicas/tienda-stock-api/internal/domain/repository"
)

// InventoryHandler maneja los movimientos de stock y el historial (protegido).
type InventoryHandler struct {
	engine *inventory.ApplyMovementUseCase
	report *usecase.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *inventory.ApplyMovementUseCase, report *usecase.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{engine: engine, report: report}
}

// ApplyMovement godoc
// @Summary      Aplicar un movimiento de stock
// @Description  venta resta, devolucion y reposicion suman. Las ventas son en dos fases: la primera invocación devuelve 202 con confirm_token; la segunda, con el token, ejecuta la escritura.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "product_id, size_id (opcional), tipo, cantidad, confirm_token (ventas, 2a fase)"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Success      202   {object}  dto.ConfirmationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	userName := GetUserName(c)
	if userName == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.engine.ApplyMovement(c.Context(), inventory.MovementInput{
		ProductID:    in.ProductID,
		SizeID:       in.SizeID,
		Tipo:         in.Tipo,
		Cantidad:     in.Cantidad,
		Usuario:      userName,
		ConfirmToken: in.ConfirmToken,
	})
	if err != nil {
		if resp, ok := domainErrorResponse(c, err); ok {
			return resp
		}
		return internalError(c, err)
	}
	if result.Pending {
		return c.Status(fiber.StatusAccepted).JSON(dto.ConfirmationResponse{
			ConfirmToken: result.ConfirmToken,
			Message:      "venta pendiente de confirmación: reenviar con confirm_token",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(result))
}

// ReserveStock godoc
// @Summary      Reservar stock para una orden (colaborador de checkout)
// @Description  Aplica una venta confirmada por línea de la orden a través del mismo motor que los movimientos manuales.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveStockRequest  true  "Líneas de la orden"
// @Success      201   {object}  dto.ReserveStockResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/checkout/reserve [post]
func (h *InventoryHandler) ReserveStock(c *fiber.Ctx) error {
	userName := GetUserName(c)
	if userName == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReserveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la orden no tiene líneas"})
	}
	lines := make([]inventory.OrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.OrderLine{ProductID: l.ProductID, SizeID: l.SizeID, Cantidad: l.Cantidad})
	}
	results, err := h.engine.ReserveForOrder(c.Context(), lines, userName)
	if err != nil {
		if resp, ok := domainErrorResponse(c, err); ok {
			return resp
		}
		return internalError(c, err)
	}
	out := dto.ReserveStockResponse{Applied: make([]dto.ApplyMovementResponse, 0, len(results))}
	for _, r := range results {
		out.Applied = append(out.Applied, *toMovementResponse(r))
		if r.Alert != nil {
			out.Alerts = append(out.Alerts, *toAlertDTO(r.Alert))
		}
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos (fecha descendente)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int     false  "Filtrar por producto"
// @Param        tipo        query  string  false  "venta | devolucion | reposicion"
// @Param        from        query  string  false  "Fecha mínima (RFC3339)"
// @Param        to          query  string  false  "Fecha máxima (RFC3339)"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200         {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.report.ListMovements(filter, page.Limit, page.Offset)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// movementFilterFromQuery parsea product_id, tipo, from y to.
func movementFilterFromQuery(c *fiber.Ctx) (repository.MovementFilter, error) {
	var filter repository.MovementFilter
	if pid := c.QueryInt("product_id", 0); pid > 0 {
		id := int64(pid)
		filter.ProductID = &id
	}
	filter.Tipo = c.Query("tipo")
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}
	return filter, nil
}

func toAlertDTO(a *inventory.LowStockAlert) *dto.LowStockAlertDTO {
	return &dto.LowStockAlertDTO{
		ProductID:   a.ProductID,
		ProductName: a.ProductName,
		NewStock:    a.NewStock,
		Threshold:   a.Threshold,
	}
}

func toMovementResponse(r *inventory.MovementResult) *dto.ApplyMovementResponse {
	out := &dto.ApplyMovementResponse{
		TransactionID:   r.TransactionID,
		MovementID:      r.MovementID,
		NewStock:        r.NewStock,
		NewVariantStock: r.NewVariantStock,
		LowStock:        r.LowStock,
	}
	if r.Alert != nil {
		out.Alert = toAlertDTO(r.Alert)
	}
	return out
}
