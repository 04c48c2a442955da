package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-stock-api/internal/application/dto"
	"github.com/jhoicas/tienda-stock-api/internal/domain"
)

// paramID parsea el path param :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// domainErrorResponse traduce un error de dominio a su respuesta HTTP.
// Devuelve false si el error no es de dominio (el caller responde 500).
func domainErrorResponse(c *fiber.Ctx, err error) (error, bool) {
	type mapping struct {
		target error
		status int
		code   string
	}
	mappings := []mapping{
		{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{domain.ErrVariantNotFound, fiber.StatusNotFound, "VARIANT_NOT_FOUND"},
		{domain.ErrSizeNotFound, fiber.StatusNotFound, "SIZE_NOT_FOUND"},
		{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrInsufficientVariantStock, fiber.StatusConflict, "INSUFFICIENT_VARIANT_STOCK"},
		{domain.ErrInvalidConfirmation, fiber.StatusConflict, "INVALID_CONFIRMATION"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.target.Error()}), true
		}
	}
	return nil, false
}

// internalError respuesta 500 genérica. Un fallo de persistencia a mitad de
// secuencia se reporta como irrecuperable: no hay rollback compensatorio
// fuera de la transacción.
func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
