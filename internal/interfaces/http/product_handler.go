package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-stock-api/internal/application/dto"
	appinv "github.com/jhoicas/tienda-stock-api/internal/application/inventory"
	"github.com/jhoicas/tienda-stock-api/internal/application/usecase"
	"github.com/jhoicas/tienda-stock-api/internal/domain"
	"github.com/jhoicas/tienda-stock-api/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP para productos y variantes (protegido).
type ProductHandler struct {
	uc        *usecase.ProductUseCase
	replaceUC *appinv.ReplaceVariantsUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, replaceUC *appinv.ReplaceVariantsUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, replaceUC: replaceUC}
}

// Create godoc
// @Summary      Crear producto (con variantes opcionales)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if resp, ok := domainErrorResponse(c, err); ok {
			return resp
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID (incluye variantes)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: domain.ErrProductNotFound.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Description  Filtros: size (etiqueta de talla con stock > 0), low_stock, active.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        size       query  string  false  "Etiqueta de talla"
// @Param        low_stock  query  bool    false  "Solo bajo umbral"
// @Param        active     query  bool    false  "Solo activos"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200        {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	filter := repository.ProductFilter{
		SizeLabel:    c.Query("size"),
		LowStockOnly: c.QueryBool("low_stock", false),
		OnlyActive:   c.QueryBool("active", false),
	}
	out, err := h.uc.List(filter, page.Limit, page.Offset)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (Variants reemplaza el conjunto completo)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		if resp, ok := domainErrorResponse(c, err); ok {
			return resp
		}
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: domain.ErrProductNotFound.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar producto (borrado físico; el libro conserva las etiquetas)
// @Tags         products
// @Security     Bearer
// @Param        id  path  int  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		if resp, ok := domainErrorResponse(c, err); ok {
			return resp
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetActive godoc
// @Summary      Activar/desactivar producto sin tocar stock
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.SetActiveRequest  true  "active"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/active [patch]
func (h *ProductHandler) SetActive(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.SetActiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetActive(id, in.Active); err != nil {
		if resp, ok := domainErrorResponse(c, err); ok {
			return resp
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// OverrideStock godoc
// @Summary      Ajuste administrativo directo de stock
// @Description  Escribe stock y umbral sin pasar por el motor: NO genera entrada en el libro de movimientos.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.OverrideStockRequest  true  "stock y stock_minimo"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [patch]
func (h *ProductHandler) OverrideStock(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.OverrideStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.OverrideStock(id, in.Stock, in.StockMinimo)
	if err != nil {
		if resp, ok := domainErrorResponse(c, err); ok {
			return resp
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ListVariants godoc
// @Summary      Listar variantes de un producto
// @Tags         variants
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {array}  dto.VariantResponse
// @Router       /api/products/{id}/variants [get]
func (h *ProductHandler) ListVariants(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	variants, err := h.replaceUC.ListVariants(id)
	if err != nil {
		return internalError(c, err)
	}
	out := make([]dto.VariantResponse, 0, len(variants))
	for _, v := range variants {
		out = append(out, dto.VariantResponse{
			SizeID:       v.SizeID,
			SizeLabel:    v.SizeLabel,
			SKU:          v.SKU,
			Stock:        v.Stock,
			PrecioAjuste: v.PrecioAjuste,
		})
	}
	return c.JSON(out)
}

// ReplaceVariants godoc
// @Summary      Reemplazar el conjunto de variantes de un producto
// @Description  Semántica de reemplazo total: borra e inserta. Si la suma de variantes no coincide con el stock total, la respuesta incluye warning (no bloquea).
// @Tags         variants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.ReplaceVariantsRequest  true  "Conjunto nuevo"
// @Success      200   {object}  dto.ReplaceVariantsResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/variants [put]
func (h *ProductHandler) ReplaceVariants(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.ReplaceVariantsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]appinv.VariantInput, 0, len(in.Variants))
	for _, it := range in.Variants {
		items = append(items, appinv.VariantInput{SizeID: it.SizeID, Stock: it.Stock, PrecioAjuste: it.PrecioAjuste})
	}
	result, err := h.replaceUC.Replace(c.Context(), id, items)
	if err != nil {
		if resp, ok := domainErrorResponse(c, err); ok {
			return resp
		}
		return internalError(c, err)
	}
	out := dto.ReplaceVariantsResponse{
		Variants:     make([]dto.VariantResponse, 0, len(result.Variants)),
		VariantSum:   result.VariantSum,
		ProductStock: result.ProductStock,
	}
	for _, v := range result.Variants {
		out.Variants = append(out.Variants, dto.VariantResponse{
			SizeID:       v.SizeID,
			SizeLabel:    v.SizeLabel,
			SKU:          v.SKU,
			Stock:        v.Stock,
			PrecioAjuste: v.PrecioAjuste,
		})
	}
	if result.Inconsistent {
		out.Warning = domain.ErrInconsistentState.Error()
	}
	return c.JSON(out)
}
