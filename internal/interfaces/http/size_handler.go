package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-stock-api/internal/application/dto"
	"github.com/jhoicas/tienda-stock-api/internal/domain/repository"
)

// SizeHandler sirve el catálogo de tallas (protegido, solo lectura).
type SizeHandler struct {
	repo repository.SizeRepository
}

// NewSizeHandler construye el handler.
func NewSizeHandler(repo repository.SizeRepository) *SizeHandler {
	return &SizeHandler{repo: repo}
}

// List godoc
// @Summary      Listar tallas del catálogo de referencia
// @Tags         sizes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SizeResponse
// @Router       /api/sizes [get]
func (h *SizeHandler) List(c *fiber.Ctx) error {
	sizes, err := h.repo.List()
	if err != nil {
		return internalError(c, err)
	}
	out := make([]dto.SizeResponse, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, dto.SizeResponse{ID: s.ID, Label: s.Label})
	}
	return c.JSON(out)
}
