package usecase

import (
	"context"

	"github.com/jhoicas/tienda-stock-api/internal/application/dto"
	"github.com/jhoicas/tienda-stock-api/internal/domain/entity"
	"github.com/jhoicas/tienda-stock-api/internal/domain/repository"
)

// LowStockPDFGenerator puerto para la representación PDF del reporte de
// stock bajo (implementado en infrastructure/pdf con Maroto).
type LowStockPDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, products []*entity.Product) ([]byte, error)
}

// ReportUseCase vistas de solo lectura sobre productos, variantes y libro:
// historial paginado, lista de stock bajo y datos para exportación.
// Consume estado, nunca lo muta.
type ReportUseCase struct {
	movementRepo repository.MovementRepository
	productRepo  repository.ProductRepository
	pdfGenerator LowStockPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	movementRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	pdfGenerator LowStockPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		movementRepo: movementRepo,
		productRepo:  productRepo,
		pdfGenerator: pdfGenerator,
	}
}

// ListMovements devuelve una página del historial (fecha descendente) con el
// total de coincidencias para la paginación.
func (uc *ReportUseCase) ListMovements(filter repository.MovementFilter, limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.movementRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movementRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{
		Movements: make([]dto.MovementEntry, 0, len(list)),
		Page:      dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
	for _, m := range list {
		out.Movements = append(out.Movements, dto.MovementEntry{
			ID:        m.ID,
			ProductID: m.ProductID,
			SizeID:    m.SizeID,
			Etiqueta:  m.Etiqueta,
			Tipo:      m.Tipo,
			Cantidad:  m.Cantidad,
			Fecha:     m.Fecha,
			Usuario:   m.Usuario,
		})
	}
	return out, nil
}

// MovementsForExport devuelve todas las entradas que cumplen el filtro, sin
// paginar (limit <= 0 se interpreta como sin límite en el repositorio).
func (uc *ReportUseCase) MovementsForExport(filter repository.MovementFilter) ([]*entity.Movement, error) {
	return uc.movementRepo.List(filter, 0, 0)
}

// LowStockProducts productos en o por debajo de su umbral de reorden.
func (uc *ReportUseCase) LowStockProducts() ([]*entity.Product, error) {
	return uc.productRepo.List(repository.ProductFilter{LowStockOnly: true}, 0, 0)
}

// ProductsForExport todos los productos, sin paginar.
func (uc *ReportUseCase) ProductsForExport() ([]*entity.Product, error) {
	return uc.productRepo.List(repository.ProductFilter{}, 0, 0)
}

// LowStockPDF genera el reporte PDF de productos bajo umbral.
func (uc *ReportUseCase) LowStockPDF(ctx context.Context) ([]byte, error) {
	products, err := uc.LowStockProducts()
	if err != nil {
		return nil, err
	}
	return uc.pdfGenerator.GenerateLowStockPDF(ctx, products)
}
