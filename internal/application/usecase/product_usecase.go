package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-stock-api/internal/application/dto"
	appinv "github.com/jhoicas/tienda-stock-api/internal/application/inventory"
	"github.com/jhoicas/tienda-stock-api/internal/domain"
	"github.com/jhoicas/tienda-stock-api/internal/domain/entity"
	"github.com/jhoicas/tienda-stock-api/internal/domain/repository"
	"github.com/jhoicas/tienda-stock-api/pkg/logger"
)

// ProductUseCase casos de uso CRUD para productos y su desglose por talla.
// El stock total solo cambia por el motor de movimientos o por el ajuste
// administrativo explícito (OverrideStock).
type ProductUseCase struct {
	repo        repository.ProductRepository
	variantRepo repository.VariantRepository
	replaceUC   *appinv.ReplaceVariantsUseCase
	log         *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	replaceUC *appinv.ReplaceVariantsUseCase,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, variantRepo: variantRepo, replaceUC: replaceUC, log: log}
}

// Create crea un producto (activo por defecto) y, si vienen, sus variantes.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock < 0 || in.StockMinimo < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	now := time.Now()
	product := &entity.Product{
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Stock:       in.Stock,
		StockMinimo: in.StockMinimo,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}

	resp := toProductResponse(product, nil)
	if len(in.Variants) > 0 {
		result, err := uc.replaceUC.Replace(ctx, product.ID, toVariantInputs(in.Variants))
		if err != nil {
			return nil, err
		}
		resp.Variants = toVariantResponses(result.Variants)
		if result.Inconsistent {
			uc.log.Warn().
				Int64("product_id", product.ID).
				Int("variant_sum", result.VariantSum).
				Int("stock", product.Stock).
				Msg("suma de variantes distinta del stock total")
		}
	}
	return resp, nil
}

// GetByID obtiene un producto con sus variantes. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	variants, err := uc.variantRepo.ListByProduct(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, variants), nil
}

// List lista productos con paginación y filtros opcionales (talla, stock bajo).
// El filtro de talla solo incluye productos con esa talla en stock (> 0).
func (uc *ProductUseCase) List(filter repository.ProductFilter, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Products: make([]dto.ProductResponse, 0, len(list)),
		Page:     dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, p := range list {
		out.Products = append(out.Products, *toProductResponse(p, nil))
	}
	return out, nil
}

// Update modifica los campos del producto y, si Variants viene, reemplaza el
// conjunto de variantes completo. Stock aquí es el total declarado en la
// edición del producto; los movimientos siguen siendo la vía normal de cambio.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		product.Stock = *in.Stock
	}
	if in.StockMinimo != nil {
		if *in.StockMinimo < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		product.StockMinimo = *in.StockMinimo
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}

	var variants []*entity.Variant
	if in.Variants != nil {
		result, err := uc.replaceUC.Replace(ctx, id, toVariantInputs(*in.Variants))
		if err != nil {
			return nil, err
		}
		variants = result.Variants
		if result.Inconsistent {
			uc.log.Warn().
				Int64("product_id", id).
				Int("variant_sum", result.VariantSum).
				Int("stock", product.Stock).
				Msg("suma de variantes distinta del stock total")
		}
	} else {
		variants, err = uc.variantRepo.ListByProduct(id)
		if err != nil {
			return nil, err
		}
	}
	return toProductResponse(product, variants), nil
}

// SetActive alterna la visibilidad del producto sin tocar stock.
func (uc *ProductUseCase) SetActive(id int64, active bool) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.SetActive(id, active)
}

// OverrideStock es la válvula de escape administrativa: escribe stock y umbral
// directamente, sin pasar por el motor y sin entrada en el libro. Se deja
// rastro en el log para que el salto sea observable.
func (uc *ProductUseCase) OverrideStock(id int64, stock, stockMinimo int) (*dto.ProductResponse, error) {
	if stock < 0 || stockMinimo < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if err := uc.repo.UpdateStock(id, stock, stockMinimo); err != nil {
		return nil, err
	}
	uc.log.Warn().
		Int64("product_id", id).
		Int("old_stock", product.Stock).
		Int("new_stock", stock).
		Msg("ajuste administrativo de stock sin registro en el libro")
	product.Stock = stock
	product.StockMinimo = stockMinimo
	product.UpdatedAt = time.Now()
	return toProductResponse(product, nil), nil
}

// Delete borra físicamente el producto y sus variantes (riesgo conocido:
// las entradas del libro conservan la etiqueta resuelta, no la fila).
func (uc *ProductUseCase) Delete(id int64) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.Delete(id)
}

func toVariantInputs(items []dto.VariantItem) []appinv.VariantInput {
	out := make([]appinv.VariantInput, 0, len(items))
	for _, it := range items {
		out = append(out, appinv.VariantInput{
			SizeID:       it.SizeID,
			Stock:        it.Stock,
			PrecioAjuste: it.PrecioAjuste,
		})
	}
	return out
}

func toVariantResponses(variants []*entity.Variant) []dto.VariantResponse {
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
	return out
}

func toProductResponse(p *entity.Product, variants []*entity.Variant) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		StockMinimo: p.StockMinimo,
		Active:      p.Active,
		LowStock:    p.LowStock(),
		Variants:    toVariantResponses(variants),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
