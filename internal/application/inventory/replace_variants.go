package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/tienda-stock-api/internal/domain"
	"github.com/jhoicas/tienda-stock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/tienda-stock-api/internal/domain/inventory"
	"github.com/jhoicas/tienda-stock-api/internal/domain/repository"
)

// ReplaceVariantsUseCase reconfigura el conjunto de variantes de un producto
// con semántica de reemplazo total: borra todas las filas existentes e inserta
// el conjunto nuevo en una sola transacción. Se usa al crear/editar un
// producto, nunca para movimientos (esos mutan una variante en sitio).
type ReplaceVariantsUseCase struct {
	txRunner    TxRunner
	variantRepo repository.VariantRepository
	sizeRepo    repository.SizeRepository
}

// NewReplaceVariantsUseCase construye el caso de uso.
func NewReplaceVariantsUseCase(
	txRunner TxRunner,
	variantRepo repository.VariantRepository,
	sizeRepo repository.SizeRepository,
) *ReplaceVariantsUseCase {
	return &ReplaceVariantsUseCase{
		txRunner:    txRunner,
		variantRepo: variantRepo,
		sizeRepo:    sizeRepo,
	}
}

// VariantInput una talla del conjunto nuevo. Stock 0 es válido y se
// materializa como fila.
type VariantInput struct {
	SizeID       int64
	Stock        int
	PrecioAjuste decimal.Decimal
}

// ReplaceResult resultado del reemplazo. Inconsistent se enciende cuando la
// suma de variantes no coincide con el total declarado del producto:
// invariante blando, se reporta como advertencia sin bloquear la escritura.
type ReplaceResult struct {
	Variants     []*entity.Variant
	VariantSum   int
	ProductStock int
	Inconsistent bool
}

// Replace valida el conjunto (tallas existentes, sin duplicados, stock >= 0),
// deriva los SKU y reemplaza las variantes del producto.
func (uc *ReplaceVariantsUseCase) Replace(ctx context.Context, productID int64, items []VariantInput) (*ReplaceResult, error) {
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		if it.Stock < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if seen[it.SizeID] {
			return nil, domain.ErrDuplicate
		}
		seen[it.SizeID] = true
	}

	var result *ReplaceResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		variantRepo repository.VariantRepository,
		_ repository.MovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		now := time.Now()
		variants := make([]*entity.Variant, 0, len(items))
		sum := 0
		for _, it := range items {
			size, err := uc.sizeRepo.GetByID(it.SizeID)
			if err != nil {
				return err
			}
			if size == nil {
				return domain.ErrSizeNotFound
			}
			variants = append(variants, &entity.Variant{
				ProductID:    productID,
				SizeID:       size.ID,
				SizeLabel:    size.Label,
				SKU:          domaininv.DeriveSKU(product.Name, size.Label),
				Stock:        it.Stock,
				PrecioAjuste: it.PrecioAjuste,
				UpdatedAt:    now,
			})
			sum += it.Stock
		}

		if err := variantRepo.ReplaceAll(productID, variants); err != nil {
			return err
		}
		result = &ReplaceResult{
			Variants:     variants,
			VariantSum:   sum,
			ProductStock: product.Stock,
			Inconsistent: len(variants) > 0 && sum != product.Stock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListVariants devuelve las variantes del producto con su talla resuelta.
func (uc *ReplaceVariantsUseCase) ListVariants(productID int64) ([]*entity.Variant, error) {
	return uc.variantRepo.ListByProduct(productID)
}
