package inventory

import (
	"context"

	"github.com/jhoicas/tienda-stock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que las tres escrituras del motor
// (producto, variante, libro) se confirman o revierten juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		variantRepo repository.VariantRepository,
		movRepo repository.MovementRepository,
	) error) error
}
