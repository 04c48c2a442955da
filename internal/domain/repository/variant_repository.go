package repository

import "github.com/jhoicas/tienda-stock-api/internal/domain/entity"

// VariantRepository define el puerto para el stock por (producto, talla).
// Los movimientos actualizan una variante en sitio; la edición de producto
// reemplaza el conjunto completo (ReplaceAll), nunca parchea fila a fila.
type VariantRepository interface {
	ListByProduct(productID int64) ([]*entity.Variant, error)
	Get(productID, sizeID int64) (*entity.Variant, error)
	// GetForUpdate bloquea la fila de la variante (SELECT FOR UPDATE).
	GetForUpdate(productID, sizeID int64) (*entity.Variant, error)
	UpdateStock(productID, sizeID int64, stock int) error
	// ReplaceAll borra todas las variantes del producto e inserta el conjunto
	// nuevo. Las filas con stock 0 se insertan igualmente.
	ReplaceAll(productID int64, variants []*entity.Variant) error
}
