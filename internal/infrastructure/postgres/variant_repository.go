package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-stock-api/internal/domain"
	"github.com/jhoicas/tienda-stock-api/internal/domain/entity"
	"github.com/jhoicas/tienda-stock-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación de VariantRepository sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantSelect = `
	SELECT v.product_id, v.size_id, s.label, v.sku, v.stock, v.precio_ajuste, v.updated_at
	FROM variants v
	JOIN sizes s ON s.id = v.size_id`

// ListByProduct devuelve las variantes de un producto con su talla resuelta,
// ordenadas por talla.
func (r *VariantRepo) ListByProduct(productID int64) ([]*entity.Variant, error) {
	query := variantSelect + ` WHERE v.product_id = $1 ORDER BY v.size_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Variant
	for rows.Next() {
		var v entity.Variant
		if err := rows.Scan(&v.ProductID, &v.SizeID, &v.SizeLabel, &v.SKU,
			&v.Stock, &v.PrecioAjuste, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Get obtiene la variante (producto, talla). Devuelve nil, nil si no existe.
func (r *VariantRepo) Get(productID, sizeID int64) (*entity.Variant, error) {
	query := variantSelect + ` WHERE v.product_id = $1 AND v.size_id = $2`
	return r.scanOne(query, productID, sizeID, "get variant")
}

// GetForUpdate obtiene la variante y bloquea la fila (SELECT FOR UPDATE).
func (r *VariantRepo) GetForUpdate(productID, sizeID int64) (*entity.Variant, error) {
	query := variantSelect + ` WHERE v.product_id = $1 AND v.size_id = $2 FOR UPDATE OF v`
	return r.scanOne(query, productID, sizeID, "get variant for update")
}

func (r *VariantRepo) scanOne(query string, productID, sizeID int64, op string) (*entity.Variant, error) {
	var v entity.Variant
	err := r.q.QueryRow(context.Background(), query, productID, sizeID).Scan(
		&v.ProductID, &v.SizeID, &v.SizeLabel, &v.SKU, &v.Stock, &v.PrecioAjuste, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &v, nil
}

// UpdateStock actualiza en sitio el stock de una variante (movimientos).
func (r *VariantRepo) UpdateStock(productID, sizeID int64, stock int) error {
	query := `UPDATE variants SET stock = $3, updated_at = now() WHERE product_id = $1 AND size_id = $2`
	tag, err := r.q.Exec(context.Background(), query, productID, sizeID, stock)
	if err != nil {
		return fmt.Errorf("update variant stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVariantNotFound
	}
	return nil
}

// ReplaceAll borra todas las variantes del producto e inserta el conjunto nuevo.
// Las filas con stock 0 también se insertan. Debe llamarse dentro de una tx.
func (r *VariantRepo) ReplaceAll(productID int64, variants []*entity.Variant) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM variants WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete variants: %w", err)
	}
	query := `
		INSERT INTO variants (product_id, size_id, sku, stock, precio_ajuste, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, v := range variants {
		if _, err := r.q.Exec(ctx, query,
			v.ProductID, v.SizeID, v.SKU, v.Stock, v.PrecioAjuste, v.UpdatedAt); err != nil {
			return fmt.Errorf("insert variant: %w", err)
		}
	}
	return nil
}
