package repository

import "github.com/jhoicas/tienda-stock-api/internal/domain/entity"

// ProductFilter criterios opcionales para listar productos.
// SizeLabel filtra productos con al menos una variante de esa talla y stock > 0.
type ProductFilter struct {
	SizeLabel    string
	LowStockOnly bool
	OnlyActive   bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de
	// la transacción del motor de movimientos.
	GetForUpdate(id int64) (*entity.Product, error)
	List(filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock es el ajuste administrativo directo: escribe stock y umbral
	// sin pasar por el motor y sin dejar rastro en el libro de movimientos.
	UpdateStock(id int64, stock, stockMinimo int) error
	SetActive(id int64, active bool) error
	Delete(id int64) error
}
