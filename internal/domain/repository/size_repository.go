package repository

import "github.com/jhoicas/tienda-stock-api/internal/domain/entity"

// SizeRepository define el puerto del catálogo de tallas (referencia, solo lectura
// para el subsistema; Create existe únicamente para el seed inicial).
type SizeRepository interface {
	List() ([]*entity.Size, error)
	GetByID(id int64) (*entity.Size, error)
	Create(size *entity.Size) error
}
