package repository

import (
	"time"

	"github.com/jhoicas/tienda-stock-api/internal/domain/entity"
)

// MovementFilter criterios opcionales para consultar el libro de movimientos.
type MovementFilter struct {
	ProductID *int64
	Tipo      string
	From      *time.Time
	To        *time.Time
}

// MovementRepository define el puerto del libro de movimientos.
// Deliberadamente sin Update ni Delete: el libro es append-only.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// List devuelve movimientos ordenados por fecha descendente.
	List(filter MovementFilter, limit, offset int) ([]*entity.Movement, error)
	Count(filter MovementFilter) (int, error)
}
