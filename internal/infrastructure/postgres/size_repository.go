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

var _ repository.SizeRepository = (*SizeRepo)(nil)

// SizeRepo implementación del catálogo de tallas sobre PostgreSQL.
type SizeRepo struct {
	q Querier
}

// NewSizeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSizeRepository(q Querier) *SizeRepo {
	return &SizeRepo{q: q}
}

// List devuelve todas las tallas ordenadas por ID.
func (r *SizeRepo) List() ([]*entity.Size, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, label FROM sizes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Size
	for rows.Next() {
		var s entity.Size
		if err := rows.Scan(&s.ID, &s.Label); err != nil {
			return nil, fmt.Errorf("scan size: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// GetByID obtiene una talla. Devuelve nil, nil si no existe.
func (r *SizeRepo) GetByID(id int64) (*entity.Size, error) {
	var s entity.Size
	err := r.q.QueryRow(context.Background(), `SELECT id, label FROM sizes WHERE id = $1`, id).
		Scan(&s.ID, &s.Label)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get size: %w", err)
	}
	return &s, nil
}

// Create inserta una talla (seed inicial).
func (r *SizeRepo) Create(size *entity.Size) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO sizes (label) VALUES ($1) RETURNING id`, size.Label).Scan(&size.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert size: %w", err)
	}
	return nil
}
