package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-stock-api/internal/domain/entity"
	"github.com/jhoicas/tienda-stock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y consulta: el libro es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste una entrada del libro y asigna el ID generado.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (transaction_id, product_id, size_id, etiqueta, tipo, cantidad, fecha, usuario)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		movement.TransactionID, movement.ProductID, movement.SizeID,
		movement.Etiqueta, movement.Tipo, movement.Cantidad, movement.Fecha, movement.Usuario,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// whereClause arma el WHERE del filtro; devuelve también los args.
func whereClause(filter repository.MovementFilter) (string, []any) {
	where := ""
	var args []any
	pos := 1
	and := func(cond string, arg any) {
		if where == "" {
			where = " WHERE " + fmt.Sprintf(cond, pos)
		} else {
			where += " AND " + fmt.Sprintf(cond, pos)
		}
		args = append(args, arg)
		pos++
	}
	if filter.ProductID != nil {
		and("product_id = $%d", *filter.ProductID)
	}
	if filter.Tipo != "" {
		and("tipo = $%d", filter.Tipo)
	}
	if filter.From != nil {
		and("fecha >= $%d", *filter.From)
	}
	if filter.To != nil {
		and("fecha <= $%d", *filter.To)
	}
	return where, args
}

// List devuelve movimientos ordenados por fecha descendente.
// limit <= 0 desactiva la paginación (exports).
func (r *MovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	where, args := whereClause(filter)
	query := `
		SELECT id, transaction_id, product_id, size_id, etiqueta, tipo, cantidad, fecha, usuario
		FROM movements` + where + ` ORDER BY fecha DESC, id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ProductID, &m.SizeID,
			&m.Etiqueta, &m.Tipo, &m.Cantidad, &m.Fecha, &m.Usuario); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Count devuelve el total de entradas que cumplen el filtro.
func (r *MovementRepo) Count(filter repository.MovementFilter) (int, error) {
	where, args := whereClause(filter)
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM movements`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}
