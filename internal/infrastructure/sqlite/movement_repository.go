package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del ledger de movimientos sobre SQLite
// (usable con el handle o con una tx). Solo inserta y lee: el ledger es
// append-only y este adaptador no tiene UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar handle o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append persiste un movimiento y asigna el id autoincremental en movement.ID.
// Si id_producto no referencia un producto existente, la foreign key lo
// rechaza y se devuelve domain.ErrConstraint.
func (r *MovementRepo) Append(ctx context.Context, movement *entity.Movement) error {
	query := `
		INSERT INTO movimientos (id_producto, fecha_hora, cantidad)
		VALUES (?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query, movement.ProductID, movement.OccurredAt, movement.Quantity)
	if err != nil {
		if isConstraintViolation(err) {
			return domain.ErrConstraint
		}
		return fmt.Errorf("insert movimiento: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id movimiento: %w", err)
	}
	movement.ID = id
	return nil
}

// ListByProduct devuelve el historial de movimientos de un producto en orden
// de registro.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error) {
	query := `
		SELECT id_movimiento, id_producto, fecha_hora, cantidad
		FROM movimientos WHERE id_producto = ?
		ORDER BY id_movimiento ASC`
	rows, err := r.q.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	movements := make([]*entity.Movement, 0)
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.OccurredAt, &m.Quantity); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		movements = append(movements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar movimientos: %w", err)
	}
	return movements, nil
}

// SumByProduct devuelve la suma con signo de los deltas del producto.
// Base del chequeo de deriva entre stock cacheado y ledger.
func (r *MovementRepo) SumByProduct(ctx context.Context, productID int64) (int64, error) {
	var sum int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(cantidad), 0) FROM movimientos WHERE id_producto = ?`,
		productID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum movimientos: %w", err)
	}
	return sum, nil
}
