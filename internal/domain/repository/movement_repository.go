package repository

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el ledger de
// movimientos. El ledger es append-only: no hay Update ni Delete.
type MovementRepository interface {
	// Append inserta el movimiento y asigna su ID autoincremental.
	Append(ctx context.Context, movement *entity.Movement) error
	// ListByProduct devuelve los movimientos de un producto en orden de registro.
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error)
	// SumByProduct devuelve la suma con signo de los deltas del producto.
	SumByProduct(ctx context.Context, productID int64) (int64, error)
}
