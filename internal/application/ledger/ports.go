package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacenamiento
// local, pasando repositorios atados a esa tx. Garantiza atomicidad para el
// motor de ledger: actualizar stock y registrar el movimiento es todo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error) error
}

// Mirrorer replica en el servicio remoto autoritativo las mutaciones locales,
// como mejor esfuerzo: el fallo del espejo nunca invalida la escritura local.
type Mirrorer interface {
	MirrorProductCreated(ctx context.Context, name string, price decimal.Decimal, minStock int64) error
}
