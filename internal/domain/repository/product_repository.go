package repository

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create inserta el producto y asigna su ID autoincremental.
	// CurrentStock y MaxStock inician en 0.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// List devuelve el catálogo completo ordenado por id ascendente.
	List(ctx context.Context) ([]*entity.Product, error)
	// UpdateStock actualiza el stock cacheado de una sola fila.
	UpdateStock(ctx context.Context, productID, newStock int64) error
	// UpdateThresholds actualiza minStock y maxStock de forma atómica.
	UpdateThresholds(ctx context.Context, productID, minStock, maxStock int64) error
}
