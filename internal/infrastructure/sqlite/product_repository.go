package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre SQLite
// (usable con el handle o con una tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar handle o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con currentStock y maxStock en 0 y asigna
// el id autoincremental en product.ID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO productos (nombre, precio, minStock, currentStock, maxStock)
		VALUES (?, ?, ?, 0, 0)`
	res, err := r.q.ExecContext(ctx, query, product.Name, product.Price, product.MinStock)
	if err != nil {
		if isConstraintViolation(err) {
			return domain.ErrConstraint
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id producto: %w", err)
	}
	product.ID = id
	product.CurrentStock = 0
	product.MaxStock = 0
	return nil
}

// GetByID obtiene un producto por id.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `
		SELECT id, nombre, precio, minStock, currentStock, maxStock
		FROM productos WHERE id = ?`
	var p entity.Product
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.MinStock, &p.CurrentStock, &p.MaxStock,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// List devuelve el catálogo completo ordenado por id ascendente.
// Snapshot finito, recalculado en cada llamada.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT id, nombre, precio, minStock, currentStock, maxStock
		FROM productos ORDER BY id ASC`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	products := make([]*entity.Product, 0)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.MinStock, &p.CurrentStock, &p.MaxStock); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar productos: %w", err)
	}
	return products, nil
}

// UpdateStock actualiza el stock cacheado de una sola fila.
func (r *ProductRepo) UpdateStock(ctx context.Context, productID, newStock int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE productos SET currentStock = ? WHERE id = ?`, newStock, productID)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update stock rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateThresholds actualiza minStock y maxStock en una sola sentencia.
// No toca currentStock ni el ledger de movimientos.
func (r *ProductRepo) UpdateThresholds(ctx context.Context, productID, minStock, maxStock int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE productos SET minStock = ?, maxStock = ? WHERE id = ?`,
		minStock, maxStock, productID)
	if err != nil {
		return fmt.Errorf("update umbrales: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update umbrales rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
