package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite. Con
// _txlock=immediate la transacción toma el write lock al iniciar, así que la
// lectura del stock dentro del callback ya está serializada frente a otros
// escritores: no hace falta SELECT FOR UPDATE.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner sobre el handle del Store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{db: store.DB()}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Es la única vía para escrituras multi-fila: o se aplican
// todas o ninguna.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	movements repository.MovementRepository,
) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	products := NewProductRepository(tx)
	movements := NewMovementRepository(tx)

	if err := fn(products, movements); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
