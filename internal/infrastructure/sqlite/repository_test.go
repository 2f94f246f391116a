package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/sqlite"
)

func TestProductRepo_CreateAsignaIDsDistintos(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	products := sqlite.NewProductRepository(store.DB())

	a := &entity.Product{Name: "Widget", Price: decimal.NewFromFloat(9.99), MinStock: 5}
	b := &entity.Product{Name: "Widget", Price: decimal.NewFromFloat(9.99), MinStock: 5}
	require.NoError(t, products.Create(ctx, a))
	require.NoError(t, products.Create(ctx, b))

	// Argumentos idénticos producen filas distintas con ids distintos.
	assert.NotEqual(t, a.ID, b.ID)
	assert.EqualValues(t, 0, a.CurrentStock)
	assert.EqualValues(t, 0, a.MaxStock)
}

func TestProductRepo_CreateNombreVacio(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	products := sqlite.NewProductRepository(store.DB())

	err := products.Create(ctx, &entity.Product{Name: ""})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConstraint, "el CHECK de nombre debe rechazar el insert")
}

func TestProductRepo_GetByIDInexistente(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	products := sqlite.NewProductRepository(store.DB())

	_, err := products.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepo_ListOrdenadoPorID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	products := sqlite.NewProductRepository(store.DB())

	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, products.Create(ctx, &entity.Product{Name: name}))
	}

	list, err := products.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID, "el listado debe venir ordenado por id ascendente")
	}
}

func TestProductRepo_UpdateStockInexistente(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	products := sqlite.NewProductRepository(store.DB())

	err := products.UpdateStock(ctx, 42, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepo_PrecioConservaDosDecimales(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	products := sqlite.NewProductRepository(store.DB())

	p := &entity.Product{Name: "Widget", Price: decimal.NewFromFloat(9.99)}
	require.NoError(t, products.Create(ctx, p))

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromFloat(9.99)), "precio leído: %s", got.Price)
}

func TestMovementRepo_AppendProductoDesconocido(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	movements := sqlite.NewMovementRepository(store.DB())

	err := movements.Append(ctx, &entity.Movement{
		ProductID:  99,
		OccurredAt: time.Now().UTC(),
		Quantity:   5,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConstraint, "la foreign key debe rechazar movimientos huérfanos")
}

func TestMovementRepo_SumaConSigno(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	products := sqlite.NewProductRepository(store.DB())
	movements := sqlite.NewMovementRepository(store.DB())

	p := &entity.Product{Name: "Widget"}
	require.NoError(t, products.Create(ctx, p))

	for _, qty := range []int64{20, -5, 3, -8} {
		require.NoError(t, movements.Append(ctx, &entity.Movement{
			ProductID:  p.ID,
			OccurredAt: time.Now().UTC(),
			Quantity:   qty,
		}))
	}

	sum, err := movements.SumByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 10, sum)

	history, err := movements.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, entity.DirectionEntry, history[0].Direction())
	assert.Equal(t, entity.DirectionExit, history[1].Direction())
	assert.EqualValues(t, 5, history[1].Magnitude())
	assert.False(t, history[0].OccurredAt.IsZero(), "el timestamp debe persistirse")
}

func TestTxRunner_RollbackCompleto(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	products := sqlite.NewProductRepository(store.DB())
	movements := sqlite.NewMovementRepository(store.DB())
	runner := sqlite.NewTxRunner(store)

	p := &entity.Product{Name: "Widget"}
	require.NoError(t, products.Create(ctx, p))

	boom := errors.New("fallo simulado")
	err := runner.Run(ctx, func(
		txProducts repository.ProductRepository,
		txMovements repository.MovementRepository,
	) error {
		require.NoError(t, txMovements.Append(ctx, &entity.Movement{
			ProductID:  p.ID,
			OccurredAt: time.Now().UTC(),
			Quantity:   7,
		}))
		require.NoError(t, txProducts.UpdateStock(ctx, p.ID, 7))
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Nada de la transacción fallida debe ser observable.
	history, err := movements.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, got.CurrentStock)
}

func TestTxRunner_CommitAplicaTodo(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	products := sqlite.NewProductRepository(store.DB())
	movements := sqlite.NewMovementRepository(store.DB())
	runner := sqlite.NewTxRunner(store)

	p := &entity.Product{Name: "Widget"}
	require.NoError(t, products.Create(ctx, p))

	err := runner.Run(ctx, func(
		txProducts repository.ProductRepository,
		txMovements repository.MovementRepository,
	) error {
		if err := txMovements.Append(ctx, &entity.Movement{
			ProductID:  p.ID,
			OccurredAt: time.Now().UTC(),
			Quantity:   7,
		}); err != nil {
			return err
		}
		return txProducts.UpdateStock(ctx, p.ID, 7)
	})
	require.NoError(t, err)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 7, got.CurrentStock)

	sum, err := movements.SumByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 7, sum)
}
