package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/sqlite"
)

// newTestStore abre una base temporal con el esquema creado.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventario.db")
	store, err := sqlite.Open(path)
	require.NoError(t, err, "debe abrirse la base temporal")
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func TestOpen_RutaInaccesible(t *testing.T) {
	// Directorio inexistente: el driver no puede crear el archivo.
	_, err := sqlite.Open(filepath.Join(t.TempDir(), "no-existe", "inventario.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestEnsureSchema_Idempotente(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// Repetir la creación del esquema no debe fallar ni duplicar tablas.
	for i := 0; i < 3; i++ {
		require.NoError(t, store.EnsureSchema(ctx))
	}

	var tables int
	err := store.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master
		 WHERE type = 'table' AND name IN ('productos', 'movimientos')`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 2, tables, "debe haber exactamente una tabla productos y una movimientos")
}

func TestEnsureSchema_NoPierdeDatos(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	products := sqlite.NewProductRepository(store.DB())

	p := &entity.Product{Name: "Tornillos"}
	require.NoError(t, products.Create(ctx, p))

	// Un arranque posterior vuelve a pasar por EnsureSchema.
	require.NoError(t, store.EnsureSchema(ctx))

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tornillos", got.Name)
}
